// Package domain models prediction requests and the deterministic
// transformations applied to them before inference.
//
// # Request schemas
//
// Earthquake severity requests carry four numeric fields:
//
//	magnitude  Richter magnitude, 0–10
//	depth      hypocenter depth in kilometers, 0–700
//	latitude   WGS-84 latitude, -90–90
//	longitude  WGS-84 longitude, -180–180
//
// Cyclone requests (path, speed/direction, and severity tasks) carry:
//
//	ISO_TIME     ISO-8601 observation timestamp ("Z" and "+00:00" both accepted)
//	LAT          storm center latitude, -90–90
//	LON          storm center longitude, -180–180
//	STORM_SPEED  translation speed in km/h, 0–300
//	STORM_DIR    heading in compass degrees, 0–360
//
// # Validation
//
// Validators run in two phases: all presence checks first, and only when
// every required field is present do per-field type and range checks run.
// Every violation found is reported, not just the first. Messages are part
// of the API contract and must not be reworded.
//
// # Feature engineering
//
// Each model was trained on a fixed column order, so the feature builders
// here are the single source of truth for column layout:
//
//	earthquake  [magnitude, depth, latitude, longitude]
//	path        [LAT, LON, STORM_SPEED, HOUR, MONTH,
//	             lat_lon, speed_lat, speed_lon, dir_sin, dir_cos]
//	speed_dir   [LAT, LON, STORM_SPEED, HOUR, MONTH, dir_sin, dir_cos,
//	             STORM_SPEED_LAG1, LAT_LAG, LON_LAG, SPEED_MA3,
//	             lat_lon, speed_lat]
//	speed_dir lag and moving-average columns equal the current observation:
//	the training pipeline had true per-storm history, a single-request API
//	does not. Kept so the column contract matches the trained models.
//	severity    [LAT, LON, STORM_SPEED, HOUR, MONTH, dir_sin, dir_cos]
//
// HOUR and MONTH are decomposed from ISO_TIME. dir_sin/dir_cos are the
// circular encoding of STORM_DIR, avoiding the discontinuity at the
// 0/360-degree wrap.
//
// # Severity labels
//
// Clustering models emit integer cluster ids; ids 0–3 map to
// Mild/Moderate/Severe/Catastrophic and anything else to Unknown.
package domain
