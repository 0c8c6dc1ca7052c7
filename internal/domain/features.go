package domain

import (
	"fmt"
	"math"
	"time"
)

// isoLayouts are the accepted timestamp forms, tried in order: RFC 3339
// with zone, zone-less with optional fraction, space-separated, date-only.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseISOTime parses an ISO-8601 timestamp. A trailing "Z" is equivalent
// to the "+00:00" UTC offset; zone-less forms are taken as UTC.
func ParseISOTime(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO timestamp: %q", s)
}

// EarthquakeFeatures assembles the earthquake model's feature row:
// [magnitude, depth, latitude, longitude]. No derived features.
func EarthquakeFeatures(req EarthquakeRequest) [][]float64 {
	return [][]float64{{req.Magnitude, req.Depth, req.Latitude, req.Longitude}}
}

// CyclonePathFeatures builds the 10-column feature row the path LSTM was
// trained on. Fails if the timestamp cannot be decomposed into hour/month.
func CyclonePathFeatures(req CycloneRequest) ([][]float64, error) {
	hour, month, err := timeOfObservation(req.ISOTime)
	if err != nil {
		return nil, err
	}
	dirSin, dirCos := encodeDirection(req.StormDir)

	return [][]float64{{
		req.Lat,
		req.Lon,
		req.StormSpeed,
		hour,
		month,
		req.Lat * req.Lon,
		req.StormSpeed * req.Lat,
		req.StormSpeed * req.Lon,
		dirSin,
		dirCos,
	}}, nil
}

// CycloneSpeedDirFeatures builds the 13-column feature row for the speed
// and direction regressors. The lag and moving-average columns carry the
// current observation's own values; see the package doc.
func CycloneSpeedDirFeatures(req CycloneRequest) ([][]float64, error) {
	hour, month, err := timeOfObservation(req.ISOTime)
	if err != nil {
		return nil, err
	}
	dirSin, dirCos := encodeDirection(req.StormDir)

	return [][]float64{{
		req.Lat,
		req.Lon,
		req.StormSpeed,
		hour,
		month,
		dirSin,
		dirCos,
		req.StormSpeed, // STORM_SPEED_LAG1
		req.Lat,        // LAT_LAG
		req.Lon,        // LON_LAG
		req.StormSpeed, // SPEED_MA3
		req.Lat * req.Lon,
		req.StormSpeed * req.Lat,
	}}, nil
}

// CycloneSeverityFeatures builds the 7-column feature row for the severity
// encoder. An unparseable timestamp degrades to hour=0, month=0 instead of
// failing, matching the trained pipeline's fill behavior.
func CycloneSeverityFeatures(req CycloneRequest) [][]float64 {
	hour, month, err := timeOfObservation(req.ISOTime)
	if err != nil {
		hour, month = 0, 0
	}
	dirSin, dirCos := encodeDirection(req.StormDir)

	return [][]float64{{
		req.Lat,
		req.Lon,
		req.StormSpeed,
		hour,
		month,
		dirSin,
		dirCos,
	}}
}

// timeOfObservation decomposes a timestamp into hour-of-day and
// month-of-year feature values.
func timeOfObservation(isoTime string) (hour, month float64, err error) {
	t, err := ParseISOTime(isoTime)
	if err != nil {
		return 0, 0, err
	}
	return float64(t.Hour()), float64(t.Month()), nil
}

// encodeDirection circularly encodes a compass heading in degrees.
func encodeDirection(deg float64) (dirSin, dirCos float64) {
	rad := deg * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}
