package domain

import "fmt"

// numericRange describes an inclusive bound check for one numeric field.
type numericRange struct {
	field   string
	min     float64
	max     float64
	message string
}

var earthquakeRanges = []numericRange{
	{"magnitude", 0, 10, "Magnitude must be between 0 and 10"},
	{"depth", 0, 700, "Depth must be between 0 and 700 kilometers"},
	{"latitude", -90, 90, "Latitude must be between -90 and 90"},
	{"longitude", -180, 180, "Longitude must be between -180 and 180"},
}

var cycloneRanges = []numericRange{
	{"LAT", -90, 90, "LAT must be between -90 and 90"},
	{"LON", -180, 180, "LON must be between -180 and 180"},
	{"STORM_SPEED", 0, 300, "STORM_SPEED must be between 0 and 300 km/h"},
	{"STORM_DIR", 0, 360, "STORM_DIR must be between 0 and 360 degrees"},
}

// fieldLabels maps field names to the capitalized form used in type-error
// messages, where it differs from the field name itself.
var fieldLabels = map[string]string{
	"magnitude": "Magnitude",
	"depth":     "Depth",
	"latitude":  "Latitude",
	"longitude": "Longitude",
}

// ValidateEarthquakeInput checks an earthquake severity payload and returns
// every violated constraint as a human-readable message. An empty slice
// means the payload is valid.
func ValidateEarthquakeInput(p Payload) []string {
	if errs := checkPresence(p, "magnitude", "depth", "latitude", "longitude"); len(errs) > 0 {
		return errs
	}
	return checkRanges(p, earthquakeRanges)
}

// ValidateCycloneInput checks a cyclone observation payload (shared by the
// path and speed/direction tasks) and returns every violated constraint.
func ValidateCycloneInput(p Payload) []string {
	if errs := checkPresence(p, "ISO_TIME", "LAT", "LON", "STORM_SPEED", "STORM_DIR"); len(errs) > 0 {
		return errs
	}

	errs := checkRanges(p, cycloneRanges)

	if s, ok := p.String("ISO_TIME"); !ok {
		errs = append(errs, "ISO_TIME must be a valid ISO timestamp")
	} else if _, err := ParseISOTime(s); err != nil {
		errs = append(errs, "ISO_TIME must be a valid ISO timestamp")
	}

	return errs
}

// ValidateSeverityInput checks a cyclone severity payload. The severity
// task reuses the cyclone observation schema.
func ValidateSeverityInput(p Payload) []string {
	return ValidateCycloneInput(p)
}

// checkPresence reports every required field absent from the payload.
// Presence is checked for all fields before any type or range validation
// so a single response lists every missing field.
func checkPresence(p Payload, fields ...string) []string {
	var errs []string
	for _, f := range fields {
		if _, ok := p[f]; !ok {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", f))
		}
	}
	return errs
}

// checkRanges validates type then inclusive range for each numeric field.
func checkRanges(p Payload, ranges []numericRange) []string {
	var errs []string
	for _, r := range ranges {
		label := fieldLabels[r.field]
		if label == "" {
			label = r.field
		}
		v, ok := p.Number(r.field)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s must be a number", label))
			continue
		}
		if v < r.min || v > r.max {
			errs = append(errs, r.message)
		}
	}
	return errs
}
