package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// payloadFromJSON decodes a JSON body the way the HTTP adapter does, so
// numeric types match production behavior.
func payloadFromJSON(t *testing.T, body string) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func validEarthquake(t *testing.T) Payload {
	return payloadFromJSON(t, `{"magnitude":5.5,"depth":10.0,"latitude":25.0,"longitude":80.0}`)
}

func validCyclone(t *testing.T) Payload {
	return payloadFromJSON(t, `{"ISO_TIME":"2024-01-01T00:00:00Z","LAT":25.0,"LON":80.0,"STORM_SPEED":50.0,"STORM_DIR":180.0}`)
}

func TestValidateEarthquakeInput_Valid(t *testing.T) {
	assert.Empty(t, ValidateEarthquakeInput(validEarthquake(t)))
}

func TestValidateEarthquakeInput_MissingFields(t *testing.T) {
	p := payloadFromJSON(t, `{"magnitude":5.5}`)

	errs := ValidateEarthquakeInput(p)

	assert.ElementsMatch(t, []string{
		"Missing required field: depth",
		"Missing required field: latitude",
		"Missing required field: longitude",
	}, errs)
}

func TestValidateEarthquakeInput_PresenceGatesRangeChecks(t *testing.T) {
	// Out-of-range magnitude must not be reported while a field is missing.
	p := payloadFromJSON(t, `{"magnitude":15.0,"depth":10.0,"latitude":25.0}`)

	errs := ValidateEarthquakeInput(p)

	assert.Equal(t, []string{"Missing required field: longitude"}, errs)
}

func TestValidateEarthquakeInput_RangeViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"magnitude too high", `{"magnitude":15.0,"depth":10.0,"latitude":25.0,"longitude":80.0}`, "Magnitude must be between 0 and 10"},
		{"magnitude negative", `{"magnitude":-1,"depth":10.0,"latitude":25.0,"longitude":80.0}`, "Magnitude must be between 0 and 10"},
		{"depth too deep", `{"magnitude":5.5,"depth":701,"latitude":25.0,"longitude":80.0}`, "Depth must be between 0 and 700 kilometers"},
		{"latitude out of range", `{"magnitude":5.5,"depth":10.0,"latitude":95.0,"longitude":80.0}`, "Latitude must be between -90 and 90"},
		{"longitude out of range", `{"magnitude":5.5,"depth":10.0,"latitude":25.0,"longitude":181.0}`, "Longitude must be between -180 and 180"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateEarthquakeInput(payloadFromJSON(t, tt.body))
			assert.Equal(t, []string{tt.want}, errs)
		})
	}
}

func TestValidateEarthquakeInput_NonNumeric(t *testing.T) {
	p := payloadFromJSON(t, `{"magnitude":"big","depth":10.0,"latitude":25.0,"longitude":80.0}`)

	errs := ValidateEarthquakeInput(p)

	assert.Equal(t, []string{"Magnitude must be a number"}, errs)
}

func TestValidateEarthquakeInput_BoundaryValuesPass(t *testing.T) {
	p := payloadFromJSON(t, `{"magnitude":10,"depth":700,"latitude":-90,"longitude":180}`)

	assert.Empty(t, ValidateEarthquakeInput(p))
}

func TestValidateEarthquakeInput_ReportsAllViolations(t *testing.T) {
	p := payloadFromJSON(t, `{"magnitude":15.0,"depth":-5,"latitude":95.0,"longitude":200.0}`)

	errs := ValidateEarthquakeInput(p)

	assert.Len(t, errs, 4)
}

func TestValidateCycloneInput_Valid(t *testing.T) {
	assert.Empty(t, ValidateCycloneInput(validCyclone(t)))
}

func TestValidateCycloneInput_MissingField(t *testing.T) {
	p := validCyclone(t)
	delete(p, "STORM_SPEED")

	errs := ValidateCycloneInput(p)

	assert.Equal(t, []string{"Missing required field: STORM_SPEED"}, errs)
}

func TestValidateCycloneInput_RangeViolations(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value float64
		want  string
	}{
		{"LAT too high", "LAT", 95, "LAT must be between -90 and 90"},
		{"LON too low", "LON", -181, "LON must be between -180 and 180"},
		{"speed too fast", "STORM_SPEED", 301, "STORM_SPEED must be between 0 and 300 km/h"},
		{"direction wraps", "STORM_DIR", 361, "STORM_DIR must be between 0 and 360 degrees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCyclone(t)
			p[tt.field] = tt.value

			errs := ValidateCycloneInput(p)

			assert.Equal(t, []string{tt.want}, errs)
		})
	}
}

func TestValidateCycloneInput_Timestamps(t *testing.T) {
	valid := []string{
		"2024-01-01T00:00:00Z",
		"2024-01-01T00:00:00+00:00",
		"2024-06-15T12:30:45.123Z",
		"2024-06-15T12:30:45",
		"2024-06-15 12:30:45",
		"2024-06-15",
	}
	for _, ts := range valid {
		t.Run("valid "+ts, func(t *testing.T) {
			p := validCyclone(t)
			p["ISO_TIME"] = ts
			assert.Empty(t, ValidateCycloneInput(p))
		})
	}

	invalid := []any{"not-a-time", "2024-13-01T00:00:00Z", "15/06/2024", 12345.0, true}
	for _, ts := range invalid {
		t.Run("invalid timestamp", func(t *testing.T) {
			p := validCyclone(t)
			p["ISO_TIME"] = ts
			assert.Contains(t, ValidateCycloneInput(p), "ISO_TIME must be a valid ISO timestamp")
		})
	}
}

func TestValidateSeverityInput_ReusesCycloneSchema(t *testing.T) {
	p := validCyclone(t)
	delete(p, "LAT")

	assert.Equal(t, []string{"Missing required field: LAT"}, ValidateSeverityInput(p))
	assert.Empty(t, ValidateSeverityInput(validCyclone(t)))
}

func TestValidators_AreDeterministic(t *testing.T) {
	p := payloadFromJSON(t, `{"magnitude":15.0,"depth":-5,"latitude":95.0,"longitude":200.0}`)

	first := ValidateEarthquakeInput(p)
	second := ValidateEarthquakeInput(p)

	assert.Equal(t, first, second)
}
