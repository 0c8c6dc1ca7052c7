package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCycloneRequest() CycloneRequest {
	return CycloneRequest{
		ISOTime:    "2024-08-15T18:00:00Z",
		Lat:        25.0,
		Lon:        80.0,
		StormSpeed: 50.0,
		StormDir:   180.0,
	}
}

func TestEarthquakeFeatures(t *testing.T) {
	req := EarthquakeRequest{Magnitude: 5.5, Depth: 10, Latitude: 25, Longitude: 80}

	features := EarthquakeFeatures(req)

	require.Len(t, features, 1)
	assert.Equal(t, []float64{5.5, 10, 25, 80}, features[0])
}

func TestCyclonePathFeatures(t *testing.T) {
	features, err := CyclonePathFeatures(testCycloneRequest())
	require.NoError(t, err)
	require.Len(t, features, 1)

	row := features[0]
	require.Len(t, row, 10)

	assert.Equal(t, 25.0, row[0])           // LAT
	assert.Equal(t, 80.0, row[1])           // LON
	assert.Equal(t, 50.0, row[2])           // STORM_SPEED
	assert.Equal(t, 18.0, row[3])           // HOUR
	assert.Equal(t, 8.0, row[4])            // MONTH
	assert.Equal(t, 25.0*80.0, row[5])      // lat_lon
	assert.Equal(t, 50.0*25.0, row[6])      // speed_lat
	assert.Equal(t, 50.0*80.0, row[7])      // speed_lon
	assert.InDelta(t, 0.0, row[8], 1e-12)   // sin(180°)
	assert.InDelta(t, -1.0, row[9], 1e-12)  // cos(180°)
}

func TestCyclonePathFeatures_BadTimestamp(t *testing.T) {
	req := testCycloneRequest()
	req.ISOTime = "garbage"

	_, err := CyclonePathFeatures(req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ISO timestamp")
}

func TestCycloneSpeedDirFeatures(t *testing.T) {
	features, err := CycloneSpeedDirFeatures(testCycloneRequest())
	require.NoError(t, err)

	row := features[0]
	require.Len(t, row, 13)

	assert.Equal(t, 25.0, row[0])
	assert.Equal(t, 80.0, row[1])
	assert.Equal(t, 50.0, row[2])
	assert.Equal(t, 18.0, row[3])
	assert.Equal(t, 8.0, row[4])

	// Lag and moving-average placeholders equal the current observation.
	assert.Equal(t, row[2], row[7])  // STORM_SPEED_LAG1
	assert.Equal(t, row[0], row[8])  // LAT_LAG
	assert.Equal(t, row[1], row[9])  // LON_LAG
	assert.Equal(t, row[2], row[10]) // SPEED_MA3

	assert.Equal(t, 25.0*80.0, row[11])
	assert.Equal(t, 50.0*25.0, row[12])
}

func TestCycloneSpeedDirFeatures_BadTimestamp(t *testing.T) {
	req := testCycloneRequest()
	req.ISOTime = "not a timestamp"

	_, err := CycloneSpeedDirFeatures(req)

	require.Error(t, err)
}

func TestCycloneSeverityFeatures(t *testing.T) {
	features := CycloneSeverityFeatures(testCycloneRequest())

	row := features[0]
	require.Len(t, row, 7)
	assert.Equal(t, []float64{25, 80, 50, 18, 8}, row[:5])
}

func TestCycloneSeverityFeatures_BadTimestampDefaultsToZero(t *testing.T) {
	req := testCycloneRequest()
	req.ISOTime = "garbage"

	row := CycloneSeverityFeatures(req)[0]

	assert.Equal(t, 0.0, row[3]) // HOUR
	assert.Equal(t, 0.0, row[4]) // MONTH
}

func TestCircularEncodingIsUnit(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 135, 180, 225, 270, 315, 360} {
		req := testCycloneRequest()
		req.StormDir = deg

		row := CycloneSeverityFeatures(req)[0]
		dirSin, dirCos := row[5], row[6]

		assert.InDelta(t, 1.0, dirSin*dirSin+dirCos*dirCos, 1e-12, "deg=%v", deg)
	}
}

func TestCircularEncodingWrap(t *testing.T) {
	req := testCycloneRequest()

	req.StormDir = 0
	zero := CycloneSeverityFeatures(req)[0]
	req.StormDir = 360
	full := CycloneSeverityFeatures(req)[0]

	assert.InDelta(t, zero[5], full[5], 1e-9)
	assert.InDelta(t, zero[6], full[6], 1e-9)
}

func TestParseISOTime(t *testing.T) {
	ts, err := ParseISOTime("2024-01-01T06:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 6, ts.Hour())
	assert.Equal(t, 1, int(ts.Month()))

	// "Z" and "+00:00" represent the same instant.
	zulu, err := ParseISOTime("2024-01-01T06:30:00Z")
	require.NoError(t, err)
	offset, err := ParseISOTime("2024-01-01T06:30:00+00:00")
	require.NoError(t, err)
	assert.True(t, zulu.Equal(offset))

	_, err = ParseISOTime("")
	assert.Error(t, err)
}

func TestFeatureBuilders_Idempotent(t *testing.T) {
	req := testCycloneRequest()

	first, err := CyclonePathFeatures(req)
	require.NoError(t, err)
	second, err := CyclonePathFeatures(req)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
	assert.False(t, math.IsNaN(first[0][8]))
}
