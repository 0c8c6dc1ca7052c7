package domain

// Payload is a decoded JSON request body. Keeping the raw map allows the
// validators to distinguish a missing field from a present-but-wrong-type
// value before anything is converted to a typed request.
type Payload map[string]any

// Number returns the field as a float64 and whether it is numeric.
// encoding/json decodes every JSON number into float64.
func (p Payload) Number(field string) (float64, bool) {
	v, ok := p[field]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// String returns the field as a string and whether it is one.
func (p Payload) String(field string) (string, bool) {
	v, ok := p[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// EarthquakeRequest is a validated earthquake severity request.
type EarthquakeRequest struct {
	Magnitude float64
	Depth     float64
	Latitude  float64
	Longitude float64
}

// EarthquakeFromPayload converts a payload that passed
// ValidateEarthquakeInput into a typed request.
func EarthquakeFromPayload(p Payload) EarthquakeRequest {
	magnitude, _ := p.Number("magnitude")
	depth, _ := p.Number("depth")
	latitude, _ := p.Number("latitude")
	longitude, _ := p.Number("longitude")
	return EarthquakeRequest{
		Magnitude: magnitude,
		Depth:     depth,
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// CycloneRequest is a validated cyclone observation, shared by the path,
// speed/direction, and severity tasks.
type CycloneRequest struct {
	ISOTime    string
	Lat        float64
	Lon        float64
	StormSpeed float64
	StormDir   float64
}

// CycloneFromPayload converts a payload that passed ValidateCycloneInput
// into a typed request.
func CycloneFromPayload(p Payload) CycloneRequest {
	isoTime, _ := p.String("ISO_TIME")
	lat, _ := p.Number("LAT")
	lon, _ := p.Number("LON")
	speed, _ := p.Number("STORM_SPEED")
	dir, _ := p.Number("STORM_DIR")
	return CycloneRequest{
		ISOTime:    isoTime,
		Lat:        lat,
		Lon:        lon,
		StormSpeed: speed,
		StormDir:   dir,
	}
}
