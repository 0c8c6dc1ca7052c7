package ml

import "fmt"

// StandardScaler applies z-score standardization: (x - mean) / scale.
// Mean and scale come from the training pipeline's fitted scaler.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Fitted reports whether the scaler carries trained parameters.
func (s *StandardScaler) Fitted() bool {
	return len(s.Mean) > 0 && len(s.Scale) == len(s.Mean)
}

// Transform standardizes a feature vector.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if err := s.check(len(x)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}

// InverseTransform maps a standardized vector back to original units.
func (s *StandardScaler) InverseTransform(x []float64) ([]float64, error) {
	if err := s.check(len(x)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v*s.Scale[i] + s.Mean[i]
	}
	return out, nil
}

func (s *StandardScaler) check(n int) error {
	if !s.Fitted() {
		return fmt.Errorf("scaler is not fitted")
	}
	if n != len(s.Mean) {
		return fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), n)
	}
	return nil
}

func (s *StandardScaler) validate() error {
	if !s.Fitted() {
		return fmt.Errorf("scaler artifact has no fitted parameters")
	}
	for i, v := range s.Scale {
		if v == 0 {
			return fmt.Errorf("scaler artifact has zero scale at column %d", i)
		}
	}
	return nil
}
