package ml

import "fmt"

// Autoencoder pairs an encoder and decoder network. The earthquake pipeline
// uses the latent encoding for clustering and the reconstruction for
// anomaly scoring.
type Autoencoder struct {
	Encoder FeedForward `json:"encoder"`
	Decoder FeedForward `json:"decoder"`
}

// Encode maps a feature vector to its latent representation.
func (a *Autoencoder) Encode(x []float64) ([]float64, error) {
	return a.Encoder.Forward(x)
}

// Reconstruct runs the full encode-decode pass.
func (a *Autoencoder) Reconstruct(x []float64) ([]float64, error) {
	latent, err := a.Encoder.Forward(x)
	if err != nil {
		return nil, err
	}
	return a.Decoder.Forward(latent)
}

// InputDim returns the expected feature count.
func (a *Autoencoder) InputDim() int {
	return a.Encoder.InputDim()
}

func (a *Autoencoder) validate() error {
	if err := a.Encoder.validate(); err != nil {
		return fmt.Errorf("encoder: %w", err)
	}
	if err := a.Decoder.validate(); err != nil {
		return fmt.Errorf("decoder: %w", err)
	}
	if a.Decoder.OutputDim() != a.Encoder.InputDim() {
		return fmt.Errorf("decoder reconstructs %d features but encoder consumes %d",
			a.Decoder.OutputDim(), a.Encoder.InputDim())
	}
	if a.Decoder.InputDim() != a.Encoder.OutputDim() {
		return fmt.Errorf("decoder expects %d latent features but encoder emits %d",
			a.Decoder.InputDim(), a.Encoder.OutputDim())
	}
	return nil
}

// ReconstructionError returns the mean squared difference between an input
// vector and its reconstruction, the anomaly-strength signal.
func ReconstructionError(x, reconstructed []float64) float64 {
	if len(x) == 0 || len(x) != len(reconstructed) {
		return 0
	}
	var sum float64
	for i := range x {
		d := x[i] - reconstructed[i]
		sum += d * d
	}
	return sum / float64(len(x))
}
