package ml

import (
	"fmt"
	"math"
)

// Activation names accepted in dense layer artifacts.
const (
	ActivationLinear  = "linear"
	ActivationReLU    = "relu"
	ActivationSigmoid = "sigmoid"
	ActivationTanh    = "tanh"
)

// Dense is one fully connected layer. Weights are row-major with one row
// per output unit, matching the exported artifact layout.
type Dense struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

func (d *Dense) inputDim() int {
	if len(d.Weights) == 0 {
		return 0
	}
	return len(d.Weights[0])
}

func (d *Dense) outputDim() int {
	return len(d.Weights)
}

func (d *Dense) apply(x []float64) ([]float64, error) {
	if len(x) != d.inputDim() {
		return nil, fmt.Errorf("dense layer expects %d inputs, got %d", d.inputDim(), len(x))
	}
	out := make([]float64, d.outputDim())
	for i, row := range d.Weights {
		sum := d.Bias[i]
		for j, w := range row {
			sum += w * x[j]
		}
		out[i] = activate(d.Activation, sum)
	}
	return out, nil
}

func (d *Dense) validate() error {
	if d.outputDim() == 0 || d.inputDim() == 0 {
		return fmt.Errorf("dense layer has empty weights")
	}
	if len(d.Bias) != d.outputDim() {
		return fmt.Errorf("dense layer has %d bias terms for %d units", len(d.Bias), d.outputDim())
	}
	for i, row := range d.Weights {
		if len(row) != d.inputDim() {
			return fmt.Errorf("dense layer has ragged weight row %d", i)
		}
	}
	switch d.Activation {
	case ActivationLinear, ActivationReLU, ActivationSigmoid, ActivationTanh:
		return nil
	default:
		return fmt.Errorf("unknown activation %q", d.Activation)
	}
}

func activate(name string, v float64) float64 {
	switch name {
	case ActivationReLU:
		return math.Max(0, v)
	case ActivationSigmoid:
		return sigmoid(v)
	case ActivationTanh:
		return math.Tanh(v)
	default:
		return v
	}
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

// FeedForward is a stack of dense layers applied in order. It serves both
// as the cyclone severity encoder and as the halves of the earthquake
// autoencoder.
type FeedForward struct {
	Layers []Dense `json:"layers"`
}

// Forward runs the network over one feature vector.
func (n *FeedForward) Forward(x []float64) ([]float64, error) {
	out := x
	for i := range n.Layers {
		var err error
		out, err = n.Layers[i].apply(out)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return out, nil
}

// InputDim returns the expected feature count.
func (n *FeedForward) InputDim() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return n.Layers[0].inputDim()
}

// OutputDim returns the size of the final layer's output.
func (n *FeedForward) OutputDim() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return n.Layers[len(n.Layers)-1].outputDim()
}

func (n *FeedForward) validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	for i := range n.Layers {
		if err := n.Layers[i].validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if i > 0 && n.Layers[i].inputDim() != n.Layers[i-1].outputDim() {
			return fmt.Errorf("layer %d expects %d inputs but layer %d emits %d",
				i, n.Layers[i].inputDim(), i-1, n.Layers[i-1].outputDim())
		}
	}
	return nil
}
