package ml

import (
	"fmt"
	"math"
)

// LSTMRegressor is a single-layer LSTM followed by a dense head. Gate
// weights use the exporter's stacked layout: rows 0..H-1 input gate, then
// forget, cell candidate, and output gate blocks.
type LSTMRegressor struct {
	// WInput is (4H × input) — input-to-gate weights.
	WInput [][]float64 `json:"w_input"`
	// WHidden is (4H × H) — recurrent weights.
	WHidden [][]float64 `json:"w_hidden"`
	// Bias is length 4H.
	Bias []float64 `json:"bias"`
	// Head maps the final hidden state to the regression targets.
	Head Dense `json:"head"`
}

// hiddenDim returns H, derived from the recurrent weight width.
func (m *LSTMRegressor) hiddenDim() int {
	if len(m.WHidden) == 0 {
		return 0
	}
	return len(m.WHidden[0])
}

// inputDim returns the expected per-timestep feature count.
func (m *LSTMRegressor) inputDim() int {
	if len(m.WInput) == 0 {
		return 0
	}
	return len(m.WInput[0])
}

// PredictSequence runs the LSTM over the sequence (zero initial state) and
// applies the head to the final hidden state. The path task always passes
// a single timestep.
func (m *LSTMRegressor) PredictSequence(seq [][]float64) ([]float64, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("lstm: empty sequence")
	}
	h := m.hiddenDim()

	hidden := make([]float64, h)
	cell := make([]float64, h)

	for t, x := range seq {
		if len(x) != m.inputDim() {
			return nil, fmt.Errorf("lstm: timestep %d has %d features, expected %d", t, len(x), m.inputDim())
		}
		gates := make([]float64, 4*h)
		for i := range gates {
			sum := m.Bias[i]
			for j, v := range x {
				sum += m.WInput[i][j] * v
			}
			for j, v := range hidden {
				sum += m.WHidden[i][j] * v
			}
			gates[i] = sum
		}
		for i := 0; i < h; i++ {
			in := sigmoid(gates[i])
			forget := sigmoid(gates[h+i])
			candidate := math.Tanh(gates[2*h+i])
			out := sigmoid(gates[3*h+i])

			cell[i] = forget*cell[i] + in*candidate
			hidden[i] = out * math.Tanh(cell[i])
		}
	}

	return m.Head.apply(hidden)
}

func (m *LSTMRegressor) validate() error {
	h := m.hiddenDim()
	if h == 0 || m.inputDim() == 0 {
		return fmt.Errorf("lstm artifact has empty weights")
	}
	if len(m.WInput) != 4*h || len(m.WHidden) != 4*h {
		return fmt.Errorf("lstm artifact weight rows must be 4×hidden (%d), got %d input and %d recurrent",
			4*h, len(m.WInput), len(m.WHidden))
	}
	if len(m.Bias) != 4*h {
		return fmt.Errorf("lstm artifact has %d bias terms, expected %d", len(m.Bias), 4*h)
	}
	for i, row := range m.WInput {
		if len(row) != m.inputDim() {
			return fmt.Errorf("lstm artifact has ragged input weight row %d", i)
		}
	}
	for i, row := range m.WHidden {
		if len(row) != h {
			return fmt.Errorf("lstm artifact has ragged recurrent weight row %d", i)
		}
	}
	if err := m.Head.validate(); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	if m.Head.inputDim() != h {
		return fmt.Errorf("head expects %d inputs but hidden state is %d wide", m.Head.inputDim(), h)
	}
	return nil
}
