// Package ml implements the small set of inference primitives the
// prediction service needs: feature scaling, feedforward networks, a
// single-layer LSTM, gradient-boosted regression trees, and
// centroid/neighbor classifiers. Parameters are exported from the training
// pipeline into portable JSON artifacts; this package only runs forward
// passes, never trains.
//
// Handlers depend on the capability interfaces below, not on concrete
// types, so a different runtime can be swapped in behind them.
package ml

// Scaler standardizes feature vectors and inverts the standardization.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
	InverseTransform(x []float64) ([]float64, error)
	// Fitted reports whether the scaler carries trained parameters.
	Fitted() bool
}

// Network runs a feedforward pass over one feature vector.
type Network interface {
	Forward(x []float64) ([]float64, error)
	InputDim() int
	OutputDim() int
}

// SequenceRegressor predicts a vector from a (timesteps × features) sequence.
type SequenceRegressor interface {
	PredictSequence(seq [][]float64) ([]float64, error)
}

// Regressor predicts a scalar from one feature vector.
type Regressor interface {
	Predict(x []float64) (float64, error)
}

// Clusterer assigns a feature vector to a cluster id.
type Clusterer interface {
	Assign(x []float64) (int, error)
}

// Classifier predicts an integer class label for a feature vector.
type Classifier interface {
	Classify(x []float64) (int, error)
}
