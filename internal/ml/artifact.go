package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// Kind identifies the model type stored in an artifact file.
type Kind string

// Artifact kinds understood by LoadArtifact.
const (
	KindStandardScaler Kind = "standard_scaler"
	KindAutoencoder    Kind = "autoencoder"
	KindFeedForward    Kind = "feedforward"
	KindLSTMRegressor  Kind = "lstm_regressor"
	KindTreeEnsemble   Kind = "tree_ensemble"
	KindKMeans         Kind = "kmeans"
	KindKNN            Kind = "knn"
)

// artifactFile is the on-disk envelope: a kind tag plus the model's
// parameters in that kind's own JSON shape.
type artifactFile struct {
	Kind  Kind            `json:"kind"`
	Model json.RawMessage `json:"model"`
}

// validator is implemented by every model type so artifacts are checked
// for internal consistency at load time, not at first prediction.
type validator interface {
	validate() error
}

// LoadArtifact reads and validates one model artifact. The returned value
// is the concrete model type for the artifact's kind.
func LoadArtifact(path string) (any, Kind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read artifact: %w", err)
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("parse artifact %s: %w", path, err)
	}

	model, err := decodeModel(file.Kind, file.Model)
	if err != nil {
		return nil, "", fmt.Errorf("artifact %s: %w", path, err)
	}
	if err := model.(validator).validate(); err != nil {
		return nil, "", fmt.Errorf("artifact %s: %w", path, err)
	}
	return model, file.Kind, nil
}

func decodeModel(kind Kind, raw json.RawMessage) (any, error) {
	var model any
	switch kind {
	case KindStandardScaler:
		model = &StandardScaler{}
	case KindAutoencoder:
		model = &Autoencoder{}
	case KindFeedForward:
		model = &FeedForward{}
	case KindLSTMRegressor:
		model = &LSTMRegressor{}
	case KindTreeEnsemble:
		model = &TreeEnsemble{}
	case KindKMeans:
		model = &KMeans{}
	case KindKNN:
		model = &KNN{}
	default:
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}
	if err := json.Unmarshal(raw, model); err != nil {
		return nil, fmt.Errorf("parse %s model: %w", kind, err)
	}
	return model, nil
}

// SaveArtifact writes a model as an artifact file. Used by the synthetic
// model generator; the real artifacts come from the training exporter.
func SaveArtifact(path string, kind Kind, model any) error {
	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("serialize %s model: %w", kind, err)
	}
	data, err := json.MarshalIndent(artifactFile{Kind: kind, Model: raw}, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize artifact: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
