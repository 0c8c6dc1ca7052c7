// Package registry holds the process-wide set of loaded model artifacts.
// The set is built once at startup from a YAML manifest and never mutated,
// so request handlers read it concurrently without locking. Picking up new
// artifacts requires a restart.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/disaster-predict/internal/ml"
)

// NotFoundError reports a lookup for a model name the manifest never
// defined. It signals a deployment defect, not a caller mistake.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("model %q not found; available models: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// manifest is the YAML file mapping model names to artifact files.
type manifest struct {
	Models map[string]ManifestEntry `yaml:"models"`
}

// ManifestEntry locates one artifact. Path is relative to the manifest
// file unless absolute. Kind, when set, is cross-checked against the
// artifact's own kind tag.
type ManifestEntry struct {
	Path string  `yaml:"path"`
	Kind ml.Kind `yaml:"kind,omitempty"`
}

// Registry is the immutable name → model set.
type Registry struct {
	models map[string]any
}

// Load reads the manifest and eagerly loads every artifact it names,
// failing on the first problem. A partially loaded registry would permit
// nonsensical predictions, so callers are expected to abort on error.
func Load(manifestPath string) (*Registry, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", manifestPath, err)
	}
	if len(m.Models) == 0 {
		return nil, fmt.Errorf("manifest %s defines no models", manifestPath)
	}

	baseDir := filepath.Dir(manifestPath)
	models := make(map[string]any, len(m.Models))
	for name, entry := range m.Models {
		if entry.Path == "" {
			return nil, fmt.Errorf("model %q has no artifact path", name)
		}
		path := entry.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		model, kind, err := ml.LoadArtifact(path)
		if err != nil {
			return nil, fmt.Errorf("load model %q: %w", name, err)
		}
		if entry.Kind != "" && entry.Kind != kind {
			return nil, fmt.Errorf("model %q: manifest declares kind %q but artifact is %q", name, entry.Kind, kind)
		}
		models[name] = model
	}

	return New(models), nil
}

// New builds a registry from already constructed models. Tests and the
// synthetic generator use it directly.
func New(models map[string]any) *Registry {
	return &Registry{models: models}
}

// Len returns the number of loaded models.
func (r *Registry) Len() int {
	return len(r.models)
}

// Names returns the loaded model names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string) (any, error) {
	model, ok := r.models[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Available: r.Names()}
	}
	return model, nil
}

// Scaler returns the named model as a feature scaler.
func (r *Registry) Scaler(name string) (ml.Scaler, error) {
	model, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	s, ok := model.(ml.Scaler)
	if !ok {
		return nil, fmt.Errorf("model %q is not a scaler", name)
	}
	return s, nil
}

// Autoencoder returns the named model as an autoencoder.
func (r *Registry) Autoencoder(name string) (*ml.Autoencoder, error) {
	model, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	a, ok := model.(*ml.Autoencoder)
	if !ok {
		return nil, fmt.Errorf("model %q is not an autoencoder", name)
	}
	return a, nil
}

// Network returns the named model as a feedforward network.
func (r *Registry) Network(name string) (ml.Network, error) {
	model, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	n, ok := model.(ml.Network)
	if !ok {
		return nil, fmt.Errorf("model %q is not a network", name)
	}
	return n, nil
}

// SequenceRegressor returns the named model as a sequence regressor.
func (r *Registry) SequenceRegressor(name string) (ml.SequenceRegressor, error) {
	model, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	s, ok := model.(ml.SequenceRegressor)
	if !ok {
		return nil, fmt.Errorf("model %q is not a sequence regressor", name)
	}
	return s, nil
}

// Regressor returns the named model as a scalar regressor.
func (r *Registry) Regressor(name string) (ml.Regressor, error) {
	model, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	reg, ok := model.(ml.Regressor)
	if !ok {
		return nil, fmt.Errorf("model %q is not a regressor", name)
	}
	return reg, nil
}

// Clusterer returns the named model as a clusterer.
func (r *Registry) Clusterer(name string) (ml.Clusterer, error) {
	model, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	c, ok := model.(ml.Clusterer)
	if !ok {
		return nil, fmt.Errorf("model %q is not a clusterer", name)
	}
	return c, nil
}

// Classifier returns the named model as a classifier.
func (r *Registry) Classifier(name string) (ml.Classifier, error) {
	model, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	c, ok := model.(ml.Classifier)
	if !ok {
		return nil, fmt.Errorf("model %q is not a classifier", name)
	}
	return c, nil
}
