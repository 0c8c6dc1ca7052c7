// Command genmodels writes a synthetic model artifact set plus manifest so
// the API can boot and serve predictions without the real training exports.
// The generator is seeded, so repeated runs produce identical artifacts.
//
// Usage:
//
//	go run ./cmd/genmodels -out models -seed 1
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/disaster-predict/internal/ml"
	"github.com/couchcryptid/disaster-predict/internal/registry"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "models", "output directory for artifacts and manifest")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	artifacts := map[string]struct {
		kind  ml.Kind
		model any
	}{
		"earthquake_scaler": {ml.KindStandardScaler, &ml.StandardScaler{
			Mean:  []float64{5.5, 70, 0, 0},
			Scale: []float64{1.5, 120, 30, 60},
		}},
		"autoencoder": {ml.KindAutoencoder, &ml.Autoencoder{
			Encoder: ml.FeedForward{Layers: []ml.Dense{
				randDense(rng, 8, 4, ml.ActivationReLU),
				randDense(rng, 2, 8, ml.ActivationLinear),
			}},
			Decoder: ml.FeedForward{Layers: []ml.Dense{
				randDense(rng, 8, 2, ml.ActivationReLU),
				randDense(rng, 4, 8, ml.ActivationLinear),
			}},
		}},
		"knn_model": {ml.KindKNN, randKNN(rng, 40, 2, 4)},

		"scaler_X": {ml.KindStandardScaler, &ml.StandardScaler{
			Mean:  []float64{15, 90, 40, 12, 8, 1350, 600, 3600, 0, 0},
			Scale: []float64{12, 60, 30, 7, 3, 2500, 900, 5200, 0.7, 0.7},
		}},
		"scaler_y": {ml.KindStandardScaler, &ml.StandardScaler{
			Mean:  []float64{15, 90},
			Scale: []float64{12, 60},
		}},
		"lstm_model": {ml.KindLSTMRegressor, randLSTM(rng, 10, 16, 2)},

		"speed_model": {ml.KindTreeEnsemble, randEnsemble(rng, 25, 13, 20)},
		"dir_model":   {ml.KindTreeEnsemble, randEnsemble(rng, 180, 13, 20)},

		"severity_scaler": {ml.KindStandardScaler, &ml.StandardScaler{
			Mean:  []float64{15, 90, 40, 12, 8, 0, 0},
			Scale: []float64{12, 60, 30, 7, 3, 0.7, 0.7},
		}},
		"severity_encoder": {ml.KindFeedForward, &ml.FeedForward{Layers: []ml.Dense{
			randDense(rng, 8, 7, ml.ActivationReLU),
			randDense(rng, 3, 8, ml.ActivationLinear),
		}}},
		"severity_kmeans": {ml.KindKMeans, randKMeans(rng, 4, 3)},
	}

	entries := make(map[string]registry.ManifestEntry, len(artifacts))
	for name, a := range artifacts {
		file := name + ".json"
		if err := ml.SaveArtifact(filepath.Join(*out, file), a.kind, a.model); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
		entries[name] = registry.ManifestEntry{Path: file, Kind: a.kind}
		log.Printf("wrote %s (%s)", file, a.kind)
	}

	manifestPath := filepath.Join(*out, "manifest.yaml")
	if err := writeManifest(manifestPath, entries); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	log.Printf("wrote manifest: %s", manifestPath)

	// Sanity check: the generated set must load back through the registry.
	reg, err := registry.Load(manifestPath)
	if err != nil {
		return fmt.Errorf("reload generated registry: %w", err)
	}
	log.Printf("verified: %d models load cleanly", reg.Len())
	return nil
}

func writeManifest(path string, entries map[string]registry.ManifestEntry) error {
	data, err := yaml.Marshal(map[string]any{"models": entries})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func randDense(rng *rand.Rand, outDim, inDim int, activation string) ml.Dense {
	weights := make([][]float64, outDim)
	for i := range weights {
		weights[i] = randVector(rng, inDim, 0.5)
	}
	return ml.Dense{
		Weights:    weights,
		Bias:       randVector(rng, outDim, 0.1),
		Activation: activation,
	}
}

func randLSTM(rng *rand.Rand, inputDim, hiddenDim, outputDim int) *ml.LSTMRegressor {
	return &ml.LSTMRegressor{
		WInput:  randMatrix(rng, 4*hiddenDim, inputDim, 0.3),
		WHidden: randMatrix(rng, 4*hiddenDim, hiddenDim, 0.3),
		Bias:    randVector(rng, 4*hiddenDim, 0.1),
		Head:    randDense(rng, outputDim, hiddenDim, ml.ActivationLinear),
	}
}

// randEnsemble builds depth-1 trees (stumps), each splitting on a random
// feature with random leaf values.
func randEnsemble(rng *rand.Rand, baseScore float64, featureDim, trees int) *ml.TreeEnsemble {
	e := &ml.TreeEnsemble{BaseScore: baseScore, Trees: make([]ml.RegressionTree, trees)}
	for i := range e.Trees {
		e.Trees[i] = ml.RegressionTree{Nodes: []ml.TreeNode{
			{Feature: rng.Intn(featureDim), Threshold: rng.NormFloat64(), Left: 1, Right: 2},
			{Feature: -1, Value: rng.NormFloat64() * 2},
			{Feature: -1, Value: rng.NormFloat64() * 2},
		}}
	}
	return e
}

func randKNN(rng *rand.Rand, points, dims, labels int) *ml.KNN {
	k := &ml.KNN{
		K:      5,
		Points: randMatrix(rng, points, dims, 2),
		Labels: make([]int, points),
	}
	for i := range k.Labels {
		k.Labels[i] = i % labels
	}
	return k
}

func randKMeans(rng *rand.Rand, clusters, dims int) *ml.KMeans {
	return &ml.KMeans{Centroids: randMatrix(rng, clusters, dims, 2)}
}

func randMatrix(rng *rand.Rand, rows, cols int, scale float64) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = randVector(rng, cols, scale)
	}
	return m
}

func randVector(rng *rand.Rand, n int, scale float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64() * scale
	}
	return v
}
