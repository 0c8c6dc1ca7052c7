package ml

import "fmt"

// KMeans assigns vectors to the nearest of a fixed set of centroids.
type KMeans struct {
	Centroids [][]float64 `json:"centroids"`
}

// Assign returns the index of the centroid closest to x by squared
// Euclidean distance.
func (k *KMeans) Assign(x []float64) (int, error) {
	if len(k.Centroids) == 0 {
		return 0, fmt.Errorf("kmeans has no centroids")
	}
	best := 0
	bestDist := -1.0
	for i, c := range k.Centroids {
		if len(c) != len(x) {
			return 0, fmt.Errorf("kmeans centroid has %d dimensions, vector has %d", len(c), len(x))
		}
		var dist float64
		for j := range c {
			d := x[j] - c[j]
			dist += d * d
		}
		if bestDist < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best, nil
}

func (k *KMeans) validate() error {
	if len(k.Centroids) == 0 {
		return fmt.Errorf("kmeans artifact has no centroids")
	}
	width := len(k.Centroids[0])
	for i, c := range k.Centroids {
		if len(c) != width {
			return fmt.Errorf("kmeans artifact has ragged centroid %d", i)
		}
	}
	return nil
}
