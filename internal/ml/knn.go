package ml

import (
	"fmt"
	"sort"
)

// KNN classifies by majority vote among the K nearest reference points.
// Reference points and labels come from the training pipeline's fitted
// neighbor model.
type KNN struct {
	K      int         `json:"k"`
	Points [][]float64 `json:"points"`
	Labels []int       `json:"labels"`
}

// Classify returns the majority label among the K nearest points. Distance
// ties and vote ties resolve toward the smaller label, matching the
// deterministic ordering of the exported model.
func (k *KNN) Classify(x []float64) (int, error) {
	if len(k.Points) == 0 {
		return 0, fmt.Errorf("knn has no reference points")
	}

	type neighbor struct {
		dist  float64
		label int
	}
	neighbors := make([]neighbor, len(k.Points))
	for i, p := range k.Points {
		if len(p) != len(x) {
			return 0, fmt.Errorf("knn point has %d dimensions, vector has %d", len(p), len(x))
		}
		var dist float64
		for j := range p {
			d := x[j] - p[j]
			dist += d * d
		}
		neighbors[i] = neighbor{dist: dist, label: k.Labels[i]}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].dist != neighbors[j].dist {
			return neighbors[i].dist < neighbors[j].dist
		}
		return neighbors[i].label < neighbors[j].label
	})

	n := k.K
	if n <= 0 || n > len(neighbors) {
		n = len(neighbors)
	}

	votes := make(map[int]int, n)
	for _, nb := range neighbors[:n] {
		votes[nb.label]++
	}

	best, bestVotes := 0, -1
	for label, count := range votes {
		if count > bestVotes || (count == bestVotes && label < best) {
			best, bestVotes = label, count
		}
	}
	return best, nil
}

func (k *KNN) validate() error {
	if len(k.Points) == 0 {
		return fmt.Errorf("knn artifact has no reference points")
	}
	if len(k.Labels) != len(k.Points) {
		return fmt.Errorf("knn artifact has %d labels for %d points", len(k.Labels), len(k.Points))
	}
	width := len(k.Points[0])
	for i, p := range k.Points {
		if len(p) != width {
			return fmt.Errorf("knn artifact has ragged point %d", i)
		}
	}
	return nil
}
