package ml

import "fmt"

// TreeNode is one node of a regression tree stored as a flat array.
// Feature -1 marks a leaf carrying Value; interior nodes route to Left when
// x[Feature] < Threshold and to Right otherwise.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

const leafFeature = -1

// RegressionTree walks its node array from the root at index 0.
type RegressionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *RegressionTree) predict(x []float64) (float64, error) {
	idx := 0
	// Bounded walk: a well-formed tree terminates in at most len(Nodes) hops.
	for range t.Nodes {
		node := t.Nodes[idx]
		if node.Feature == leafFeature {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(x) {
			return 0, fmt.Errorf("tree references feature %d, vector has %d", node.Feature, len(x))
		}
		if x[node.Feature] < node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("tree child index %d out of range", idx)
		}
	}
	return 0, fmt.Errorf("tree walk did not reach a leaf")
}

// TreeEnsemble is a gradient-boosted sum of regression trees.
type TreeEnsemble struct {
	BaseScore float64          `json:"base_score"`
	Trees     []RegressionTree `json:"trees"`
}

// Predict sums the base score and every tree's leaf value for x.
func (e *TreeEnsemble) Predict(x []float64) (float64, error) {
	sum := e.BaseScore
	for i := range e.Trees {
		v, err := e.Trees[i].predict(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	return sum, nil
}

func (e *TreeEnsemble) validate() error {
	if len(e.Trees) == 0 {
		return fmt.Errorf("tree ensemble has no trees")
	}
	for i := range e.Trees {
		if len(e.Trees[i].Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", i)
		}
	}
	return nil
}
