package tree

import (
	"fmt"
	"math"

	"dtree-vis/decision_tree/util/add"
	"dtree-vis/decision_tree/util/matrix"
	"dtree-vis/utils"
)

// InformationLoss label分布的香农熵，单位bit。只有一种取值时为0
func InformationLoss(labels []float64) (float64, error) {
	if len(labels) == 0 {
		return 0, fmt.Errorf("information loss: %w", utils.ErrEmptyInput)
	}
	groups := matrix.GroupByIndex(labels, func(x float64) float64 { return x })
	if len(groups) == 1 {
		return 0, nil
	}
	total := float64(len(labels))
	terms := make([]float64, len(groups))
	for i, g := range groups {
		p := float64(len(g.Indexes)) / total
		terms[i] = -p * math.Log2(p)
	}
	return add.Sum(terms...), nil
}

// InformationGain 按feature的取值对行分组后，parent减去各组熵的加权和
func InformationGain(parent float64, feature []float64, label []float64) (float64, error) {
	if len(feature) == 0 {
		return 0, fmt.Errorf("information gain: %w", utils.ErrEmptyInput)
	}
	data, err := matrix.ConcatVectors(feature, label)
	if err != nil {
		return 0, err
	}
	total := float64(len(feature))
	gain := add.NewFloatAdder()
	gain.Add(parent)
	for _, g := range matrix.GroupByIndex(data, func(x []float64) float64 { return x[0] }) {
		groupLabels := make([]float64, len(g.Indexes))
		for i, idx := range g.Indexes {
			groupLabels[i] = data[idx][1]
		}
		loss, err := InformationLoss(groupLabels)
		if err != nil {
			return 0, err
		}
		gain.Add(-float64(len(g.Indexes)) / total * loss)
	}
	return gain.Result(), nil
}
