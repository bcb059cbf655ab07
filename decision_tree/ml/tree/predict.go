package tree

import (
	"fmt"

	"dtree-vis/utils"
)

// Classify 对一行求label，row 至少要包含所有用到的特征列，label列可有可无
func (t *DecisionTree) Classify(row []string) (string, error) {
	_, label, err := t.Explain(row)
	return label, err
}

// Explain 返回一行从根走到叶子经过的划分描述，以及叶子的label
func (t *DecisionTree) Explain(row []string) ([]string, string, error) {
	if !t.Built() {
		return nil, "", utils.ErrNotBuilt
	}
	node, ok := t.root.(*DecisionNode)
	if !ok {
		return nil, t.root.(*LeafNode).Label, nil
	}
	path := make([]string, 0)
	for {
		var next *DecisionNode
	children:
		for _, child := range node.Children {
			switch c := child.(type) {
			case *LeafNode:
				return path, c.Label, nil
			case *DecisionNode:
				matched, err := c.Split.Match(row)
				if err != nil {
					return path, "", err
				}
				if matched {
					next = c
					break children
				}
			}
		}
		if next == nil {
			return path, "", fmt.Errorf("after %v: %w", path, utils.ErrNoMatchingBranch)
		}
		path = append(path, next.Desc)
		node = next
	}
}
