// Package render 把决策树转成展示用的结构：json/yaml视图、graphviz dot、终端表格。
// 只读遍历树，不修改树本身
package render

import (
	"gopkg.in/yaml.v3"

	"dtree-vis/decision_tree/ml/tree"
)

const (
	TypeDecision = "decision"
	TypeLeaf     = "leaf"
)

// View 结点的展示结构
type View struct {
	Type       string     `json:"type" yaml:"type"`
	Desc       string     `json:"desc,omitempty" yaml:"desc,omitempty"`
	Gain       float64    `json:"gain,omitempty" yaml:"gain,omitempty"`
	Entropy    float64    `json:"entropy,omitempty" yaml:"entropy,omitempty"`
	Expression string     `json:"expression,omitempty" yaml:"expression,omitempty"`
	Idx        []int      `json:"idx,omitempty" yaml:"idx,omitempty,flow"`
	Data       [][]string `json:"data,omitempty" yaml:"data,omitempty"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Children   []*View    `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToView 转成视图，withData为false时不带每个结点的原始行
func ToView(n tree.Node, withData bool) *View {
	switch node := n.(type) {
	case *tree.LeafNode:
		return &View{Type: TypeLeaf, Label: node.Label}
	case *tree.DecisionNode:
		v := &View{
			Type:     TypeDecision,
			Desc:     node.Desc,
			Gain:     node.Gain,
			Entropy:  node.Entropy,
			Idx:      node.Idx,
			Children: make([]*View, 0, len(node.Children)),
		}
		if node.Split != nil {
			v.Expression = node.Split.Expression()
		}
		if withData {
			v.Data = node.Data
		}
		for _, child := range node.Children {
			v.Children = append(v.Children, ToView(child, withData))
		}
		return v
	}
	return nil
}

// ToYAML 整棵树导出成yaml，不带原始行
func ToYAML(t *tree.DecisionTree) ([]byte, error) {
	return yaml.Marshal(ToView(t.Root(), false))
}
