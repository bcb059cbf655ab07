package render

import (
	"fmt"
	"html"

	"github.com/awalterschulze/gographviz"

	"dtree-vis/decision_tree/ml/tree"
)

const graphName = "G"

// ToDot 生成graphviz的dot文本，每个树结点一个图结点
func ToDot(t *tree.DecisionTree) (string, error) {
	graphAst, err := gographviz.Parse([]byte(`digraph G{}`))
	if err != nil {
		return "", err
	}
	graph := gographviz.NewGraph()
	if err := gographviz.Analyse(graphAst, graph); err != nil {
		return "", err
	}

	nextId := 0
	var walk func(n tree.Node) (string, error)
	walk = func(n tree.Node) (string, error) {
		id := fmt.Sprintf("n%d", nextId)
		nextId++
		switch node := n.(type) {
		case *tree.LeafNode:
			label := fmt.Sprintf("<label = %s>", html.EscapeString(node.Label))
			if err := graph.AddNode(graphName, id, map[string]string{"label": label, "shape": "box"}); err != nil {
				return "", err
			}
		case *tree.DecisionNode:
			label := fmt.Sprintf("<%s<br/>gain = %.3f<br/>entropy = %.3f<br/>samples = %d>",
				html.EscapeString(node.Desc), node.Gain, node.Entropy, len(node.Idx))
			if err := graph.AddNode(graphName, id, map[string]string{"label": label}); err != nil {
				return "", err
			}
			for _, child := range node.Children {
				childId, err := walk(child)
				if err != nil {
					return "", err
				}
				if err := graph.AddEdge(id, childId, true, nil); err != nil {
					return "", err
				}
			}
		}
		return id, nil
	}
	if _, err := walk(t.Root()); err != nil {
		return "", err
	}
	return graph.String(), nil
}
