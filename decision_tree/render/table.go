package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/yourbasic/bit"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"dtree-vis/decision_tree/ml/tree"
	"dtree-vis/dtree_config"
)

const highlightMark = "*"

// RowsTable 展示一个结点的原始行，下标在highlight中的行打上标记，highlight可以为nil
func RowsTable(node *tree.DecisionNode, header []string, highlight *bit.Set) string {
	t := table.NewWriter()
	t.SetTitle(node.Desc)
	headerRow := table.Row{"", "#"}
	for i := range firstRow(node.Data) {
		if i < len(header) {
			headerRow = append(headerRow, header[i])
		} else {
			headerRow = append(headerRow, dtree_config.ColumnPrefix+strconv.Itoa(i))
		}
	}
	t.AppendHeader(headerRow)
	for i, row := range node.Data {
		mark := ""
		if highlight != nil && highlight.Contains(node.Idx[i]) {
			mark = highlightMark
		}
		r := table.Row{mark, node.Idx[i]}
		for _, cell := range row {
			r = append(r, cell)
		}
		t.AppendRow(r)
	}
	return t.Render()
}

// pathLess 按路径里每一段的数字比较，"0/2" 排在 "0/10" 前面
func pathLess(a, b string) bool {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		x, errX := strconv.Atoi(as[i])
		y, errY := strconv.Atoi(bs[i])
		if errX != nil || errY != nil {
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
			continue
		}
		if x != y {
			return x < y
		}
	}
	return len(as) < len(bs)
}

func firstRow(data [][]string) []string {
	if len(data) == 0 {
		return nil
	}
	return data[0]
}

// TraceTable 按结点路径排序展示每次划分
func TraceTable(trace map[string]tree.SplitRecord) string {
	t := table.NewWriter()
	t.SetTitle("SPLITS")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Node", AlignHeader: text.AlignCenter},
		{Name: "Gain", Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"Node", "Feature", "Gain", "Threshold", "Rows", "Branches"})
	paths := maps.Keys(trace)
	slices.SortFunc(paths, pathLess)
	for _, path := range paths {
		record := trace[path]
		threshold := "/"
		if record.Continuous {
			threshold = fmt.Sprintf("%.4f", record.Threshold)
		}
		t.AppendRow(table.Row{path, record.Name, fmt.Sprintf("%.4f", record.Gain), threshold, record.Rows, record.Branches})
	}
	return t.Render()
}
