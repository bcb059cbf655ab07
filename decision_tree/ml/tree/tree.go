/*
	ID3决策树。每个结点都对自己覆盖的行重新编码(阈值和文本编号都不继承父结点)，
	按信息增益选列，按编码值分组得到子结点，递归直到label一致。
	文本列(以及整数列)用过一次之后在该分支下不再使用，连续值列可以换个阈值再分。
*/

package tree

import (
	"fmt"
	"strconv"
	"sync"

	mapset "github.com/deckarep/golang-set"
	cmap "github.com/orcaman/concurrent-map"
	"github.com/yourbasic/bit"
	"golang.org/x/exp/slices"

	"dtree-vis/decision_tree/format"
	"dtree-vis/decision_tree/util/matrix"
	"dtree-vis/dtree_config"
	"dtree-vis/rock-share/base/logger"
	"dtree-vis/utils"
)

// SplitRecord 一个结点上选中的划分
type SplitRecord struct {
	Feature    FeatureId
	Name       string
	Gain       float64
	Continuous bool
	Threshold  float64 // Threshold 连续值列的阈值
	Rows       int     // Rows 被划分的行数
	Branches   int     // Branches 分出的子结点数
}

type DecisionTree struct {
	root      Node
	labels    []string
	parallel  bool
	precision int
	built     bool
	trace     cmap.ConcurrentMap
}

// NewDecisionTree 对整张表编码一次，算出根结点的熵。空表得到一个label为空的叶子
// labels 为各列的名字，用于划分描述，可以为空
func NewDecisionTree(data [][]string, labels []string) (*DecisionTree, error) {
	t := &DecisionTree{
		labels:    slices.Clone(labels),
		precision: dtree_config.DescPrecision,
		trace:     cmap.New(),
	}
	if len(data) == 0 {
		t.root = &LeafNode{Label: ""}
		return t, nil
	}
	enc, err := format.Classify(data)
	if err != nil {
		return nil, err
	}
	labelCol, err := enc.Column(-1)
	if err != nil {
		return nil, fmt.Errorf("label column: %v: %w", err, utils.ErrColumnNotExist)
	}
	entropy, err := InformationLoss(labelCol)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}
	t.root = &DecisionNode{
		Data:    data,
		Idx:     idx,
		Desc:    dtree_config.RootDesc,
		Gain:    entropy,
		Entropy: entropy,
	}
	return t, nil
}

// SetParallel 兄弟子树是否各起一个协程展开，结果与串行一致
func (t *DecisionTree) SetParallel(parallel bool) {
	t.parallel = parallel
}

// SetDescPrecision 连续值阈值在描述里保留几位小数
func (t *DecisionTree) SetDescPrecision(precision int) {
	if precision >= 0 {
		t.precision = precision
	}
}

func (t *DecisionTree) Root() Node {
	return t.root
}

func (t *DecisionTree) Labels() []string {
	return t.labels
}

func (t *DecisionTree) Built() bool {
	return t.built
}

// SplitTrace 各结点上选中的划分，key为结点路径，根为"0"，其第i个孩子为"0/i"
func (t *DecisionTree) SplitTrace() map[string]SplitRecord {
	out := make(map[string]SplitRecord, t.trace.Count())
	for k, v := range t.trace.Items() {
		out[k] = v.(SplitRecord)
	}
	return out
}

// Build 从根开始深度优先展开整棵树，可以重复调用
func (t *DecisionTree) Build() error {
	root, ok := t.root.(*DecisionNode)
	if !ok {
		t.built = true
		return nil
	}
	t.trace = cmap.New()
	root.Children = nil
	if err := t.buildNode(root, mapset.NewSet(), rootPath); err != nil {
		return err
	}
	t.built = true
	logger.Infof("decision tree built, %d rows, %d splits", len(root.Idx), t.trace.Count())
	return nil
}

func (t *DecisionTree) buildNode(node *DecisionNode, skipCols mapset.Set, path string) error {
	enc, err := format.Classify(node.Data)
	if err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}
	labelIndex := enc.Width() - 1
	labelCol, err := enc.Column(labelIndex)
	if err != nil {
		return fmt.Errorf("node %s: %v: %w", path, err, utils.ErrColumnNotExist)
	}
	node.Entropy, err = InformationLoss(labelCol)
	if err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}

	// label都一样了，到叶子
	if node.Entropy == 0 {
		node.Children = []Node{&LeafNode{Label: decodeLabel(enc, node.Data, labelIndex, labelCol[0])}}
		return nil
	}

	// 对每一列算信息增益，相同增益时取下标小的
	maxGain, maxGainIndex := NEG_INFINITY, -1
	for i := 0; i < labelIndex; i++ {
		col, err := enc.Column(i)
		if err != nil {
			return fmt.Errorf("node %s: %w", path, err)
		}
		if len(utils.Distinct(col)) == 1 {
			logger.Debugf("node %s: skip %d_th column because it has only one value", path, i)
			continue
		}
		if skipCols.Contains(i) {
			logger.Debugf("node %s: skip %d_th column because it has been used", path, i)
			continue
		}
		gain, err := InformationGain(node.Entropy, col, labelCol)
		if err != nil {
			return fmt.Errorf("node %s: %w", path, err)
		}
		logger.Debugf("node %s: information gain of %d_th column is %v", path, i, gain)
		if gain > maxGain {
			maxGain, maxGainIndex = gain, i
		}
	}

	// 没有可用的列了，label还不一致，取多数
	if maxGainIndex < 0 {
		code := majority(labelCol)
		label := decodeLabel(enc, node.Data, labelIndex, code)
		logger.Warnf("node %s: no column left to split %d rows, use majority label %s", path, len(node.Data), label)
		node.Children = []Node{&LeafNode{Label: label}}
		return nil
	}

	colMap := enc.Maps[maxGainIndex]
	childSkip := skipCols.Clone()
	if !colMap.Continuous() {
		childSkip.Add(maxGainIndex)
	}

	groups := matrix.GroupByIndex(enc.Data, func(row []float64) float64 { return row[maxGainIndex] })
	record := SplitRecord{
		Feature:    FeatureId(maxGainIndex),
		Name:       t.featureName(maxGainIndex),
		Gain:       maxGain,
		Continuous: colMap.Continuous(),
		Rows:       len(node.Data),
		Branches:   len(groups),
	}
	if colMap.Continuous() {
		record.Threshold = colMap.Threshold
	}
	t.trace.Set(path, record)

	node.Children = make([]Node, 0, len(groups))
	for _, g := range groups {
		desc, split, err := t.describe(FeatureId(maxGainIndex), g.Key, colMap)
		if err != nil {
			return fmt.Errorf("node %s: %w", path, err)
		}
		idx := make([]int, len(g.Indexes))
		for i, local := range g.Indexes {
			idx[i] = node.Idx[local]
		}
		node.Children = append(node.Children, &DecisionNode{
			Data:  matrix.SelectRows(node.Data, bit.New(g.Indexes...)),
			Idx:   idx,
			Desc:  desc,
			Gain:  maxGain,
			Split: split,
		})
	}

	return t.buildChildren(node, childSkip, path)
}

// buildChildren 递归展开各个孩子，每个孩子拿到自己的一份skipCols
func (t *DecisionTree) buildChildren(node *DecisionNode, skipCols mapset.Set, path string) error {
	if !t.parallel || len(node.Children) < 2 {
		for i, child := range node.Children {
			if err := t.buildNode(child.(*DecisionNode), skipCols.Clone(), path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, len(node.Children))
	var wg sync.WaitGroup
	for i, child := range node.Children {
		wg.Add(1)
		go func(i int, child *DecisionNode, skip mapset.Set) {
			defer wg.Done()
			errs[i] = t.buildNode(child, skip, path+"/"+strconv.Itoa(i))
		}(i, child.(*DecisionNode), skipCols.Clone())
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// describe 生成子结点的描述和对应的划分谓词
func (t *DecisionTree) describe(feature FeatureId, value float64, colMap *format.ColumnMap) (string, *Split, error) {
	name := t.featureName(int(feature))
	switch {
	case colMap.Continuous():
		op := dtree_config.Less
		if value != 0 {
			op = dtree_config.GreaterE
		}
		split, err := newSplit(feature, op, colMap.Threshold, true)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s %s %s", name, op, strconv.FormatFloat(colMap.Threshold, 'f', t.precision, 64)), split, nil
	case colMap != nil:
		raw, ok := colMap.Codes.Value(int(value))
		if !ok {
			return "", nil, fmt.Errorf("code %v of column %d: %w", value, feature, utils.ErrUnknownType)
		}
		split, err := newSplit(feature, dtree_config.Equal, raw, false)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s %s %s", name, dtree_config.Equal, raw), split, nil
	default:
		// 整数列，没有编码，直接用数值
		split, err := newSplit(feature, dtree_config.Equal, value, false)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s %s %s", name, dtree_config.Equal, strconv.FormatFloat(value, 'f', -1, 64)), split, nil
	}
}

// featureName 有表头时用表头，否则用 c<下标>
func (t *DecisionTree) featureName(i int) string {
	if i < len(t.labels) && t.labels[i] != "" {
		return t.labels[i]
	}
	return dtree_config.ColumnPrefix + strconv.Itoa(i)
}

// decodeLabel 把label的编码值还原，浮点label还原不了就取第一条该编码的原始值
func decodeLabel(enc *format.Encoded, rows [][]string, labelIndex int, code float64) string {
	if label, ok := enc.Decode(labelIndex, code); ok {
		return label
	}
	for i, row := range enc.Data {
		if row[labelIndex] == code {
			return rows[i][labelIndex]
		}
	}
	return ""
}

// majority 出现次数最多的编码，次数相同时取先出现的
func majority(labels []float64) float64 {
	groups := matrix.GroupByIndex(labels, func(x float64) float64 { return x })
	best := groups[0]
	for _, g := range groups[1:] {
		if len(g.Indexes) > len(best.Indexes) {
			best = g
		}
	}
	return best.Key
}
