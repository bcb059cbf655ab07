package tree

import (
	"fmt"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/yourbasic/bit"

	"dtree-vis/dtree_config"
	"dtree-vis/utils"
)

// Node 决策树结点，只有 *DecisionNode 和 *LeafNode 两种
type Node interface {
	IsLeaf() bool
}

// DecisionNode 内部结点
type DecisionNode struct {
	Data     [][]string // Data 该结点覆盖的原始行
	Idx      []int      // Idx 这些行在整张输入表中的下标
	Desc     string     // Desc 划分描述，如 "density < 0.38"
	Gain     float64    // Gain 产生该结点的那次划分的信息增益，根结点为整表的熵
	Entropy  float64    // Entropy 该结点label的熵，Build时计算
	Split    *Split     // Split 从父结点选中这些行的谓词，根结点为nil
	Children []Node     // Children 子结点，顺序为分组时取值首次出现的顺序
}

func (n *DecisionNode) IsLeaf() bool {
	return false
}

// RowSet 该结点覆盖的原始行下标集合
func (n *DecisionNode) RowSet() *bit.Set {
	return bit.New(n.Idx...)
}

// LeafNode 叶子结点，Label为该组所有行共同的label原始值
type LeafNode struct {
	Label string
}

func (n *LeafNode) IsLeaf() bool {
	return true
}

// Split 一次划分的一个分支，可以对新的一行求值判断是否走这个分支
type Split struct {
	Feature    FeatureId   // Feature 划分用的列
	Op         string      // Op 比较符，<、>= 或 =
	Value      interface{} // Value 连续值和整数列为float64，文本列为string
	Continuous bool        // Continuous 是否按阈值划分

	expr *govaluate.EvaluableExpression
}

// Param 谓词里表示该列取值的变量名
func (s *Split) Param() string {
	return dtree_config.ColumnPrefix + strconv.Itoa(int(s.Feature))
}

func newSplit(feature FeatureId, op string, value interface{}, continuous bool) (*Split, error) {
	s := &Split{Feature: feature, Op: op, Value: value, Continuous: continuous}
	exprOp := op
	if op == dtree_config.Equal {
		exprOp = "=="
	}
	expr, err := govaluate.NewEvaluableExpression(fmt.Sprintf("%s %s %s", s.Param(), exprOp, dtree_config.SplitValueParam))
	if err != nil {
		return nil, err
	}
	s.expr = expr
	return s, nil
}

// Expression 谓词表达式
func (s *Split) Expression() string {
	return s.expr.String()
}

// Match 判断一行是否走这个分支，数值列上的值解析不了时不匹配
func (s *Split) Match(row []string) (bool, error) {
	col := int(s.Feature)
	if col >= len(row) {
		return false, fmt.Errorf("row has %d cells, split on column %d: %w", len(row), col, utils.ErrColumnNotExist)
	}
	var cell interface{} = row[col]
	if _, numeric := s.Value.(float64); numeric {
		f, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return false, nil
		}
		cell = f
	}
	result, err := s.expr.Evaluate(map[string]interface{}{
		s.Param():                    cell,
		dtree_config.SplitValueParam: s.Value,
	})
	if err != nil {
		return false, err
	}
	matched, _ := result.(bool)
	return matched, nil
}
