/*
	原始数据的编码：每一列先推断类型，再转成数值。
	整数列直接解析，浮点列按(min+max)/2二值化，文本列按首次出现的顺序编号。
	编码只和传进来的这批行有关，每个结点都会对自己的行重新编码。
*/

package format

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/exp/slices"

	"dtree-vis/decision_tree/util/matrix"
	"dtree-vis/utils"
)

// ColumnType 列的类型
type ColumnType int8

const (
	Integer     ColumnType = iota // Integer 整数，解析后原样使用，不记录编码
	Float                         // Float 浮点数，按中点阈值二值化
	Categorical                   // Categorical 文本，按首次出现顺序编号
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("ColumnType(%d)", int8(t))
}

var (
	integerRegex = regexp.MustCompile(`^-?\d+$`)
	floatRegex   = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// InferType 推断单个单元格的类型，匹配不上的都当文本
func InferType(raw string) ColumnType {
	if integerRegex.MatchString(raw) {
		return Integer
	} else if floatRegex.MatchString(raw) {
		return Float
	}
	return Categorical
}

// InferColumnType 一列的类型取所有单元格中最宽的那个，Integer < Float < Categorical。
// 超出int64范围的整数按Float处理，超出float64范围的数按文本处理
func InferColumnType(values []string) ColumnType {
	colType := Integer
	for _, v := range values {
		t := InferType(v)
		if t == Integer {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				t = Float
			}
		}
		if t == Float {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				t = Categorical
			}
		}
		if t > colType {
			colType = t
		}
		if colType == Categorical {
			break
		}
	}
	return colType
}

// CodeMap 文本到编号的有序映射，编号从0开始，按首次出现顺序分配
type CodeMap struct {
	keys  []string
	codes map[string]int
}

func (m *CodeMap) Code(value string) (int, bool) {
	code, has := m.codes[value]
	return code, has
}

// Value 反查编号对应的文本
func (m *CodeMap) Value(code int) (string, bool) {
	if code < 0 || code >= len(m.keys) {
		return "", false
	}
	return m.keys[code], true
}

// Keys 按编号顺序返回所有文本
func (m *CodeMap) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *CodeMap) Len() int {
	return len(m.keys)
}

// ClassifyCategorical 给每个不同的文本分配编号
func ClassifyCategorical(values []string) (*CodeMap, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("classify categorical: %w", utils.ErrEmptyInput)
	}
	m := &CodeMap{codes: make(map[string]int)}
	for _, v := range values {
		if _, has := m.codes[v]; !has {
			m.codes[v] = len(m.keys)
			m.keys = append(m.keys, v)
		}
	}
	return m, nil
}

// ClassifyNumeric 返回最小值和最大值的中点，不是中位数
func ClassifyNumeric(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("classify numeric: %w", utils.ErrEmptyInput)
	}
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		} else if v > maxV {
			maxV = v
		}
	}
	return (minV + maxV) / 2, nil
}

// Binarize 小于阈值为0，否则为1
func Binarize(v, mid float64) float64 {
	if v < mid {
		return 0
	}
	return 1
}

// ColumnMap 一列的编码信息，Float列有Threshold，Categorical列有Codes
type ColumnMap struct {
	Type      ColumnType
	Threshold float64
	Codes     *CodeMap
}

// Continuous 是否是按阈值划分的连续值列，为nil(整数列)时不是
func (c *ColumnMap) Continuous() bool {
	return c != nil && c.Type == Float
}

// Encoded 一批行编码之后的结果
type Encoded struct {
	Data  [][]float64        // Data 编码后的矩阵，形状与原始行相同，最后一列是label
	Types []ColumnType       // Types 各列推断出的类型
	Maps  map[int]*ColumnMap // Maps 只有Float和Categorical列有，Integer列不记录
}

// Width 列数，最后一列是label
func (e *Encoded) Width() int {
	return len(e.Types)
}

// Column 取编码后的第at列，支持负数下标
func (e *Encoded) Column(at int) ([]float64, error) {
	return matrix.Column(e.Data, at)
}

// Decode 把编码值还原成文本，Float列二值化之后还原不了，返回false
func (e *Encoded) Decode(col int, code float64) (string, bool) {
	if col < 0 {
		col += e.Width()
	}
	if col < 0 || col >= e.Width() {
		return "", false
	}
	switch e.Types[col] {
	case Integer:
		return strconv.FormatInt(int64(code), 10), true
	case Categorical:
		return e.Maps[col].Codes.Value(int(code))
	}
	return "", false
}

// Classify 对每一列推断类型并编码，列数以第一行为准，行长度不够时报错
func Classify(rows [][]string) (*Encoded, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("classify table: %w", utils.ErrEmptyInput)
	}
	_, width := matrix.Size(rows)
	columns := make([][]float64, 0, width)
	enc := &Encoded{
		Types: make([]ColumnType, 0, width),
		Maps:  make(map[int]*ColumnMap),
	}
	for i := 0; i < width; i++ {
		col, err := matrix.Column(rows, i)
		if err != nil {
			return nil, fmt.Errorf("classify table: %v: %w", err, utils.ErrColumnNotExist)
		}
		colType := InferColumnType(col)
		encoded := make([]float64, len(col))
		switch colType {
		case Integer:
			for j, v := range col {
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("column %d value %q: %v: %w", i, v, err, utils.ErrUnknownType)
				}
				encoded[j] = float64(n)
			}
		case Float:
			for j, v := range col {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("column %d value %q: %v: %w", i, v, err, utils.ErrUnknownType)
				}
				encoded[j] = f
			}
			mid, err := ClassifyNumeric(encoded)
			if err != nil {
				return nil, err
			}
			for j, f := range encoded {
				encoded[j] = Binarize(f, mid)
			}
			enc.Maps[i] = &ColumnMap{Type: Float, Threshold: mid}
		case Categorical:
			m, err := ClassifyCategorical(col)
			if err != nil {
				return nil, err
			}
			for j, v := range col {
				code, _ := m.Code(v)
				encoded[j] = float64(code)
			}
			enc.Maps[i] = &ColumnMap{Type: Categorical, Codes: m}
		default:
			return nil, fmt.Errorf("column %d type %v: %w", i, colType, utils.ErrUnknownType)
		}
		columns = append(columns, encoded)
		enc.Types = append(enc.Types, colType)
	}
	data, err := matrix.Transpose(columns)
	if err != nil {
		return nil, err
	}
	enc.Data = data
	return enc, nil
}
