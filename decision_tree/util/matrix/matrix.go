/*
	行列相关的基础操作，编码、信息增益和建树都基于这里。
	矩阵都是按行存储的 [][]T，不要求规整，但取列时行长度不够会报错。
*/

package matrix

import (
	"errors"
	"fmt"

	"github.com/yourbasic/bit"
	"golang.org/x/exp/slices"
)

var ErrShortRow = errors.New("row is shorter than the requested column")

// Group 按key分组的结果，Indexes 是原始位置，保持出现顺序
type Group[K comparable] struct {
	Key     K
	Indexes []int
}

// Size 返回行数和第一行的列数，空矩阵都是0
func Size[T any](m [][]T) (rows int, cols int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// Column 取第at列，at为负数时从后往前数，-1为最后一列
func Column[T any](m [][]T, at int) ([]T, error) {
	col := make([]T, len(m))
	for i, row := range m {
		idx := at
		if idx < 0 {
			idx += len(row)
		}
		if idx < 0 || idx >= len(row) {
			return nil, fmt.Errorf("row %d has %d cells, column %d: %w", i, len(row), at, ErrShortRow)
		}
		col[i] = row[idx]
	}
	return col, nil
}

// Transpose 转置，列数以第一行为准
func Transpose[T any](m [][]T) ([][]T, error) {
	_, cols := Size(m)
	out := make([][]T, 0, cols)
	for i := 0; i < cols; i++ {
		col, err := Column(m, i)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

// ConcatVectors 两个向量按位置配对成 n*2 的矩阵，a为空时b的每个元素单独成行
func ConcatVectors[T any](a, b []T) ([][]T, error) {
	if len(a) == 0 {
		return singletons(b), nil
	}
	if len(b) < len(a) {
		return nil, fmt.Errorf("concat %d with %d values: %w", len(a), len(b), ErrShortRow)
	}
	out := make([][]T, len(a))
	for i, x := range a {
		out[i] = []T{x, b[i]}
	}
	return out, nil
}

// ConcatColumn 在矩阵后面追加一列，矩阵本身不会被修改
func ConcatColumn[T any](a [][]T, b []T) ([][]T, error) {
	if len(a) == 0 {
		return singletons(b), nil
	}
	if len(b) < len(a) {
		return nil, fmt.Errorf("concat %d rows with %d values: %w", len(a), len(b), ErrShortRow)
	}
	out := make([][]T, len(a))
	for i, row := range a {
		newRow := make([]T, len(row), len(row)+1)
		copy(newRow, row)
		out[i] = append(newRow, b[i])
	}
	return out, nil
}

// ConcatRows 把b的行接在a后面
func ConcatRows[T any](a, b [][]T) [][]T {
	out := make([][]T, 0, len(a)+len(b))
	for _, row := range a {
		out = append(out, slices.Clone(row))
	}
	for _, row := range b {
		out = append(out, slices.Clone(row))
	}
	return out
}

func singletons[T any](b []T) [][]T {
	out := make([][]T, len(b))
	for i, x := range b {
		out[i] = []T{x}
	}
	return out
}

// GroupByIndex 按key对items分组，分组顺序为key第一次出现的顺序，组内为原始位置
// 所有位置恰好出现在一个组中
func GroupByIndex[T any, K comparable](items []T, key func(T) K) []Group[K] {
	groups := make([]Group[K], 0)
	keyPos := make(map[K]int)
	for i, item := range items {
		k := key(item)
		pos, has := keyPos[k]
		if !has {
			pos = len(groups)
			keyPos[k] = pos
			groups = append(groups, Group[K]{Key: k})
		}
		groups[pos].Indexes = append(groups[pos].Indexes, i)
	}
	return groups
}

// SelectRows 取出位置在rows中的行，保持原顺序
func SelectRows[T any](m [][]T, rows *bit.Set) [][]T {
	out := make([][]T, 0, rows.Size())
	for i, row := range m {
		if rows.Contains(i) {
			out = append(out, row)
		}
	}
	return out
}
