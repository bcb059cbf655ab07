package matrix

import (
	"errors"
	"testing"

	"github.com/yourbasic/bit"
	. "github.com/smartystreets/goconvey/convey"
)

func TestColumn(t *testing.T) {
	m := [][]int{{1, 2, 3}, {4, 5, 6}}
	Convey("Column", t, func() {
		col, err := Column(m, 1)
		So(err, ShouldBeNil)
		So(col, ShouldResemble, []int{2, 5})

		col, err = Column(m, -1)
		So(err, ShouldBeNil)
		So(col, ShouldResemble, []int{3, 6})

		col, err = Column(m, -3)
		So(err, ShouldBeNil)
		So(col, ShouldResemble, []int{1, 4})

		_, err = Column(m, 3)
		So(errors.Is(err, ErrShortRow), ShouldBeTrue)
		_, err = Column(m, -4)
		So(errors.Is(err, ErrShortRow), ShouldBeTrue)
		_, err = Column([][]int{{1, 2}, {3}}, 1)
		So(errors.Is(err, ErrShortRow), ShouldBeTrue)
	})
}

func TestTranspose(t *testing.T) {
	Convey("Transpose", t, func() {
		out, err := Transpose([][]string{{"a", "b", "c"}, {"d", "e", "f"}})
		So(err, ShouldBeNil)
		So(out, ShouldResemble, [][]string{{"a", "d"}, {"b", "e"}, {"c", "f"}})

		out, err = Transpose([][]string{})
		So(err, ShouldBeNil)
		So(out, ShouldBeEmpty)

		rows, cols := Size([][]int{{1, 2, 3}})
		So(rows, ShouldEqual, 1)
		So(cols, ShouldEqual, 3)
	})
}

func TestConcat(t *testing.T) {
	Convey("vector with vector", t, func() {
		out, err := ConcatVectors([]float64{0, 1}, []float64{5, 6})
		So(err, ShouldBeNil)
		So(out, ShouldResemble, [][]float64{{0, 5}, {1, 6}})

		out, err = ConcatVectors(nil, []float64{5, 6})
		So(err, ShouldBeNil)
		So(out, ShouldResemble, [][]float64{{5}, {6}})

		_, err = ConcatVectors([]float64{1, 2}, []float64{1})
		So(errors.Is(err, ErrShortRow), ShouldBeTrue)
	})

	Convey("matrix with vector", t, func() {
		a := [][]int{{1, 2}, {3, 4}}
		out, err := ConcatColumn(a, []int{9, 8})
		So(err, ShouldBeNil)
		So(out, ShouldResemble, [][]int{{1, 2, 9}, {3, 4, 8}})
		So(a, ShouldResemble, [][]int{{1, 2}, {3, 4}})
	})

	Convey("matrix with matrix", t, func() {
		out := ConcatRows([][]int{{1, 2}}, [][]int{{3, 4}, {5, 6}})
		So(out, ShouldResemble, [][]int{{1, 2}, {3, 4}, {5, 6}})
	})
}

func TestGroupByIndex(t *testing.T) {
	Convey("GroupByIndex keeps first-seen order and partitions the input", t, func() {
		items := []string{"b", "a", "b", "c", "a", "b"}
		groups := GroupByIndex(items, func(s string) string { return s })
		So(len(groups), ShouldEqual, 3)
		So(groups[0], ShouldResemble, Group[string]{Key: "b", Indexes: []int{0, 2, 5}})
		So(groups[1], ShouldResemble, Group[string]{Key: "a", Indexes: []int{1, 4}})
		So(groups[2], ShouldResemble, Group[string]{Key: "c", Indexes: []int{3}})

		seen := make(map[int]int)
		for _, g := range groups {
			for _, i := range g.Indexes {
				seen[i]++
			}
		}
		So(len(seen), ShouldEqual, len(items))
		for _, n := range seen {
			So(n, ShouldEqual, 1)
		}
	})

	Convey("group rows by a column", t, func() {
		rows := [][]float64{{0, 1}, {1, 1}, {0, 0}}
		groups := GroupByIndex(rows, func(r []float64) float64 { return r[0] })
		So(groups, ShouldResemble, []Group[float64]{{Key: 0, Indexes: []int{0, 2}}, {Key: 1, Indexes: []int{1}}})
	})

	Convey("empty input has no groups", t, func() {
		So(GroupByIndex([]int{}, func(i int) int { return i }), ShouldBeEmpty)
	})
}

func TestSelectRows(t *testing.T) {
	Convey("SelectRows", t, func() {
		rows := [][]string{{"a"}, {"b"}, {"c"}, {"d"}}
		So(SelectRows(rows, bit.New(3, 1)), ShouldResemble, [][]string{{"b"}, {"d"}})
		So(SelectRows(rows, bit.New()), ShouldBeEmpty)
	})
}
