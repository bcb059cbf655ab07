package format

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"dtree-vis/utils"
)

func TestInferType(t *testing.T) {
	Convey("InferType", t, func() {
		So(InferType("12"), ShouldEqual, Integer)
		So(InferType("-3"), ShouldEqual, Integer)
		So(InferType("0.697"), ShouldEqual, Float)
		So(InferType("-1.5"), ShouldEqual, Float)
		So(InferType("1."), ShouldEqual, Categorical)
		So(InferType(".5"), ShouldEqual, Categorical)
		So(InferType("1e3"), ShouldEqual, Categorical)
		So(InferType(""), ShouldEqual, Categorical)
		So(InferType("青绿"), ShouldEqual, Categorical)
	})

	Convey("InferColumnType widens", t, func() {
		So(InferColumnType([]string{"1", "2"}), ShouldEqual, Integer)
		So(InferColumnType([]string{"1", "2.5"}), ShouldEqual, Float)
		So(InferColumnType([]string{"1", "2.5", "x"}), ShouldEqual, Categorical)
		So(InferColumnType([]string{"99999999999999999999"}), ShouldEqual, Float)
		So(InferColumnType([]string{"1", strings.Repeat("9", 400)}), ShouldEqual, Categorical)
		So(InferColumnType([]string{"1.5", strings.Repeat("9", 400) + ".5"}), ShouldEqual, Categorical)
	})

	Convey("numbers beyond float64 encode as text", t, func() {
		huge := strings.Repeat("9", 400)
		enc, err := Classify([][]string{{huge, "x"}, {"1", "y"}})
		So(err, ShouldBeNil)
		So(enc.Types[0], ShouldEqual, Categorical)
		So(enc.Data, ShouldResemble, [][]float64{{0, 0}, {1, 1}})
	})
}

func TestClassifyCategorical(t *testing.T) {
	Convey("codes follow first occurrence", t, func() {
		m, err := ClassifyCategorical([]string{"b", "a", "b", "c"})
		So(err, ShouldBeNil)
		So(m.Keys(), ShouldResemble, []string{"b", "a", "c"})
		for i, k := range []string{"b", "a", "c"} {
			code, ok := m.Code(k)
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, i)
		}
		v, ok := m.Value(2)
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, "c")
		_, ok = m.Value(3)
		So(ok, ShouldBeFalse)
	})

	Convey("deterministic for the same input", t, func() {
		a, _ := ClassifyCategorical([]string{"x", "y", "x", "z", "y"})
		b, _ := ClassifyCategorical([]string{"x", "y", "x", "z", "y"})
		So(a.Keys(), ShouldResemble, b.Keys())
	})

	Convey("empty column fails", t, func() {
		_, err := ClassifyCategorical(nil)
		So(errors.Is(err, utils.ErrEmptyInput), ShouldBeTrue)
	})
}

func TestClassifyNumeric(t *testing.T) {
	Convey("midpoint of min and max", t, func() {
		mid, err := ClassifyNumeric([]float64{1, 2, 3, 9})
		So(err, ShouldBeNil)
		So(mid, ShouldEqual, 5)

		mid, _ = ClassifyNumeric([]float64{10, 9, -4})
		So(mid, ShouldEqual, 3)
		So(Binarize(2.9, mid), ShouldEqual, 0)
		So(Binarize(3, mid), ShouldEqual, 1)
	})

	Convey("empty column fails", t, func() {
		_, err := ClassifyNumeric([]float64{})
		So(errors.Is(err, utils.ErrEmptyInput), ShouldBeTrue)
	})
}

func TestClassify(t *testing.T) {
	rows := [][]string{
		{"green", "0.697", "3", "yes"},
		{"black", "0.774", "1", "yes"},
		{"green", "0.245", "2", "no"},
		{"white", "0.343", "1", "no"},
	}

	Convey("encode every column", t, func() {
		enc, err := Classify(rows)
		So(err, ShouldBeNil)
		So(enc.Types, ShouldResemble, []ColumnType{Categorical, Float, Integer, Categorical})
		So(enc.Data, ShouldResemble, [][]float64{
			{0, 1, 3, 0},
			{1, 1, 1, 0},
			{0, 0, 2, 1},
			{2, 0, 1, 1},
		})
		So(enc.Maps[1].Continuous(), ShouldBeTrue)
		So(enc.Maps[1].Threshold, ShouldAlmostEqual, (0.245+0.774)/2, 1e-12)
		_, has := enc.Maps[2]
		So(has, ShouldBeFalse)
		So(enc.Maps[2].Continuous(), ShouldBeFalse)
		So(enc.Maps[0].Codes.Keys(), ShouldResemble, []string{"green", "black", "white"})

		label, ok := enc.Decode(-1, 1)
		So(ok, ShouldBeTrue)
		So(label, ShouldEqual, "no")
		n, ok := enc.Decode(2, 3)
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, "3")
		_, ok = enc.Decode(1, 0)
		So(ok, ShouldBeFalse)
	})

	Convey("subset encodes independently", t, func() {
		enc, err := Classify(rows[2:])
		So(err, ShouldBeNil)
		So(enc.Maps[0].Codes.Keys(), ShouldResemble, []string{"green", "white"})
		So(enc.Maps[1].Threshold, ShouldAlmostEqual, (0.245+0.343)/2, 1e-12)
	})

	Convey("empty table fails", t, func() {
		_, err := Classify(nil)
		So(errors.Is(err, utils.ErrEmptyInput), ShouldBeTrue)
	})

	Convey("short row fails", t, func() {
		_, err := Classify([][]string{{"a", "b"}, {"a"}})
		So(errors.Is(err, utils.ErrColumnNotExist), ShouldBeTrue)
	})
}
