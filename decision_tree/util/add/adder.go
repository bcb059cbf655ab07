package add

// FloatAdder 用于浮点数累加，Kahan求和，零值可以直接用
type FloatAdder struct {
	sum float64 // 当前累和结果
	c   float64 // 误差补偿
}

func NewFloatAdder() *FloatAdder {
	return new(FloatAdder)
}

func (adder *FloatAdder) Add(num float64) {
	y := num + (*adder).c
	t := (*adder).sum + y
	(*adder).c = y - (t - (*adder).sum)
	(*adder).sum = t
}

func (adder *FloatAdder) Result() float64 {
	return (*adder).sum
}

// Sum 对一组数做补偿求和
func Sum(nums ...float64) float64 {
	var adder FloatAdder
	for _, num := range nums {
		adder.Add(num)
	}
	return adder.Result()
}
