package tree

import "math"

// FeatureId 标志一个属性，即列下标
type FeatureId int

var NEG_INFINITY = math.Inf(-1)

// rootPath 根结点在SplitTrace里的路径，子结点依次追加 /<第几个孩子>
const rootPath = "0"
