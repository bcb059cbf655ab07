package dtree_config

const GinPort = "19123"

// DataDir 接口里传的csv路径都相对这个目录
const DataDir = "./data"

// 描述相关
const (
	DescPrecision = 2      // DescPrecision 连续值阈值在描述中保留的小数位，对应toFixed(2)
	RootDesc      = "root" // RootDesc 根结点的描述
	ColumnPrefix  = "c"    // ColumnPrefix 没有表头时用 c<下标> 作为列名
)

// 划分谓词里的参数名
const (
	SplitValueParam = "split_value"
)

// 划分操作符
const (
	Less     = "<"
	GreaterE = ">="
	Equal    = "="
)
