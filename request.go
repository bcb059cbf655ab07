package main

// TreeRequest 直接传数据建树，最后一列为label
type TreeRequest struct {
	Rows     [][]string `json:"rows"`
	Header   []string   `json:"header"`
	WithData bool       `json:"with_data"`
}

// CsvRequest 从服务端的csv文件建树，Path相对data_config.dir
type CsvRequest struct {
	Path           string `json:"path" binding:"required"`
	HasHeader      bool   `json:"has_header"`
	ExcludeColumns []int  `json:"exclude_columns"`
	WithData       bool   `json:"with_data"`
}

// ClassifyRequest 用Rows建树，再对Row分类
type ClassifyRequest struct {
	Rows   [][]string `json:"rows"`
	Header []string   `json:"header"`
	Row    []string   `json:"row" binding:"required"`
}
