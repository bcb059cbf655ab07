package utils

import (
	"fmt"
)

type ServiceError struct {
	Code uint32
	Msg  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError: code=%d, msg=%s", e.Code, e.Msg)
}

var (
	// 数据加载相关: [500000, 510000)
	ErrOpenCsv        = &ServiceError{500001, "open csv error"}
	ErrReadCsv        = &ServiceError{500002, "read csv error"}
	ErrEmptyData      = &ServiceError{500003, "empty data"}
	ErrParameter      = &ServiceError{500005, "invalid parameter"}
	ErrColumnNotExist = &ServiceError{500006, "column not exist"}

	// 编码与建树相关: [510000, 520000)
	ErrEmptyInput       = &ServiceError{510001, "empty input column"}
	ErrUnknownType      = &ServiceError{510002, "unknown column type"}
	ErrNoMatchingBranch = &ServiceError{510003, "no branch matches the row"}
	ErrNotBuilt         = &ServiceError{510004, "tree has not been built"}
)
