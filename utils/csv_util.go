package utils

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bovinae/common/util"
	"golang.org/x/exp/slices"

	"dtree-vis/decision_tree/util/matrix"
	"dtree-vis/rock-share/base/logger"
)

// ResolveDataPath 把相对路径name限定在root目录下，绝对路径和跳出root的路径都不允许
func ResolveDataPath(root, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", fmt.Errorf("path %q: %w", name, ErrParameter)
	}
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q: %w", name, ErrParameter)
	}
	return filepath.Join(root, clean), nil
}

// LoadTable 读取csv文件，返回去掉表头和排除列之后的数据，以及表头(没有表头时为nil)
// excludeColumns 为要去掉的列的下标，同时作用于表头和数据
func LoadTable(ctx context.Context, path string, hasHeader bool, excludeColumns []int) ([][]string, []string, error) {
	preData, err := util.NewCsvClient().ReadCsvFile(ctx, path)
	if err != nil {
		logger.Errorf("read csv %s failed, err:%v", path, err)
		return nil, nil, fmt.Errorf("%s: %w", path, ErrReadCsv)
	}
	// 空行直接丢掉
	records := make([][]string, 0, len(preData))
	for _, record := range preData {
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}
		records = append(records, record)
	}

	var header []string
	if hasHeader && len(records) > 0 {
		header = excludeCells(records[0], excludeColumns)
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyData)
	}

	// 按列取出再转置回来，行长度不够的话在这里就报错
	columns := make([][]string, 0, len(records[0]))
	for i := range records[0] {
		if slices.Contains(excludeColumns, i) {
			continue
		}
		col, err := matrix.Column(records, i)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %v: %w", path, err, ErrColumnNotExist)
		}
		columns = append(columns, col)
	}
	data, err := matrix.Transpose(columns)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %v: %w", path, err, ErrColumnNotExist)
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%s: all columns excluded: %w", path, ErrEmptyData)
	}
	logger.Infof("load %d rows(%d columns) from %s", len(data), len(columns), path)
	return data, header, nil
}

func excludeCells(row []string, excludeColumns []int) []string {
	out := make([]string, 0, len(row))
	for i, cell := range row {
		if !slices.Contains(excludeColumns, i) {
			out = append(out, cell)
		}
	}
	return out
}

func CreateCsv(path string, data [][]string) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrOpenCsv)
	}
	defer csvFile.Close()
	csvWriter := csv.NewWriter(csvFile)
	err = csvWriter.WriteAll(data)
	if err != nil {
		logger.Errorf("write csv %s failed, err:%v", path, err)
		return err
	}
	return nil
}
