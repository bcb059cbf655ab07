package main

import (
	"context"
	"os"

	"dtree-vis/decision_tree/ml/tree"
	"dtree-vis/decision_tree/render"
	"dtree-vis/rock-share/base/config"
	"dtree-vis/rock-share/base/logger"
	"dtree-vis/utils"
)

// BuildTree 建树并展开
func BuildTree(rows [][]string, header []string, conf config.TreeConfig) (*tree.DecisionTree, error) {
	t, err := tree.NewDecisionTree(rows, header)
	if err != nil {
		return nil, err
	}
	t.SetParallel(conf.Parallel)
	t.SetDescPrecision(conf.DescPrecision)
	if err := t.Build(); err != nil {
		return nil, err
	}
	return t, nil
}

// BuildFromCsv 读csv后建树，返回树和表头
func BuildFromCsv(ctx context.Context, data config.DataConfig, conf config.TreeConfig) (*tree.DecisionTree, error) {
	rows, header, err := utils.LoadTable(ctx, data.Path, data.HasHeader, data.ExcludeColumns)
	if err != nil {
		return nil, err
	}
	return BuildTree(rows, header, conf)
}

// executeStartupData 启动时加载配置里的数据集，打印划分表并写出dot文件
func executeStartupData(ctx context.Context, all *config.AllConfig) error {
	if all.Data.Path == "" {
		return nil
	}
	t, err := BuildFromCsv(ctx, all.Data, all.Tree)
	if err != nil {
		return err
	}
	if root, ok := t.Root().(*tree.DecisionNode); ok {
		logger.Infof("training rows:\n%s", render.RowsTable(root, t.Labels(), nil))
	}
	logger.Infof("splits:\n%s", render.TraceTable(t.SplitTrace()))
	if all.Data.DotPath == "" {
		return nil
	}
	dot, err := render.ToDot(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(all.Data.DotPath, []byte(dot), 0o644); err != nil {
		return err
	}
	logger.Infof("tree written to %s", all.Data.DotPath)
	return nil
}
