package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dtree-vis/decision_tree/render"
	"dtree-vis/rock-share/base/config"
	"dtree-vis/rock-share/base/logger"
	"dtree-vis/utils"
)

func main() {
	// 一些初始化配置
	config.InitConfig()
	all := config.All
	l := all.Logger
	ss := all.Server
	logger.InitLogger(l.Level, "dtree-vis", l.Path, l.MaxAge, l.RotationTime, l.RotationSize, ss.SentryDsn)
	defer logger.Sync()

	if err := executeStartupData(context.Background(), all); err != nil {
		logger.Errorf("build startup data %s failed: %v", all.Data.Path, err)
	}

	r := newRouter(all)
	address := ":" + ss.HttpPort
	if err := r.Run(address); err != nil {
		logger.Errorf("gin run on %s failed: %v", address, err)
	}
}

func newRouter(all *config.AllConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/tree", func(c *gin.Context) { buildHandler(c, all.Tree) })
	r.POST("/tree/csv", func(c *gin.Context) { buildCsvHandler(c, all.Data.Dir, all.Tree) })
	r.POST("/classify", func(c *gin.Context) { classifyHandler(c, all.Tree) })
	return r
}

func buildHandler(c *gin.Context, conf config.TreeConfig) {
	var req TreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t, err := BuildTree(req.Rows, req.Header, conf)
	if err != nil {
		failed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"labels":  t.Labels(),
		"tree":    render.ToView(t.Root(), req.WithData),
	})
}

func buildCsvHandler(c *gin.Context, dataDir string, conf config.TreeConfig) {
	var req CsvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	path, err := utils.ResolveDataPath(dataDir, req.Path)
	if err != nil {
		badRequest(c, err)
		return
	}
	t, err := BuildFromCsv(c.Request.Context(), config.DataConfig{
		Path:           path,
		HasHeader:      req.HasHeader,
		ExcludeColumns: req.ExcludeColumns,
	}, conf)
	if err != nil {
		failed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"labels":  t.Labels(),
		"tree":    render.ToView(t.Root(), req.WithData),
	})
}

func classifyHandler(c *gin.Context, conf config.TreeConfig) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t, err := BuildTree(req.Rows, req.Header, conf)
	if err != nil {
		failed(c, err)
		return
	}
	path, label, err := t.Explain(req.Row)
	if err != nil {
		failed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"label":   label,
		"path":    path,
	})
}

func badRequest(c *gin.Context, err error) {
	logger.Warnf("bad request on %s: %v", c.FullPath(), err)
	c.JSON(http.StatusBadRequest, errorBody(err))
}

func failed(c *gin.Context, err error) {
	logger.Errorf("request on %s failed: %v", c.FullPath(), err)
	c.JSON(http.StatusOK, errorBody(err))
}

func errorBody(err error) gin.H {
	resp := gin.H{
		"success": false,
		"error":   err.Error(),
	}
	var se *utils.ServiceError
	if errors.As(err, &se) {
		resp["code"] = se.Code
	}
	return resp
}
