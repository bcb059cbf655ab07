package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"dtree-vis/rock-share/base/config"
	"dtree-vis/utils"
)

var trainRows = [][]string{
	{"red", "small", "yes"},
	{"red", "big", "no"},
	{"blue", "small", "no"},
	{"blue", "big", "no"},
}

func post(r *gin.Engine, path string, body interface{}) (int, map[string]interface{}) {
	raw, err := json.Marshal(body)
	So(err, ShouldBeNil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	resp := map[string]interface{}{}
	So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
	return w.Code, resp
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newRouter(&config.AllConfig{Tree: config.TreeConfig{DescPrecision: 2}})

	Convey("POST /tree", t, func() {
		code, resp := post(r, "/tree", TreeRequest{Rows: trainRows, Header: []string{"color", "size", "ok"}})
		So(code, ShouldEqual, http.StatusOK)
		So(resp["success"], ShouldEqual, true)
		root := resp["tree"].(map[string]interface{})
		So(root["desc"], ShouldEqual, "root")
		children := root["children"].([]interface{})
		So(children[0].(map[string]interface{})["desc"], ShouldEqual, "color = red")
	})

	Convey("POST /tree with ragged rows", t, func() {
		code, resp := post(r, "/tree", TreeRequest{Rows: [][]string{{"a", "b"}, {"a"}}})
		So(code, ShouldEqual, http.StatusOK)
		So(resp["success"], ShouldEqual, false)
		So(resp["code"], ShouldEqual, float64(utils.ErrColumnNotExist.Code))
	})

	Convey("POST /classify", t, func() {
		code, resp := post(r, "/classify", ClassifyRequest{Rows: trainRows, Row: []string{"red", "small"}})
		So(code, ShouldEqual, http.StatusOK)
		So(resp["label"], ShouldEqual, "yes")
		So(resp["path"], ShouldResemble, []interface{}{"c0 = red", "c1 = small"})

		_, resp = post(r, "/classify", ClassifyRequest{Rows: trainRows, Row: []string{"green", "small"}})
		So(resp["success"], ShouldEqual, false)
		So(resp["code"], ShouldEqual, float64(utils.ErrNoMatchingBranch.Code))
	})

	Convey("POST /classify without a row", t, func() {
		code, _ := post(r, "/classify", map[string]interface{}{"rows": trainRows})
		So(code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("POST /tree/csv", t, func() {
		dir := t.TempDir()
		csvRouter := newRouter(&config.AllConfig{
			Tree: config.TreeConfig{DescPrecision: 2},
			Data: config.DataConfig{Dir: dir},
		})
		data := append([][]string{{"id", "color", "size", "ok"}}, withId(trainRows)...)
		So(utils.CreateCsv(filepath.Join(dir, "train.csv"), data), ShouldBeNil)

		Convey("reads files under the data dir", func() {
			code, resp := post(csvRouter, "/tree/csv", CsvRequest{Path: "train.csv", HasHeader: true, ExcludeColumns: []int{0}})
			So(code, ShouldEqual, http.StatusOK)
			So(resp["labels"], ShouldResemble, []interface{}{"color", "size", "ok"})
		})

		Convey("paths outside the data dir are rejected", func() {
			for _, p := range []string{"/etc/hostname", "../x.csv", filepath.Join(dir, "train.csv")} {
				code, resp := post(csvRouter, "/tree/csv", CsvRequest{Path: p, WithData: true})
				So(code, ShouldEqual, http.StatusBadRequest)
				So(resp["success"], ShouldEqual, false)
				So(resp["code"], ShouldEqual, float64(utils.ErrParameter.Code))
				So(resp["tree"], ShouldBeNil)
			}
		})
	})
}

func TestExecuteStartupData(t *testing.T) {
	Convey("startup data writes a dot file", t, func() {
		dir := t.TempDir()
		csvPath := filepath.Join(dir, "train.csv")
		So(utils.CreateCsv(csvPath, trainRows), ShouldBeNil)
		all := &config.AllConfig{Data: config.DataConfig{Path: csvPath, DotPath: filepath.Join(dir, "tree.dot")}}
		So(executeStartupData(context.Background(), all), ShouldBeNil)
		dot, err := os.ReadFile(all.Data.DotPath)
		So(err, ShouldBeNil)
		So(string(dot), ShouldStartWith, "digraph G")
	})

	Convey("no data configured", t, func() {
		So(executeStartupData(context.Background(), &config.AllConfig{}), ShouldBeNil)
	})
}

func withId(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string{string(rune('a' + i))}, row...)
	}
	return out
}
