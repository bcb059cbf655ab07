package logger

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// sugar 全局日志，InitLogger之前是nop的，库代码和单测里可以直接打日志
var sugar atomic.Value

func init() {
	sugar.Store(zap.NewNop().Sugar())
}

func get() *zap.SugaredLogger {
	return sugar.Load().(*zap.SugaredLogger)
}

// InitLogger 初始化全局日志，之后的Debugf/Infof等都写到zap里
func InitLogger(level, projectName, logPath string, maxAge, rotationTime time.Duration, rotationSize uint32, dsn string) {
	l, err := initZap(level, projectName, logPath, maxAge, rotationTime, rotationSize, dsn)
	if err != nil {
		panic(err)
	}
	sugar.Store(l.Sugar())
}

// SetLogger 直接替换全局日志，单测里用zap的observer之类的时候用
func SetLogger(l *zap.Logger) {
	sugar.Store(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

func Sync() {
	_ = get().Sync()
}

func Debugf(template string, args ...interface{}) {
	get().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	get().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	get().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	get().Errorf(template, args...)
}

func Info(args ...interface{}) {
	get().Info(args...)
}

func Warn(args ...interface{}) {
	get().Warn(args...)
}

func Error(args ...interface{}) {
	get().Error(args...)
}
