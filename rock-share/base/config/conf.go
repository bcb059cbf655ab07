package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"dtree-vis/dtree_config"
	"dtree-vis/rock-share/base/logger"
)

// All 全部配置索引
var All *AllConfig

var DefaultPath = "./config"
var DebugPath = "./config/debug"

// InitConfig 初始化读取配置文件，读不到直接panic
func InitConfig() {
	all, err := LoadConfig(DefaultPath)
	if err != nil {
		panic(err)
	}
	All = all
}

// LoadConfig 读取dir下的config.yml，DEBUG=true时再叠加DebugPath下的debug.yml
func LoadConfig(dir string) (*AllConfig, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	configType := "yml"
	v.SetConfigType(configType)
	setDefaults(v)

	// 读取配置
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config in %s: %w", dir, err)
	}

	//增量配置
	if os.Getenv("DEBUG") == "true" {
		newConfigPath := DebugPath + "/debug.yml"
		if exists, _ := isExists(newConfigPath); exists {
			logger.Infof("merge debug config %s", newConfigPath)
			v.SetConfigFile(newConfigPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merge %s: %w", newConfigPath, err)
			}
		}
	}

	// 监控配置文件变化
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Infof("config file changed: %s", e.Name)
	})

	// 配置映射到结构体
	all := &AllConfig{}
	if err := v.Unmarshal(all); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if all.Tree.DescPrecision < 0 {
		all.Tree.DescPrecision = dtree_config.DescPrecision
	}
	return all, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_config.http_port", dtree_config.GinPort)
	v.SetDefault("logger_config.level", "info")
	v.SetDefault("logger_config.path", "./logs")
	v.SetDefault("logger_config.max_age", 7)
	v.SetDefault("logger_config.rotation_time", 24)
	v.SetDefault("tree_config.desc_precision", dtree_config.DescPrecision)
	v.SetDefault("data_config.has_header", true)
	v.SetDefault("data_config.dir", dtree_config.DataDir)
}

// AllConfig 全部配置文件
type AllConfig struct {
	Server ServerConfig `mapstructure:"server_config"`
	Logger LoggerConfig `mapstructure:"logger_config"`
	Tree   TreeConfig   `mapstructure:"tree_config"`
	Data   DataConfig   `mapstructure:"data_config"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	HttpPort  string `mapstructure:"http_port"`
	SentryDsn string `mapstructure:"sentry_dsn"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string        `mapstructure:"level"`
	Path         string        `mapstructure:"path"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
	RotationSize uint32        `mapstructure:"rotation_size"`
}

// TreeConfig 建树参数
type TreeConfig struct {
	Parallel      bool `mapstructure:"parallel"`       // Parallel 兄弟子树是否并发展开
	DescPrecision int  `mapstructure:"desc_precision"` // DescPrecision 连续值阈值在描述里保留的小数位
}

// DataConfig 启动时加载的数据集，Path为空则不加载。
// Dir 是 /tree/csv 可以读取的根目录
type DataConfig struct {
	Dir            string `mapstructure:"dir"`
	Path           string `mapstructure:"path"`
	HasHeader      bool   `mapstructure:"has_header"`
	ExcludeColumns []int  `mapstructure:"exclude_columns"`
	DotPath        string `mapstructure:"dot_path"`
}

// 判断所给文件/文件夹是否存在
func isExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
