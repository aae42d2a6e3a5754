package config

import (
	"log"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance Config
	once     sync.Once
)

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		if err := v.ReadInConfig(); err != nil {
			// 没有配置文件时仅靠环境变量也能跑起来
			log.Printf("未读取到配置文件: %v", err)
		}
		if err := v.Unmarshal(&instance); err != nil {
			log.Fatalf("解析配置文件失败: %v", err)
		}

		// 环境变量覆盖（前缀 OA，如 OA_MYSQL_HOST）
		if err := envconfig.Process("oa", &instance); err != nil {
			log.Fatalf("读取环境变量配置失败: %v", err)
		}

		applyDefaults(&instance)
	})
}

func Get() *Config {
	return &instance
}

func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Prefix == "" {
		c.Prefix = "api"
	}
	if c.Mode != ModeRelease {
		c.Mode = ModeDebug
	}
	if c.JWT.AccessExpire <= 0 {
		c.JWT.AccessExpire = 7 * 24 * 3600
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Redis.StatsTTLSeconds < 0 {
		c.Redis.StatsTTLSeconds = 0
	}
}
