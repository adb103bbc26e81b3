package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Poll   PollConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type JWTConfig struct {
	Secret string
}

// PollConfig 投票相關設定
// DefaultStatus 決定新建立的投票初始狀態，可為 pending 或 ongoing
type PollConfig struct {
	DefaultStatus string `mapstructure:"default_status"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.name", "voting")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("jwt.secret", "")
	viper.SetDefault("poll.default_status", "ongoing")

	// 環境變數可覆寫設定檔，例如 DB_PASSWORD、JWT_SECRET
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// 設定檔不存在時使用預設值與環境變數
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Poll.DefaultStatus != "pending" && config.Poll.DefaultStatus != "ongoing" {
		return nil, fmt.Errorf("invalid poll.default_status: %q", config.Poll.DefaultStatus)
	}

	return &config, nil
}
