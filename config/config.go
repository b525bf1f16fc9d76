package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	TCP   TCPConfig
	DB    DBConfig
	Redis RedisConfig
}

type AppConfig struct {
	Env string
}

type TCPConfig struct {
	Port string
	// LegacyPort serves the bare length-prefix framing profile.
	// Empty means the legacy listener is disabled.
	LegacyPort     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// The .env file is optional: a containerized deployment configures
	// everything through environment variables.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	readTimeout, err := time.ParseDuration(v.GetString("TCP_READ_TIMEOUT"))
	if err != nil {
		readTimeout = 5 * time.Minute
	}

	writeTimeout, err := time.ParseDuration(v.GetString("TCP_WRITE_TIMEOUT"))
	if err != nil {
		writeTimeout = 30 * time.Second
	}

	requestTimeout, err := time.ParseDuration(v.GetString("TCP_REQUEST_TIMEOUT"))
	if err != nil {
		requestTimeout = 30 * time.Second
	}

	port := v.GetString("TCP_PORT")
	if port == "" {
		port = "8888"
	}

	config := &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		TCP: TCPConfig{
			Port:           port,
			LegacyPort:     v.GetString("TCP_LEGACY_PORT"),
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			RequestTimeout: requestTimeout,
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	return config, nil
}
