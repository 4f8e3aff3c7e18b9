// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string   `yaml:"env" env-default:"local"`
	StorePath       string   `yaml:"store_path" env-default:"./data/plasma-store.json"`
	Admins          []string `yaml:"admins" env-default:"yon"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	JWTToken        `yaml:"jwttoken"`
	Links           `yaml:"links"`
	Stats           `yaml:"stats"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес означает работу без кеша, файловое хранилище при этом
// остаётся единственным источником данных.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Links структура с внешними ссылками продукта и задержками шлюза загрузки
type Links struct {
	DiscordInvite string        `yaml:"discord_invite" env-default:"https://discord.gg/g97DXFbcCW"`
	ChannelURL    string        `yaml:"channel_url" env-default:"https://www.youtube.com/@yonyonsyoner"`
	ReleaseURL    string        `yaml:"release_url" env-default:"https://github.com/lpxlsl/plasmadownload/releases/tag/tool"`
	CheckDelay    time.Duration `yaml:"check_delay" env-default:"2s"`
	RedirectDelay time.Duration `yaml:"redirect_delay" env-default:"1s"`
}

// Stats структура с настройками пересчёта счётчика просмотров
type Stats struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" env-default:"2m"`
}

// MustLoad функция для загрузки конфига, путь к файлу берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorePath: %s\n"+
			"Admins: %v\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"Links:\n"+
			"  DiscordInvite: %s\n"+
			"  ChannelURL: %s\n"+
			"  ReleaseURL: %s\n"+
			"Stats:\n"+
			"  RefreshInterval: %s\n",
		c.Env,
		c.StorePath,
		c.Admins,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.DB,
		c.DiscordInvite,
		c.ChannelURL,
		c.ReleaseURL,
		c.RefreshInterval,
	)
}
