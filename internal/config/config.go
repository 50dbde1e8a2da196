package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis      Redis         `yaml:"redis"`
	RoundTTL   time.Duration `yaml:"round-ttl" env:"ROUND_TTL" env-default:"24h"`
	Dictionary Dictionary    `yaml:"dictionary"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Dictionary selects where words come from. An empty Path means the embedded
// list; a non-empty SQLitePath keeps the words in a SQLite table.
type Dictionary struct {
	Path       string `yaml:"path" env:"DICTIONARY_PATH"`
	SQLitePath string `yaml:"sqlite-path" env:"DICTIONARY_SQLITE_PATH"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
