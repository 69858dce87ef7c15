package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game       Game    `yaml:"game"`
	Scoring    Scoring `yaml:"scoring"`
	Redis      Redis   `yaml:"redis"`
}

type Game struct {
	Theme string `yaml:"theme" env:"GAME_THEME" env-default:"tools"`
	// Pairs overrides the theme's own pair count when positive.
	Pairs int `yaml:"pairs" env:"GAME_PAIRS" env-default:"0"`
}

type Scoring struct {
	MatchBonus      int `yaml:"match-bonus" env:"SCORING_MATCH_BONUS" env-default:"2"`
	MismatchPenalty int `yaml:"mismatch-penalty" env:"SCORING_MISMATCH_PENALTY" env-default:"1"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"memorize:snapshots"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
