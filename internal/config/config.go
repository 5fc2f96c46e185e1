package config

import (
	"github.com/bahadricoz/shift/library/pg"
	"github.com/bahadricoz/shift/library/yamlenv"
)

type Config struct {
	Postgres pg.PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig       `yaml:"kafka"`
	API      ApiConfig         `yaml:"api"`
}

type KafkaConfig struct {
	Bootstrap        *yamlenv.Env[string] `yaml:"bootstrap"`
	ProducerClientID *yamlenv.Env[string] `yaml:"producer_client_id"`
	Topics           struct {
		Changes *yamlenv.Env[string] `yaml:"changes"`
	} `yaml:"topics"`
}

type ApiConfig struct {
	Port *yamlenv.Env[int] `yaml:"port"`
	// BaseURL is the public application URL used when rendering share
	// links ({base}/?token=...).
	BaseURL *yamlenv.Env[string] `yaml:"baseURL"`
	// SetupKey guards the bootstrap endpoint once access links exist
	// (recovery mode).
	SetupKey *yamlenv.Env[string] `yaml:"setupKey"`
}
