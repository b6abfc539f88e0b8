package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	Storage    string `yaml:"storage" env-default:"mysql"`
	HTTPServer `yaml:"http_server"`
	DBUser     string `yaml:"db_user" env-default:"root"`
	DBPassword string `yaml:"db_password" env-default:""`
	DBHost     string `yaml:"db_host" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env-default:"3306"`
	DBName     string `yaml:"db_name" env-default:"aps_train"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`

	Scheduling Scheduling `yaml:"scheduling"`

	AdminLogin string `yaml:"admin_login"`
	AdminPass  string `yaml:"admin_pass"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4002"`
	Timeout     time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env-default:"60s"`
}

// Scheduling holds the engine defaults. DefaultWorkers is the fallback worker
// count for dates missing from the availability table.
type Scheduling struct {
	DefaultWorkers     int `yaml:"default_workers" env-default:"5"`
	DefaultHorizonDays int `yaml:"default_horizon_days" env-default:"30"`
	MaxSearchDays      int `yaml:"max_search_days" env-default:"100"`
}

func MustConfig() *Config {
	var cfg Config
	path := "./config/local.yaml"

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
