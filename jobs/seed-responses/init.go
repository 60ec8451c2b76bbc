package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/db"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/definition"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/utils"

	responsesDB "github.com/Fkenogo/brand-health-analytics-banks/pkg/db/responses"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_RESPONSE_DB_USERNAME = "RESPONSE_DB_USERNAME"
	ENV_RESPONSE_DB_PASSWORD = "RESPONSE_DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		ResponseDB db.DBConfigYaml `json:"response_db" yaml:"response_db"`
	} `json:"db_configs" yaml:"db_configs"`

	BanksPath string `json:"banks_path" yaml:"banks_path"`

	Seed struct {
		Count        int   `json:"count" yaml:"count"`
		RandomSource int64 `json:"random_source" yaml:"random_source"`
	} `json:"seed" yaml:"seed"`
}

var conf config

var (
	responseDBService *responsesDB.ResponseDBService
	bankCatalogue     types.BankCatalogue
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.String("error", err.Error()))
	}

	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	bankCatalogue, err = definition.LoadBanks(conf.BanksPath)
	if err != nil {
		slog.Error("Error loading bank catalogue", slog.String("error", err.Error()))
		panic(err)
	}

	// init db
	responseDBService, err = responsesDB.NewResponseDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ResponseDB))
	if err != nil {
		slog.Error("Error connecting to Response DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_RESPONSE_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ResponseDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_RESPONSE_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ResponseDB.Password = dbPassword
	}
}
