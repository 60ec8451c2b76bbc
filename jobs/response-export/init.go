package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/db"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/definition"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/utils"

	responsesDB "github.com/Fkenogo/brand-health-analytics-banks/pkg/db/responses"
	surveyresponses "github.com/Fkenogo/brand-health-analytics-banks/pkg/exporter/survey-responses"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_RESPONSE_DB_USERNAME = "RESPONSE_DB_USERNAME"
	ENV_RESPONSE_DB_PASSWORD = "RESPONSE_DB_PASSWORD"
)

type ResponseExportTask struct {
	// Name becomes part of the file name
	Name         string `json:"name" yaml:"name"`
	Country      string `json:"country" yaml:"country"`             // empty for all countries
	ExportFormat string `json:"export_format" yaml:"export_format"` // csv or json
}

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		ResponseDB db.DBConfigYaml `json:"response_db" yaml:"response_db"`
	} `json:"db_configs" yaml:"db_configs"`

	DefinitionPath string `json:"definition_path" yaml:"definition_path"`
	ExportPath     string `json:"export_path" yaml:"export_path"`

	ResponseExports struct {
		RetentionDays int                  `json:"retention_days" yaml:"retention_days"`
		OverrideOld   bool                 `json:"override_old" yaml:"override_old"`
		ExportTasks   []ResponseExportTask `json:"export_tasks" yaml:"export_tasks"`
	} `json:"response_exports" yaml:"response_exports"`
}

var conf config

var (
	responseDBService *responsesDB.ResponseDBService
	surveyDefinition  types.SurveyDefinition
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

	if err := validateConfig(); err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))
		panic(err)
	}

	surveyDefinition, err = definition.Load(conf.DefinitionPath)
	if err != nil {
		slog.Error("Error loading survey definition", slog.String("error", err.Error()))
		panic(err)
	}

	// init db
	initDBs()

	if _, err := os.Stat(conf.ExportPath); os.IsNotExist(err) {
		// create folder
		err = os.MkdirAll(conf.ExportPath, os.ModePerm)
		if err != nil {
			slog.Error("Error creating export path", slog.String("error", err.Error()))
			panic(err)
		}
		slog.Info("Created export path", slog.String("path", conf.ExportPath))
	}
}

func validateConfig() error {
	if conf.ResponseExports.RetentionDays < 1 {
		return fmt.Errorf("retention days must be greater than 0")
	}
	if conf.ExportPath == "" {
		return fmt.Errorf("export path must be set to define where to store the export files")
	}
	for _, task := range conf.ResponseExports.ExportTasks {
		if !utils.IsURLSafe(task.Name) {
			return fmt.Errorf("export task name %q must only contain letters, digits, '-' and '_'", task.Name)
		}
		if task.Country != "" && !utils.ContainsString(types.SUPPORTED_COUNTRIES, task.Country) {
			return fmt.Errorf("export task %s: unknown country %q", task.Name, task.Country)
		}
		if task.ExportFormat != surveyresponses.EXPORT_FORMAT_CSV && task.ExportFormat != surveyresponses.EXPORT_FORMAT_JSON {
			return fmt.Errorf("export task %s: unsupported format %q", task.Name, task.ExportFormat)
		}
	}
	return nil
}

func secretsOverride() {
	// Override secrets from environment variables

	if dbUsername := os.Getenv(ENV_RESPONSE_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ResponseDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_RESPONSE_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ResponseDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
	responseDBService, err = responsesDB.NewResponseDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ResponseDB))
	if err != nil {
		slog.Error("Error connecting to Response DB", slog.String("error", err.Error()))
		panic(err)
	}
}
