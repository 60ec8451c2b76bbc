package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/db"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/seed"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
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
	ENV_ADMIN_PASSWORD_HASH  = "ADMIN_PASSWORD_HASH"
	ENV_ADMIN_JWT_SIGN_KEY   = "ADMIN_JWT_SIGN_KEY"
)

const defaultAdminTokenExpiresIn = 8 * time.Hour

type DashboardApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// DB configs
	DBConfigs struct {
		UseMemoryStore bool            `json:"use_memory_store" yaml:"use_memory_store"`
		ResponseDB     db.DBConfigYaml `json:"response_db" yaml:"response_db"`
	} `json:"db_configs" yaml:"db_configs"`

	SurveyConfig struct {
		DefinitionPath string `json:"definition_path" yaml:"definition_path"`
		BanksPath      string `json:"banks_path" yaml:"banks_path"`
		SeedOnStart    bool   `json:"seed_on_start" yaml:"seed_on_start"`
	} `json:"survey_config" yaml:"survey_config"`

	Admin struct {
		// bcrypt hash of the shared dashboard password
		PasswordHash string `json:"password_hash" yaml:"password_hash"`
		JWTSignKey   string `json:"jwt_sign_key" yaml:"jwt_sign_key"`
		JWTExpiresIn string `json:"jwt_expires_in" yaml:"jwt_expires_in"`

		// API clients read their key from DASHBOARD_API_KEY_FOR_<NAME>
		APIClients []string `json:"api_clients" yaml:"api_clients"`

		LoginRateLimit struct {
			PerMinute int `json:"per_minute" yaml:"per_minute"`
			Burst     int `json:"burst" yaml:"burst"`
		} `json:"login_rate_limit" yaml:"login_rate_limit"`
	} `json:"admin" yaml:"admin"`
}

var conf DashboardApiConfig

var (
	responseStore     store.ResponseStore
	surveyDefinition  types.SurveyDefinition
	bankCatalogue     types.BankCatalogue
	apiKeys           []string
	adminTokenExpires time.Duration
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
	readAPIKeys()

	adminTokenExpires = defaultAdminTokenExpiresIn
	if conf.Admin.JWTExpiresIn != "" {
		adminTokenExpires, err = utils.ParseDurationString(conf.Admin.JWTExpiresIn)
		if err != nil {
			slog.Error("Error parsing jwt_expires_in", slog.String("error", err.Error()))
			panic(err)
		}
	}
	if conf.Admin.JWTSignKey == "" {
		panic("admin jwt sign key missing")
	}

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	loadSurveyResources()

	if conf.SurveyConfig.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := seed.Seed(ctx, responseStore, bankCatalogue, seed.Options{RandomSource: seed.DEFAULT_RANDOM_SOURCE}); err != nil {
			slog.Error("Error seeding responses", slog.String("error", err.Error()))
		}
	}
}

func secretsOverride() {
	// Override secrets from environment variables
	if dbUsername := os.Getenv(ENV_RESPONSE_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ResponseDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_RESPONSE_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ResponseDB.Password = dbPassword
	}

	if passwordHash := os.Getenv(ENV_ADMIN_PASSWORD_HASH); passwordHash != "" {
		conf.Admin.PasswordHash = passwordHash
	}

	if signKey := os.Getenv(ENV_ADMIN_JWT_SIGN_KEY); signKey != "" {
		conf.Admin.JWTSignKey = signKey
	}
}

func readAPIKeys() {
	apiKeys = []string{}
	for _, client := range conf.Admin.APIClients {
		envName := utils.GenerateAPIKeyEnvVarName(client)
		key := os.Getenv(envName)
		if key == "" {
			slog.Warn("no api key found for client", slog.String("client", client), slog.String("envVar", envName))
			continue
		}
		apiKeys = append(apiKeys, key)
	}
}

func initDBs() {
	if conf.DBConfigs.UseMemoryStore {
		slog.Warn("using in-memory response store")
		responseStore = store.NewMemoryResponseStore()
		return
	}

	responseDBService, err := responsesDB.NewResponseDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ResponseDB))
	if err != nil {
		slog.Error("Error connecting to Response DB", slog.String("error", err.Error()))
		panic(err)
	}
	responseStore = responseDBService
}

func loadSurveyResources() {
	var err error
	surveyDefinition, err = definition.Load(conf.SurveyConfig.DefinitionPath)
	if err != nil {
		slog.Error("Error loading survey definition", slog.String("error", err.Error()))
		panic(err)
	}

	bankCatalogue, err = definition.LoadBanks(conf.SurveyConfig.BanksPath)
	if err != nil {
		slog.Error("Error loading bank catalogue", slog.String("error", err.Error()))
		panic(err)
	}
}
