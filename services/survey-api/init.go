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
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/memdb"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/seed"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/definition"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/utils"

	responsesDB "github.com/Fkenogo/brand-health-analytics-banks/pkg/db/responses"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_RESPONSE_DB_USERNAME = "RESPONSE_DB_USERNAME"
	ENV_RESPONSE_DB_PASSWORD = "RESPONSE_DB_PASSWORD"
	ENV_REDIS_PASSWORD       = "REDIS_PASSWORD"
)

type SurveyApiConfig struct {
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
		// UseMemoryStore keeps responses and drafts in process memory (local development).
		UseMemoryStore bool            `json:"use_memory_store" yaml:"use_memory_store"`
		ResponseDB     db.DBConfigYaml `json:"response_db" yaml:"response_db"`
	} `json:"db_configs" yaml:"db_configs"`

	Redis memdb.RedisConfig `json:"redis" yaml:"redis"`

	SurveyConfig struct {
		DefinitionPath string `json:"definition_path" yaml:"definition_path"`
		BanksPath      string `json:"banks_path" yaml:"banks_path"`
		SeedOnStart    bool   `json:"seed_on_start" yaml:"seed_on_start"`
		RateLimit      struct {
			PerMinute int `json:"per_minute" yaml:"per_minute"`
			Burst     int `json:"burst" yaml:"burst"`
		} `json:"rate_limit" yaml:"rate_limit"`
	} `json:"survey_config" yaml:"survey_config"`
}

var conf SurveyApiConfig

var (
	responseStore store.ResponseStore
	draftStore    store.DraftStore
	surveyService *survey.SurveyService
)

func init() {
	// optional .env next to the binary, real env vars win
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

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	initSurveyService()

	if conf.SurveyConfig.SeedOnStart {
		seedResponses()
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

	if redisPassword := os.Getenv(ENV_REDIS_PASSWORD); redisPassword != "" {
		conf.Redis.Password = redisPassword
	}
}

func initDBs() {
	if conf.DBConfigs.UseMemoryStore {
		slog.Warn("using in-memory stores, responses are lost on restart")
		responseStore = store.NewMemoryResponseStore()
		draftStore = store.NewMemoryDraftStore()
		return
	}

	responseDBService, err := responsesDB.NewResponseDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ResponseDB))
	if err != nil {
		slog.Error("Error connecting to Response DB", slog.String("error", err.Error()))
		panic(err)
	}
	responseStore = responseDBService

	redisClient, err := memdb.NewRedisClient(conf.Redis)
	if err != nil {
		slog.Error("Error connecting to Redis", slog.String("error", err.Error()))
		panic(err)
	}

	draftTTL := memdb.DefaultDraftTTL
	if conf.Redis.DraftTTL != "" {
		draftTTL, err = utils.ParseDurationString(conf.Redis.DraftTTL)
		if err != nil {
			slog.Error("Error parsing draft TTL", slog.String("error", err.Error()))
			panic(err)
		}
	}
	draftStore = memdb.NewDraftDB(redisClient, draftTTL)
}

func initSurveyService() {
	def, err := definition.Load(conf.SurveyConfig.DefinitionPath)
	if err != nil {
		slog.Error("Error loading survey definition", slog.String("error", err.Error()))
		panic(err)
	}

	banks, err := definition.LoadBanks(conf.SurveyConfig.BanksPath)
	if err != nil {
		slog.Error("Error loading bank catalogue", slog.String("error", err.Error()))
		panic(err)
	}

	slog.Info("survey definition loaded",
		slog.String("key", def.Key),
		slog.String("version", def.Version),
		slog.Int("questions", len(def.Questions)),
		slog.Int("banks", len(banks)),
	)
	surveyService = survey.NewSurveyService(def, banks, responseStore, draftStore)
}

func seedResponses() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := seed.Seed(ctx, responseStore, surveyService.Banks(), seed.Options{RandomSource: seed.DEFAULT_RANDOM_SOURCE})
	if err != nil {
		slog.Error("Error seeding responses", slog.String("error", err.Error()))
		return
	}
	slog.Info("seed step finished", slog.Int("written", n))
}
