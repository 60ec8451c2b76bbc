package responses

import (
	"context"
	"log/slog"
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_RESPONSES = "surveyResponses"
)

type ResponseDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBName          string
}

func NewResponseDBService(configs db.DBConfig) (*ResponseDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	responseDBSc := &ResponseDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBName:          configs.DBName,
	}

	if configs.RunIndexCreation {
		if err := responseDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for response DB", slog.String("error", err.Error()))
		}
	}

	return responseDBSc, nil
}

func (dbService *ResponseDBService) collectionResponses() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBName).Collection(COLLECTION_NAME_RESPONSES)
}

// withTimeout bounds the caller's context by the configured DB timeout.
func (dbService *ResponseDBService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(dbService.timeout)*time.Second)
}

func (dbService *ResponseDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for response DB")
	ctx, cancel := dbService.withTimeout(context.Background())
	defer cancel()

	existing, err := db.ListCollectionIndexes(ctx, dbService.collectionResponses())
	if err != nil {
		return err
	}

	missing := missingIndexes(existing, responseIndexes())
	if len(missing) == 0 {
		slog.Debug("response indexes already present", slog.Int("count", len(existing)))
		return nil
	}
	_, err = dbService.collectionResponses().Indexes().CreateMany(ctx, missing)
	return err
}

func responseIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "deviceID", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("deviceID_1_status_1"),
		},
		{
			Keys: bson.D{
				{Key: "submittedAt", Value: 1},
			},
			Options: options.Index().SetName("submittedAt_1"),
		},
		{
			Keys: bson.D{
				{Key: "country", Value: 1},
				{Key: "submittedAt", Value: 1},
			},
			Options: options.Index().SetName("country_1_submittedAt_1"),
		},
	}
}

// missingIndexes keeps the wanted indexes whose name is not among the existing ones.
func missingIndexes(existing []bson.M, wanted []mongo.IndexModel) []mongo.IndexModel {
	present := map[string]bool{}
	for _, idx := range existing {
		if name, ok := idx["name"].(string); ok {
			present[name] = true
		}
	}
	missing := []mongo.IndexModel{}
	for _, idx := range wanted {
		if idx.Options != nil && idx.Options.Name != nil && present[*idx.Options.Name] {
			continue
		}
		missing = append(missing, idx)
	}
	return missing
}
