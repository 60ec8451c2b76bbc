package responses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

// AddResponse appends one response. The single insert is the atomic unit, no updates follow.
// An existing _id is reported as store.ErrDuplicateResponse.
func (dbService *ResponseDBService) AddResponse(ctx context.Context, response types.SurveyResponse) error {
	ctx, cancel := dbService.withTimeout(ctx)
	defer cancel()

	_, err := dbService.collectionResponses().InsertOne(ctx, response)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", store.ErrDuplicateResponse, response.ID)
	}
	return err
}

// AddResponses inserts the batch in order. When an insert fails, the documents written before
// it are removed again so the collection is left as it was.
func (dbService *ResponseDBService) AddResponses(ctx context.Context, responses []types.SurveyResponse) error {
	if len(responses) == 0 {
		return nil
	}
	ctx, cancel := dbService.withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, len(responses))
	for i, r := range responses {
		docs[i] = r
	}
	_, err := dbService.collectionResponses().InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err == nil {
		return nil
	}

	if written := insertedBeforeFailure(err); written > 0 {
		ids := make([]string, written)
		for i := range ids {
			ids[i] = responses[i].ID
		}
		if _, delErr := dbService.collectionResponses().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); delErr != nil {
			slog.Error("could not roll back partial insert", slog.Int("count", written), slog.String("error", delErr.Error()))
		}
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", store.ErrDuplicateResponse, err.Error())
	}
	return err
}

// insertedBeforeFailure is the number of documents an ordered InsertMany wrote before err.
func insertedBeforeFailure(err error) int {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
		return 0
	}
	first := bwe.WriteErrors[0].Index
	for _, we := range bwe.WriteErrors {
		if we.Index < first {
			first = we.Index
		}
	}
	return first
}

func (dbService *ResponseDBService) GetResponses(ctx context.Context) ([]types.SurveyResponse, error) {
	ctx, cancel := dbService.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	if dbService.noCursorTimeout {
		opts.SetNoCursorTimeout(true)
	}
	cursor, err := dbService.collectionResponses().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []types.SurveyResponse{}
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (dbService *ResponseDBService) CountResponses(ctx context.Context) (int64, error) {
	ctx, cancel := dbService.withTimeout(ctx)
	defer cancel()

	return dbService.collectionResponses().CountDocuments(ctx, bson.M{})
}

func (dbService *ResponseDBService) HasCompletedResponse(ctx context.Context, deviceID string) (bool, error) {
	ctx, cancel := dbService.withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"deviceID": deviceID,
		"status":   types.RESPONSE_STATUS_COMPLETED,
	}
	count, err := dbService.collectionResponses().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAndExecuteOnResponses streams matching responses to fn without loading the whole collection.
// Decoding failures are logged and skipped.
func (dbService *ResponseDBService) FindAndExecuteOnResponses(
	ctx context.Context,
	filter bson.M,
	returnOnError bool,
	fn func(r types.SurveyResponse) error,
) error {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	if dbService.noCursorTimeout {
		opts.SetNoCursorTimeout(true)
	}

	cursor, err := dbService.collectionResponses().Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var response types.SurveyResponse
		if err = cursor.Decode(&response); err != nil {
			slog.Error("Error while decoding response", slog.String("error", err.Error()))
			continue
		}

		if err = fn(response); err != nil {
			slog.Error("Error while executing function on response", slog.String("responseID", response.ID), slog.String("error", err.Error()))
			if returnOnError {
				return err
			}
		}
	}
	return cursor.Err()
}

// CountryFilter builds the query used by exports. Empty country matches all.
func CountryFilter(country string) bson.M {
	if country == "" {
		return bson.M{}
	}
	return bson.M{"country": country}
}
