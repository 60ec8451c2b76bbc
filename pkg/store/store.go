package store

import (
	"context"
	"errors"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
	// ErrDuplicateResponse is returned when a response with the same ID is already stored.
	ErrDuplicateResponse = errors.New("response already stored")
)

// ResponseStore is the append-only response collection.
type ResponseStore interface {
	AddResponse(ctx context.Context, response types.SurveyResponse) error
	// AddResponses stores the whole batch or none of it.
	AddResponses(ctx context.Context, responses []types.SurveyResponse) error
	GetResponses(ctx context.Context) ([]types.SurveyResponse, error)
	CountResponses(ctx context.Context) (int64, error)
	// HasCompletedResponse is true once the device submitted a completed (not terminated) survey.
	HasCompletedResponse(ctx context.Context, deviceID string) (bool, error)
}

// DraftStore keeps one resumable draft per device.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft types.Draft) error
	// GetDraft returns ErrDraftNotFound when the device has no draft.
	GetDraft(ctx context.Context, deviceID string) (types.Draft, error)
	DeleteDraft(ctx context.Context, deviceID string) error
}
