package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

// MemoryResponseStore keeps responses in process memory. Appends are serialized, reads share
// the lock and receive a copy of the collection.
type MemoryResponseStore struct {
	mu        sync.RWMutex
	responses []types.SurveyResponse
	ids       map[string]struct{}
}

func NewMemoryResponseStore() *MemoryResponseStore {
	return &MemoryResponseStore{responses: []types.SurveyResponse{}, ids: map[string]struct{}{}}
}

func (s *MemoryResponseStore) AddResponse(ctx context.Context, response types.SurveyResponse) error {
	return s.AddResponses(ctx, []types.SurveyResponse{response})
}

func (s *MemoryResponseStore) AddResponses(ctx context.Context, responses []types.SurveyResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := make(map[string]struct{}, len(responses))
	for _, r := range responses {
		if _, ok := s.ids[r.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateResponse, r.ID)
		}
		if _, ok := batch[r.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateResponse, r.ID)
		}
		batch[r.ID] = struct{}{}
	}
	for _, r := range responses {
		r.Answers = r.Answers.Clone()
		r.QuestionTimings = cloneTimings(r.QuestionTimings)
		s.responses = append(s.responses, r)
		s.ids[r.ID] = struct{}{}
	}
	return nil
}

func (s *MemoryResponseStore) GetResponses(ctx context.Context) ([]types.SurveyResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	responses := make([]types.SurveyResponse, len(s.responses))
	copy(responses, s.responses)
	return responses, nil
}

func (s *MemoryResponseStore) CountResponses(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.responses)), nil
}

func (s *MemoryResponseStore) HasCompletedResponse(ctx context.Context, deviceID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.responses {
		if r.DeviceID == deviceID && r.Status == types.RESPONSE_STATUS_COMPLETED {
			return true, nil
		}
	}
	return false, nil
}

type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]types.Draft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: map[string]types.Draft{}}
}

func (s *MemoryDraftStore) SaveDraft(ctx context.Context, draft types.Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	draft.Answers = draft.Answers.Clone()
	draft.QuestionTimings = cloneTimings(draft.QuestionTimings)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.DeviceID] = draft
	return nil
}

func (s *MemoryDraftStore) GetDraft(ctx context.Context, deviceID string) (types.Draft, error) {
	if err := ctx.Err(); err != nil {
		return types.Draft{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[deviceID]
	if !ok {
		return types.Draft{}, ErrDraftNotFound
	}
	d.Answers = d.Answers.Clone()
	d.QuestionTimings = cloneTimings(d.QuestionTimings)
	return d, nil
}

func (s *MemoryDraftStore) DeleteDraft(ctx context.Context, deviceID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, deviceID)
	return nil
}

func cloneTimings(timings map[string]float64) map[string]float64 {
	if timings == nil {
		return nil
	}
	c := make(map[string]float64, len(timings))
	for k, v := range timings {
		c[k] = v
	}
	return c
}
