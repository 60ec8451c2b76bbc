package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

func TestMemoryResponseStore(t *testing.T) {
	ctx := context.Background()

	t.Run("concurrent appends", func(t *testing.T) {
		s := NewMemoryResponseStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := s.AddResponse(ctx, types.SurveyResponse{ID: fmt.Sprintf("r%d", i), Status: types.RESPONSE_STATUS_COMPLETED})
				if err != nil {
					t.Errorf("unexpected error: %s", err.Error())
				}
			}(i)
			go func() {
				_, _ = s.GetResponses(ctx)
			}()
		}
		wg.Wait()

		n, err := s.CountResponses(ctx)
		if err != nil || n != 50 {
			t.Errorf("unexpected count: %d, %v", n, err)
		}
	})

	t.Run("reads are snapshots", func(t *testing.T) {
		s := NewMemoryResponseStore()
		answers := types.Answers{"consent": "yes"}
		_ = s.AddResponse(ctx, types.SurveyResponse{ID: "a", Answers: answers})
		answers["consent"] = "no"

		responses, _ := s.GetResponses(ctx)
		responses[0].ID = "changed"
		again, _ := s.GetResponses(ctx)
		if again[0].ID != "a" || again[0].Answers.String("consent") != "yes" {
			t.Errorf("stored response was modified: %+v", again[0])
		}
	})

	t.Run("completed responses per device", func(t *testing.T) {
		s := NewMemoryResponseStore()
		_ = s.AddResponse(ctx, types.SurveyResponse{ID: "a", DeviceID: "dev1", Status: types.RESPONSE_STATUS_TERMINATED})
		_ = s.AddResponse(ctx, types.SurveyResponse{ID: "b", DeviceID: "dev2", Status: types.RESPONSE_STATUS_COMPLETED})

		if done, _ := s.HasCompletedResponse(ctx, "dev1"); done {
			t.Error("terminated response should not count as completed")
		}
		if done, _ := s.HasCompletedResponse(ctx, "dev2"); !done {
			t.Error("expected completed response")
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		s := NewMemoryResponseStore()
		if err := s.AddResponse(ctx, types.SurveyResponse{ID: "a"}); err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if err := s.AddResponse(ctx, types.SurveyResponse{ID: "a"}); !errors.Is(err, ErrDuplicateResponse) {
			t.Errorf("unexpected error: %v", err)
		}
		if n, _ := s.CountResponses(ctx); n != 1 {
			t.Errorf("unexpected count: %d", n)
		}
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		s := NewMemoryResponseStore()
		_ = s.AddResponse(ctx, types.SurveyResponse{ID: "c"})

		err := s.AddResponses(ctx, []types.SurveyResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}})
		if !errors.Is(err, ErrDuplicateResponse) {
			t.Errorf("unexpected error: %v", err)
		}
		err = s.AddResponses(ctx, []types.SurveyResponse{{ID: "d"}, {ID: "d"}})
		if !errors.Is(err, ErrDuplicateResponse) {
			t.Errorf("unexpected error: %v", err)
		}
		if n, _ := s.CountResponses(ctx); n != 1 {
			t.Errorf("unexpected count: %d", n)
		}

		if err := s.AddResponses(ctx, []types.SurveyResponse{{ID: "a"}, {ID: "b"}}); err != nil {
			t.Errorf("unexpected error: %s", err.Error())
		}
		if n, _ := s.CountResponses(ctx); n != 3 {
			t.Errorf("unexpected count: %d", n)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := NewMemoryResponseStore()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := s.AddResponse(cctx, types.SurveyResponse{ID: "a"}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestMemoryDraftStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore()

	if _, err := s.GetDraft(ctx, "dev1"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("unexpected error: %v", err)
	}

	err := s.SaveDraft(ctx, types.Draft{DeviceID: "dev1", Index: 3, Answers: types.Answers{"consent": "yes"}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	d, err := s.GetDraft(ctx, "dev1")
	if err != nil || d.Index != 3 || d.Answers.String("consent") != "yes" {
		t.Errorf("unexpected draft: %+v, %v", d, err)
	}

	if err := s.DeleteDraft(ctx, "dev1"); err != nil {
		t.Errorf("unexpected error: %s", err.Error())
	}
	if _, err := s.GetDraft(ctx, "dev1"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMemoryDraftStoreCopiesTimings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDraftStore()

	timings := map[string]float64{"consent": 1.5}
	_ = s.SaveDraft(ctx, types.Draft{DeviceID: "dev1", QuestionTimings: timings})
	timings["consent"] = 99

	d, _ := s.GetDraft(ctx, "dev1")
	if d.QuestionTimings["consent"] != 1.5 {
		t.Errorf("saved timings were modified: %v", d.QuestionTimings)
	}
	d.QuestionTimings["consent"] += 2

	again, _ := s.GetDraft(ctx, "dev1")
	if again.QuestionTimings["consent"] != 1.5 {
		t.Errorf("stored timings were modified: %v", again.QuestionTimings)
	}
}
