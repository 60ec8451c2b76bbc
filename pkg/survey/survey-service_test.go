package survey

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/flowengine"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

var testBanks = types.BankCatalogue{
	{ID: "BK_RW", Name: "BK", Country: "rwanda", Aliases: []string{"Bank of Kigali"}},
	{ID: "EQU_RW", Name: "Equity", Country: "rwanda"},
}

func testDefinition() types.SurveyDefinition {
	en := func(s string) types.Localized { return types.Localized{"en": s} }
	return types.SurveyDefinition{
		Key: "test",
		Questions: []types.Question{
			{
				ID: "selected_country", Type: types.QUESTION_TYPE_SINGLE_CHOICE, Required: true,
				Choices: []types.Choice{{Value: "rwanda", Label: en("Rwanda")}},
			},
			{
				ID: "consent", Type: types.QUESTION_TYPE_SINGLE_CHOICE, Required: true,
				Choices: []types.Choice{{Value: "yes", Label: en("Yes")}, {Value: "no", Label: en("No")}},
			},
			{
				ID: "termination_consent", Type: types.QUESTION_TYPE_NOTE, IsTerminationPoint: true,
				Condition: &types.Expression{Name: "eq", Field: "consent", Value: "no"},
			},
			{
				ID: "c3_aware_banks", Type: types.QUESTION_TYPE_MULTI_CHOICE, Required: true,
				ChoiceSource: types.CHOICE_SOURCE_COUNTRY_BANKS,
				Condition:    &types.Expression{Name: "eq", Field: "consent", Value: "yes"},
			},
			{ID: "thank_you", Type: types.QUESTION_TYPE_NOTE},
		},
	}
}

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	return c.t
}

func newTestService() (*SurveyService, *store.MemoryResponseStore, *store.MemoryDraftStore, *testClock) {
	responses := store.NewMemoryResponseStore()
	drafts := store.NewMemoryDraftStore()
	s := NewSurveyService(testDefinition(), testBanks, responses, drafts)
	clock := &testClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	s.now = clock.now
	return s, responses, drafts, clock
}

func TestSurveyServiceCompletion(t *testing.T) {
	ctx := context.Background()
	s, responses, drafts, clock := newTestService()
	deviceID := NewDeviceID()

	st, err := s.StartSession(ctx, deviceID, "fr")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if st.Question == nil || st.Question.ID != "selected_country" || st.Language != "fr" {
		t.Fatalf("unexpected state: %+v", st)
	}

	if _, err := s.Next(ctx, deviceID); !errors.Is(err, flowengine.ErrAnswerRequired) {
		t.Errorf("unexpected error: %v", err)
	}

	steps := []struct {
		questionID string
		value      any
	}{
		{"selected_country", "rwanda"},
		{"consent", "yes"},
		{"c3_aware_banks", []any{"BK_RW"}},
	}
	for _, step := range steps {
		if _, err := s.SubmitAnswer(ctx, deviceID, step.questionID, step.value); err != nil {
			t.Fatalf("unexpected error for %s: %s", step.questionID, err.Error())
		}
		clock.t = clock.t.Add(10 * time.Second)
		if _, err := s.Next(ctx, deviceID); err != nil {
			t.Fatalf("unexpected error for %s: %s", step.questionID, err.Error())
		}
	}

	st, err = s.GetSession(ctx, deviceID)
	if err != nil || st.Question == nil || st.Question.ID != "thank_you" {
		t.Fatalf("unexpected state: %+v, %v", st, err)
	}
	clock.t = clock.t.Add(5 * time.Second)
	st, err = s.Next(ctx, deviceID)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if st.Status != types.RESPONSE_STATUS_COMPLETED || st.ResponseID == "" || st.Question != nil {
		t.Errorf("unexpected state: %+v", st)
	}

	all, _ := responses.GetResponses(ctx)
	if len(all) != 1 {
		t.Fatalf("unexpected number of responses: %d", len(all))
	}
	r := all[0]
	if r.Country != "rwanda" || r.DurationSeconds != 35 || r.LanguageAtSubmission != "fr" {
		t.Errorf("unexpected response: %+v", r)
	}
	if r.QuestionTimings["consent"] != 10 || r.QuestionTimings["thank_you"] != 5 {
		t.Errorf("unexpected timings: %v", r.QuestionTimings)
	}
	if !r.Answers.Contains("c3_aware_banks", "BK_RW") {
		t.Errorf("unexpected answers: %v", r.Answers)
	}

	if _, err := drafts.GetDraft(ctx, deviceID); !errors.Is(err, store.ErrDraftNotFound) {
		t.Errorf("draft should be deleted: %v", err)
	}
	if _, err := s.StartSession(ctx, deviceID, "en"); !errors.Is(err, ErrSurveyAlreadyCompleted) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSurveyServiceTermination(t *testing.T) {
	ctx := context.Background()
	s, responses, _, _ := newTestService()
	deviceID := "dev_terminated"

	if _, err := s.StartSession(ctx, deviceID, ""); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	_, _ = s.SubmitAnswer(ctx, deviceID, "selected_country", "rwanda")
	_, _ = s.Next(ctx, deviceID)
	_, _ = s.SubmitAnswer(ctx, deviceID, "consent", "no")
	st, _ := s.Next(ctx, deviceID)
	if st.Question == nil || st.Question.ID != "termination_consent" {
		t.Fatalf("unexpected state: %+v", st)
	}
	st, err := s.Next(ctx, deviceID)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if st.Status != types.RESPONSE_STATUS_TERMINATED || st.Transition == nil || st.Transition.Kind != flowengine.TRANSITION_TERMINATE {
		t.Errorf("unexpected state: %+v", st)
	}

	all, _ := responses.GetResponses(ctx)
	if len(all) != 1 || all[0].Status != types.RESPONSE_STATUS_TERMINATED {
		t.Errorf("unexpected responses: %+v", all)
	}

	// terminated devices may try again
	st, err = s.StartSession(ctx, deviceID, "")
	if err != nil || st.Index != 0 || len(st.Answers) != 0 {
		t.Errorf("unexpected restart: %+v, %v", st, err)
	}
}

// undeletableDrafts keeps every draft it is asked to delete.
type undeletableDrafts struct {
	*store.MemoryDraftStore
}

func (d undeletableDrafts) DeleteDraft(ctx context.Context, deviceID string) error {
	return errors.New("draft store unavailable")
}

// gatedDrafts holds each GetDraft until all expected readers have loaded the draft.
type gatedDrafts struct {
	*store.MemoryDraftStore
	mu      sync.Mutex
	readers *sync.WaitGroup
}

func (d *gatedDrafts) GetDraft(ctx context.Context, deviceID string) (types.Draft, error) {
	draft, err := d.MemoryDraftStore.GetDraft(ctx, deviceID)
	d.mu.Lock()
	readers := d.readers
	d.mu.Unlock()
	if readers != nil {
		readers.Done()
		readers.Wait()
	}
	return draft, err
}

func (d *gatedDrafts) gate(n int) {
	wg := &sync.WaitGroup{}
	wg.Add(n)
	d.mu.Lock()
	d.readers = wg
	d.mu.Unlock()
}

func walkToTerminationNote(t *testing.T, s *SurveyService, deviceID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.StartSession(ctx, deviceID, ""); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	_, _ = s.SubmitAnswer(ctx, deviceID, "selected_country", "rwanda")
	_, _ = s.Next(ctx, deviceID)
	_, _ = s.SubmitAnswer(ctx, deviceID, "consent", "no")
	st, _ := s.Next(ctx, deviceID)
	if st.Question == nil || st.Question.ID != "termination_consent" {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestSurveyServiceStoresResponseOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("draft left behind after finishing", func(t *testing.T) {
		responses := store.NewMemoryResponseStore()
		drafts := undeletableDrafts{store.NewMemoryDraftStore()}
		s := NewSurveyService(testDefinition(), testBanks, responses, drafts)
		deviceID := "dev_undeletable"
		walkToTerminationNote(t, s, deviceID)

		first, err := s.Next(ctx, deviceID)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		second, err := s.Next(ctx, deviceID)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if first.ResponseID == "" || first.ResponseID != second.ResponseID {
			t.Errorf("unexpected response ids: %s, %s", first.ResponseID, second.ResponseID)
		}
		if n, _ := responses.CountResponses(ctx); n != 1 {
			t.Errorf("unexpected number of stored responses: %d", n)
		}
	})

	t.Run("overlapping finishing calls", func(t *testing.T) {
		responses := store.NewMemoryResponseStore()
		drafts := &gatedDrafts{MemoryDraftStore: store.NewMemoryDraftStore()}
		s := NewSurveyService(testDefinition(), testBanks, responses, drafts)
		deviceID := "dev_overlap"
		walkToTerminationNote(t, s, deviceID)

		drafts.gate(2)
		states := make([]SessionState, 2)
		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				states[i], errs[i] = s.Next(ctx, deviceID)
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				t.Errorf("unexpected error in call %d: %s", i, err.Error())
			}
		}
		if states[0].ResponseID != states[1].ResponseID {
			t.Errorf("unexpected response ids: %s, %s", states[0].ResponseID, states[1].ResponseID)
		}
		all, _ := responses.GetResponses(ctx)
		if len(all) != 1 || all[0].ID != states[0].ResponseID {
			t.Errorf("unexpected responses: %+v", all)
		}
	})

	t.Run("draft without response id", func(t *testing.T) {
		s, responses, drafts, _ := newTestService()
		deviceID := "dev_legacy"
		_ = drafts.SaveDraft(ctx, types.Draft{
			DeviceID: deviceID,
			Index:    2,
			Answers:  types.Answers{"selected_country": "rwanda", "consent": "no"},
		})

		st, err := s.Next(ctx, deviceID)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		all, _ := responses.GetResponses(ctx)
		if st.ResponseID == "" || len(all) != 1 || all[0].ID != st.ResponseID {
			t.Errorf("unexpected responses: %+v", all)
		}
	})
}

func TestSurveyServiceErrors(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestService()

	t.Run("no draft", func(t *testing.T) {
		if _, err := s.Next(ctx, "dev_unknown"); !errors.Is(err, store.ErrDraftNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("hidden question", func(t *testing.T) {
		_, _ = s.StartSession(ctx, "dev_hidden", "")
		_, err := s.SubmitAnswer(ctx, "dev_hidden", "c3_aware_banks", []string{"BK_RW"})
		if !errors.Is(err, flowengine.ErrQuestionNotVisible) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid choice", func(t *testing.T) {
		_, _ = s.StartSession(ctx, "dev_invalid", "")
		_, err := s.SubmitAnswer(ctx, "dev_invalid", "selected_country", "kenya")
		var vErr *flowengine.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("back on first question", func(t *testing.T) {
		_, _ = s.StartSession(ctx, "dev_back", "")
		st, err := s.Back(ctx, "dev_back")
		if err != nil || st.Index != 0 {
			t.Errorf("unexpected state: %+v, %v", st, err)
		}
	})

	t.Run("resume keeps answers", func(t *testing.T) {
		_, _ = s.StartSession(ctx, "dev_resume", "")
		_, _ = s.SubmitAnswer(ctx, "dev_resume", "selected_country", "rwanda")
		_, _ = s.Next(ctx, "dev_resume")
		st, err := s.StartSession(ctx, "dev_resume", "")
		if err != nil || st.Index != 1 || st.Answers.String("selected_country") != "rwanda" {
			t.Errorf("unexpected state: %+v, %v", st, err)
		}
	})
}

func TestNewDeviceID(t *testing.T) {
	a := NewDeviceID()
	if len(a) != len(DEVICE_ID_PREFIX)+36 || a[:4] != DEVICE_ID_PREFIX {
		t.Errorf("unexpected device id: %s", a)
	}
	if a == NewDeviceID() {
		t.Error("device ids should be unique")
	}
}
