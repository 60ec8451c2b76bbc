package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/flowengine"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const DEVICE_ID_PREFIX = "dev_"

var ErrSurveyAlreadyCompleted = errors.New("survey already completed on this device")

// QuestionView is a question with its choices resolved against the current answers.
type QuestionView struct {
	types.Question
	Choices []types.Choice `json:"choices,omitempty"`
}

// SessionState is what a client needs to render the next step.
type SessionState struct {
	DeviceID   string                 `json:"deviceId"`
	Status     string                 `json:"status"`
	Index      int                    `json:"index"`
	Total      int                    `json:"total"`
	Language   string                 `json:"language"`
	Question   *QuestionView          `json:"question,omitempty"`
	Answers    types.Answers          `json:"answers"`
	Transition *flowengine.Transition `json:"transition,omitempty"`
	ResponseID string                 `json:"responseId,omitempty"`
}

type SurveyService struct {
	definition types.SurveyDefinition
	banks      types.BankCatalogue
	responses  store.ResponseStore
	drafts     store.DraftStore
	now        func() time.Time
}

func NewSurveyService(
	def types.SurveyDefinition,
	banks types.BankCatalogue,
	responses store.ResponseStore,
	drafts store.DraftStore,
) *SurveyService {
	return &SurveyService{
		definition: def,
		banks:      banks,
		responses:  responses,
		drafts:     drafts,
		now:        time.Now,
	}
}

func (s *SurveyService) Definition() types.SurveyDefinition {
	return s.definition
}

func (s *SurveyService) Banks() types.BankCatalogue {
	return s.banks
}

func NewDeviceID() string {
	return DEVICE_ID_PREFIX + uuid.NewString()
}

// StartSession resumes the device's draft or opens a new one. A device that already
// completed the survey cannot start again; a terminated one can.
func (s *SurveyService) StartSession(ctx context.Context, deviceID string, lang string) (SessionState, error) {
	completed, err := s.responses.HasCompletedResponse(ctx, deviceID)
	if err != nil {
		return SessionState{}, fmt.Errorf("checking completed responses: %w", err)
	}
	if completed {
		return SessionState{}, ErrSurveyAlreadyCompleted
	}

	draft, err := s.drafts.GetDraft(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, store.ErrDraftNotFound) {
			return SessionState{}, fmt.Errorf("loading draft: %w", err)
		}
		nowMs := s.now().UnixMilli()
		draft = types.Draft{
			DeviceID:        deviceID,
			ResponseID:      uuid.NewString(),
			Answers:         types.Answers{},
			Language:        types.DEFAULT_LANGUAGE,
			StartedAt:       nowMs,
			ShownAt:         nowMs,
			QuestionTimings: map[string]float64{},
		}
		slog.Info("survey session started", slog.String("deviceID", deviceID))
	}
	if draft.ResponseID == "" {
		draft.ResponseID = uuid.NewString()
	}
	if types.IsSupportedLanguage(lang) {
		draft.Language = lang
	}

	session := flowengine.ResumeSession(s.definition, s.banks, draft.Index, draft.Answers)
	draft.Index = session.Index()
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return SessionState{}, fmt.Errorf("saving draft: %w", err)
	}
	return s.state(draft, session, nil, ""), nil
}

func (s *SurveyService) HasCompleted(ctx context.Context, deviceID string) (bool, error) {
	return s.responses.HasCompletedResponse(ctx, deviceID)
}

// GetSession returns the current state without changing the draft.
func (s *SurveyService) GetSession(ctx context.Context, deviceID string) (SessionState, error) {
	draft, session, err := s.load(ctx, deviceID)
	if err != nil {
		return SessionState{}, err
	}
	return s.state(draft, session, nil, ""), nil
}

func (s *SurveyService) SubmitAnswer(ctx context.Context, deviceID string, questionID string, value any) (SessionState, error) {
	draft, session, err := s.load(ctx, deviceID)
	if err != nil {
		return SessionState{}, err
	}

	if err := session.SetAnswer(questionID, value, draft.Language); err != nil {
		return SessionState{}, err
	}

	draft.Answers = session.Answers()
	draft.Index = session.Index()
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return SessionState{}, fmt.Errorf("saving draft: %w", err)
	}
	return s.state(draft, session, nil, ""), nil
}

// Next advances the session. When the session finishes the response is frozen under the draft's
// response ID and the draft is removed. A repeated or overlapping finishing call finds the ID
// already stored and returns the same final state without appending again.
func (s *SurveyService) Next(ctx context.Context, deviceID string) (SessionState, error) {
	draft, session, err := s.load(ctx, deviceID)
	if err != nil {
		return SessionState{}, err
	}

	current, hasCurrent := session.Current()
	t, err := session.Next()
	if err != nil {
		return SessionState{}, err
	}

	nowMs := s.now().UnixMilli()
	if hasCurrent {
		if draft.QuestionTimings == nil {
			draft.QuestionTimings = map[string]float64{}
		}
		if nowMs > draft.ShownAt {
			draft.QuestionTimings[current.ID] += float64(nowMs-draft.ShownAt) / 1000
		}
	}
	draft.ShownAt = nowMs

	if !session.IsFinished() {
		draft.Index = session.Index()
		if err := s.drafts.SaveDraft(ctx, draft); err != nil {
			return SessionState{}, fmt.Errorf("saving draft: %w", err)
		}
		return s.state(draft, session, &t, ""), nil
	}

	response := s.freeze(draft, session)
	if err := s.responses.AddResponse(ctx, response); err != nil {
		if !errors.Is(err, store.ErrDuplicateResponse) {
			return SessionState{}, fmt.Errorf("storing response: %w", err)
		}
		slog.Info("response already stored", slog.String("deviceID", deviceID), slog.String("responseID", response.ID))
	}
	if err := s.drafts.DeleteDraft(ctx, deviceID); err != nil {
		slog.Warn("could not delete draft", slog.String("deviceID", deviceID), slog.String("error", err.Error()))
	}
	slog.Info("survey session finished",
		slog.String("deviceID", deviceID),
		slog.String("status", response.Status),
		slog.String("responseID", response.ID),
	)
	return s.state(draft, session, &t, response.ID), nil
}

func (s *SurveyService) Back(ctx context.Context, deviceID string) (SessionState, error) {
	draft, session, err := s.load(ctx, deviceID)
	if err != nil {
		return SessionState{}, err
	}
	if err := session.Back(); err != nil {
		return SessionState{}, err
	}
	draft.Index = session.Index()
	draft.ShownAt = s.now().UnixMilli()
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return SessionState{}, fmt.Errorf("saving draft: %w", err)
	}
	return s.state(draft, session, nil, ""), nil
}

// AbandonSession drops the draft so the next start begins from the first question.
func (s *SurveyService) AbandonSession(ctx context.Context, deviceID string) error {
	return s.drafts.DeleteDraft(ctx, deviceID)
}

func (s *SurveyService) load(ctx context.Context, deviceID string) (types.Draft, *flowengine.Session, error) {
	draft, err := s.drafts.GetDraft(ctx, deviceID)
	if err != nil {
		return types.Draft{}, nil, err
	}
	if draft.ResponseID == "" {
		// drafts written before response IDs were assigned at start
		draft.ResponseID = uuid.NewString()
		if err := s.drafts.SaveDraft(ctx, draft); err != nil {
			return types.Draft{}, nil, fmt.Errorf("saving draft: %w", err)
		}
	}
	return draft, flowengine.ResumeSession(s.definition, s.banks, draft.Index, draft.Answers), nil
}

func (s *SurveyService) freeze(draft types.Draft, session *flowengine.Session) types.SurveyResponse {
	now := s.now()
	answers := session.FinalAnswers()

	duration := int64(0)
	if draft.StartedAt > 0 && now.UnixMilli() > draft.StartedAt {
		duration = (now.UnixMilli() - draft.StartedAt) / 1000
	}

	return types.SurveyResponse{
		ID:                   draft.ResponseID,
		DeviceID:             draft.DeviceID,
		Country:              answers.String(types.FIELD_COUNTRY),
		SubmittedAt:          now.Unix(),
		DurationSeconds:      duration,
		QuestionTimings:      draft.QuestionTimings,
		LanguageAtSubmission: draft.Language,
		Status:               session.Status(),
		Answers:              answers,
	}
}

func (s *SurveyService) state(draft types.Draft, session *flowengine.Session, t *flowengine.Transition, responseID string) SessionState {
	st := SessionState{
		DeviceID:   draft.DeviceID,
		Status:     session.Status(),
		Index:      session.Index(),
		Total:      len(session.Visible()),
		Language:   draft.Language,
		Answers:    session.Answers(),
		Transition: t,
		ResponseID: responseID,
	}
	if session.IsFinished() {
		return st
	}
	if q, ok := session.Current(); ok {
		st.Question = &QuestionView{Question: q, Choices: session.Choices(q)}
	}
	return st
}
