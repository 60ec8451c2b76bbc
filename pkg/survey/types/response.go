package types

const (
	RESPONSE_STATUS_COMPLETED  = "completed"
	RESPONSE_STATUS_TERMINATED = "terminated"
)

// SurveyResponse is the frozen record of one finished survey session.
type SurveyResponse struct {
	ID                   string             `bson:"_id" json:"responseId"`
	DeviceID             string             `bson:"deviceID" json:"deviceId"`
	Country              string             `bson:"country" json:"country"`
	SubmittedAt          int64              `bson:"submittedAt" json:"submittedAt"`
	DurationSeconds      int64              `bson:"durationSeconds" json:"durationSeconds"`
	QuestionTimings      map[string]float64 `bson:"questionTimings,omitempty" json:"questionTimings,omitempty"`
	LanguageAtSubmission string             `bson:"languageAtSubmission" json:"languageAtSubmission"`
	Status               string             `bson:"status" json:"status"`
	Answers              Answers            `bson:"answers" json:"answers"`
}

// Draft is the resumable state of an unfinished session.
type Draft struct {
	DeviceID        string             `json:"deviceId"`
	ResponseID      string             `json:"responseId"` // becomes the frozen response's ID
	Index           int                `json:"index"`
	Answers         Answers            `json:"answers"`
	Language        string             `json:"language"`
	StartedAt       int64              `json:"startedAt"`
	ShownAt         int64              `json:"shownAt"` // unix ms when the current question was shown
	QuestionTimings map[string]float64 `json:"questionTimings,omitempty"`
}
