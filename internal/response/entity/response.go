// Package entity defines the study response domain types: the page types a
// participant moves through and the fixed set of columns each one may write.
package entity

// PageType identifies which experiment page produced an event.
type PageType string

const (
	PageLearning     PageType = "learning"
	PageRecognition  PageType = "recognition"
	PageGeneration   PageType = "generation"
	PageSurvey       PageType = "survey"
	PageFinalSummary PageType = "final_summary"
)

// StudyColumns is the fixed column set for a learning-style page. Response is
// empty for pages that collect no free-text answer.
type StudyColumns struct {
	TimestampIn  string
	TimestampOut string
	Duration     string
	Response     string
}

// StudyPages maps each known learning-style page type to its columns. Page
// types outside this map (and outside survey) never synthesize column names;
// they fall through to a warn-and-skip branch in the recorder.
var StudyPages = map[PageType]StudyColumns{
	PageLearning: {
		TimestampIn:  "timestamp_learning_in",
		TimestampOut: "timestamp_learning_out",
		Duration:     "duration_learning",
	},
	PageRecognition: {
		TimestampIn:  "timestamp_recognition_in",
		TimestampOut: "timestamp_recognition_out",
		Duration:     "duration_recognition",
		Response:     "response_recognition",
	},
	PageGeneration: {
		TimestampIn:  "timestamp_generation_in",
		TimestampOut: "timestamp_generation_out",
		Duration:     "duration_generation",
		Response:     "response_generation",
	},
}

// Assignment is one column update in an upsert plan. IfAbsent marks write-once
// columns: the stored value wins over the incoming one once set.
type Assignment struct {
	Column   string
	Value    any
	IfAbsent bool
}
