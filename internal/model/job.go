package model

import "time"

// PageType determines content depth and which instruction template the
// request builder uses.
type PageType string

const (
	PageTypeMainCity     PageType = "main_city"
	PageTypeTopic        PageType = "topic"
	PageTypeNeighborhood PageType = "neighborhood"
)

// Valid reports whether pt is one of the three known page types.
func (pt PageType) Valid() bool {
	switch pt {
	case PageTypeMainCity, PageTypeTopic, PageTypeNeighborhood:
		return true
	}
	return false
}

// JobStatus represents the lifecycle state of a research job.
// Jobs are created directly in processing and move exactly once to a
// terminal state (completed or failed).
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// QA is a single question/answer pair produced by content generation.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// JobResults is the structured content payload of a completed job.
type JobResults struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"metaDescription"`
	Content         string   `json:"content"`
	Questions       []QA     `json:"questions"`
	Keywords        []string `json:"keywords"`
}

// ResearchJob is a unit of work that produces generated content for one
// location/page-type combination.
//
// Invariant: Results is non-nil iff Status is completed; ErrorMessage is
// set only when Status is failed.
type ResearchJob struct {
	ID             string      `json:"id"`
	LocationID     string      `json:"location_id"`
	PageType       PageType    `json:"page_type"`
	Topic          string      `json:"topic,omitempty"`
	Neighborhood   string      `json:"neighborhood,omitempty"`
	Status         JobStatus   `json:"status"`
	Results        *JobResults `json:"results,omitempty"`
	WordCount      int         `json:"word_count,omitempty"`
	QuestionsCount int         `json:"questions_count,omitempty"`
	ErrorMessage   string      `json:"error_message,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
}

// ContentTargets holds the word-count and question-count goals passed to
// the content generator.
type ContentTargets struct {
	Words     int `json:"words"`
	Questions int `json:"questions"`
}

var contentTargets = map[PageType]ContentTargets{
	PageTypeMainCity:     {Words: 8500, Questions: 45},
	PageTypeTopic:        {Words: 5000, Questions: 25},
	PageTypeNeighborhood: {Words: 3500, Questions: 18},
}

// TargetsFor returns the content targets for a page type. Unknown page
// types fall back to the main_city targets.
func TargetsFor(pt PageType) ContentTargets {
	if t, ok := contentTargets[pt]; ok {
		return t
	}
	return contentTargets[PageTypeMainCity]
}
