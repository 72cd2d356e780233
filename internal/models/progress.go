package models

import "time"

// LessonProgress drives progress bars. Current is 0-based.
type LessonProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// LessonOutcome is emitted once when a lesson player reaches completion.
type LessonOutcome struct {
	Day          int          `json:"day"`
	Lesson       int          `json:"lesson"`
	Screens      int          `json:"screens"`
	TaskAttempts int          `json:"task_attempts"`
	Results      []TaskResult `json:"results"`
	CompletedAt  time.Time    `json:"completed_at"`
}

// TestResult is the running or final result of a daily test.
type TestResult struct {
	Day          int     `json:"day"`
	Score        float64 `json:"score"`
	Passed       bool    `json:"passed"`
	PassingScore float64 `json:"passing_score"`
	Correct      int     `json:"correct"`
	Answered     int     `json:"answered"`
	Total        int     `json:"total"`
	Finished     bool    `json:"finished"`
}

// LessonCompletion is a persisted lesson completion for a learner.
type LessonCompletion struct {
	ID           int64     `json:"id"`
	LearnerID    string    `json:"learner_id"`
	Day          int       `json:"day"`
	Lesson       int       `json:"lesson"`
	TaskAttempts int       `json:"task_attempts"`
	CompletedAt  time.Time `json:"completed_at"`
}

// TestAttempt is a persisted daily test attempt for a learner.
type TestAttempt struct {
	ID           int64     `json:"id"`
	LearnerID    string    `json:"learner_id"`
	Day          int       `json:"day"`
	Score        float64   `json:"score"`
	Passed       bool      `json:"passed"`
	PassingScore float64   `json:"passing_score"`
	Correct      int       `json:"correct"`
	Total        int       `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProgressFilter struct {
	LearnerID string
	Day       int // 0 means every day
	Limit     int // 0 means the default page size, negative means no limit
}

// DayProgress summarises one day for a learner.
type DayProgress struct {
	Day              int      `json:"day"`
	LessonsCompleted []int    `json:"lessons_completed"`
	LessonsTotal     int      `json:"lessons_total"`
	HasTest          bool     `json:"has_test"`
	BestScore        *float64 `json:"best_score,omitempty"`
	TestPassed       bool     `json:"test_passed"`
	Complete         bool     `json:"complete"`
}

// LearnerProgress summarises a learner's way through the program.
type LearnerProgress struct {
	LearnerID       string        `json:"learner_id"`
	UnlockedThrough int           `json:"unlocked_through"`
	DaysComplete    int           `json:"days_complete"`
	Days            []DayProgress `json:"days"`
}
