package models

// ScreenKind tags the variant of a lesson screen.
type ScreenKind string

const (
	ScreenIntro   ScreenKind = "intro"
	ScreenContent ScreenKind = "content"
	ScreenTask    ScreenKind = "task"
	ScreenSummary ScreenKind = "summary"
)

// Valid reports whether k is one of the known screen kinds.
func (k ScreenKind) Valid() bool {
	switch k {
	case ScreenIntro, ScreenContent, ScreenTask, ScreenSummary:
		return true
	}
	return false
}

type Program struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

type Day struct {
	Number  int        `json:"number"`
	Title   string     `json:"title"`
	Theme   string     `json:"theme"`
	Lessons []Lesson   `json:"lessons"`
	Test    *DailyTest `json:"test,omitempty"`
}

type Lesson struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	Screens []Screen `json:"screens"`
}

// Objective is an icon and caption used to illustrate intro and content screens.
type Objective struct {
	Icon    string `json:"icon"`
	Caption string `json:"caption"`
}

// Screen is one step of a lesson. Task is set only when Kind is ScreenTask.
type Screen struct {
	Kind        ScreenKind  `json:"kind"`
	Title       string      `json:"title"`
	Eyebrow     string      `json:"eyebrow,omitempty"`
	Body        string      `json:"body,omitempty"`
	Objectives  []Objective `json:"objectives,omitempty"`
	KeyPoints   []string    `json:"key_points,omitempty"`
	Task        TaskConfig  `json:"-"`
	SuccessText string      `json:"success_text,omitempty"`
	FailureText string      `json:"failure_text,omitempty"`
}

// IsTask reports whether the screen embeds an evaluable task.
func (s Screen) IsTask() bool {
	return s.Kind == ScreenTask && s.Task != nil
}

type DailyTest struct {
	Questions    []TestQuestion `json:"questions"`
	PassingScore float64        `json:"passing_score"`
}

type TestQuestion struct {
	Task        TaskConfig `json:"-"`
	Explanation string     `json:"explanation,omitempty"`
}
