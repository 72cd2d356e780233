package models

// TaskKind tags the variant of a task configuration and its response.
type TaskKind string

const (
	TaskCoinFlip         TaskKind = "coin_flip"
	TaskMultipleChoice   TaskKind = "multiple_choice"
	TaskTrueFalse        TaskKind = "true_false"
	TaskDragAndDrop      TaskKind = "drag_and_drop"
	TaskMatching         TaskKind = "matching"
	TaskSlider           TaskKind = "slider"
	TaskSorting          TaskKind = "sorting"
	TaskPricePrediction  TaskKind = "price_prediction"
	TaskChartInteraction TaskKind = "chart_interaction"
	TaskSimulation       TaskKind = "simulation"
	TaskFillBlank        TaskKind = "fill_blank"
)

// TaskKinds lists every supported task kind.
var TaskKinds = []TaskKind{
	TaskCoinFlip,
	TaskMultipleChoice,
	TaskTrueFalse,
	TaskDragAndDrop,
	TaskMatching,
	TaskSlider,
	TaskSorting,
	TaskPricePrediction,
	TaskChartInteraction,
	TaskSimulation,
	TaskFillBlank,
}

// AutoPass reports whether tasks of this kind never block lesson progress.
func (k TaskKind) AutoPass() bool {
	return k == TaskCoinFlip || k == TaskSimulation
}

// TaskConfig is the closed set of task configurations. Only types in this
// package implement it.
type TaskConfig interface {
	Kind() TaskKind
	isTaskConfig()
}

type CoinFlipTask struct {
	WinProbability float64 `json:"win_probability" yaml:"win_probability"`
	WinLabel       string  `json:"win_label" yaml:"win_label"`
	LoseLabel      string  `json:"lose_label" yaml:"lose_label"`
}

type Option struct {
	Label   string `json:"label" yaml:"label"`
	Correct bool   `json:"correct" yaml:"correct"`
}

type MultipleChoiceTask struct {
	Prompt      string   `json:"prompt" yaml:"prompt"`
	Options     []Option `json:"options" yaml:"options"`
	MultiAnswer bool     `json:"multi_answer" yaml:"multi_answer"`
}

// CorrectLabels returns the labels of every option flagged correct.
func (t MultipleChoiceTask) CorrectLabels() []string {
	var out []string
	for _, o := range t.Options {
		if o.Correct {
			out = append(out, o.Label)
		}
	}
	return out
}

type TrueFalseTask struct {
	Statement string `json:"statement" yaml:"statement"`
	Answer    bool   `json:"answer" yaml:"answer"`
}

type DragItem struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

type Bucket struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

type DragAndDropTask struct {
	Prompt   string            `json:"prompt" yaml:"prompt"`
	Items    []DragItem        `json:"items" yaml:"items"`
	Buckets  []Bucket          `json:"buckets" yaml:"buckets"`
	Solution map[string]string `json:"solution" yaml:"solution"` // item id -> bucket id
}

type MatchPair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type MatchingTask struct {
	Prompt string      `json:"prompt" yaml:"prompt"`
	Pairs  []MatchPair `json:"pairs" yaml:"pairs"`
}

type SliderTask struct {
	Prompt    string  `json:"prompt" yaml:"prompt"`
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
	Target    float64 `json:"target" yaml:"target"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	Unit      string  `json:"unit,omitempty" yaml:"unit"`
}

// SortingTask lists Items in their correct order.
type SortingTask struct {
	Prompt string   `json:"prompt" yaml:"prompt"`
	Items  []string `json:"items" yaml:"items"`
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// PricePredictionTask is judged on Direction, Target, or both, whichever are set.
type PricePredictionTask struct {
	Instrument string    `json:"instrument" yaml:"instrument"`
	Prompt     string    `json:"prompt" yaml:"prompt"`
	Direction  Direction `json:"direction,omitempty" yaml:"direction"`
	Target     *float64  `json:"target,omitempty" yaml:"target"`
	Tolerance  float64   `json:"tolerance" yaml:"tolerance"`
}

type Region struct {
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	YMin float64 `json:"y_min" yaml:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max"`
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Region) Contains(x, y float64) bool {
	return x >= r.XMin && x <= r.XMax && y >= r.YMin && y <= r.YMax
}

type ChartInteractionTask struct {
	Prompt string    `json:"prompt" yaml:"prompt"`
	Series []float64 `json:"series" yaml:"series"`
	Target Region    `json:"target" yaml:"target"`
}

type SimulationTask struct {
	Prompt          string  `json:"prompt" yaml:"prompt"`
	Scenario        string  `json:"scenario" yaml:"scenario"`
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
}

// FillBlankTask marks each blank in Template with "___".
type FillBlankTask struct {
	Template string   `json:"template" yaml:"template"`
	Blanks   []string `json:"blanks" yaml:"blanks"`
	Choices  []string `json:"choices,omitempty" yaml:"choices"`
}

// BlankMarker is the placeholder for one blank in a FillBlankTask template.
const BlankMarker = "___"

func (CoinFlipTask) Kind() TaskKind         { return TaskCoinFlip }
func (MultipleChoiceTask) Kind() TaskKind   { return TaskMultipleChoice }
func (TrueFalseTask) Kind() TaskKind        { return TaskTrueFalse }
func (DragAndDropTask) Kind() TaskKind      { return TaskDragAndDrop }
func (MatchingTask) Kind() TaskKind         { return TaskMatching }
func (SliderTask) Kind() TaskKind           { return TaskSlider }
func (SortingTask) Kind() TaskKind          { return TaskSorting }
func (PricePredictionTask) Kind() TaskKind  { return TaskPricePrediction }
func (ChartInteractionTask) Kind() TaskKind { return TaskChartInteraction }
func (SimulationTask) Kind() TaskKind       { return TaskSimulation }
func (FillBlankTask) Kind() TaskKind        { return TaskFillBlank }

func (CoinFlipTask) isTaskConfig()         {}
func (MultipleChoiceTask) isTaskConfig()   {}
func (TrueFalseTask) isTaskConfig()        {}
func (DragAndDropTask) isTaskConfig()      {}
func (MatchingTask) isTaskConfig()         {}
func (SliderTask) isTaskConfig()           {}
func (SortingTask) isTaskConfig()          {}
func (PricePredictionTask) isTaskConfig()  {}
func (ChartInteractionTask) isTaskConfig() {}
func (SimulationTask) isTaskConfig()       {}
func (FillBlankTask) isTaskConfig()        {}
