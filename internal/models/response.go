package models

// Response is a learner's answer to a task. Each TaskConfig variant has
// exactly one matching Response variant.
type Response interface {
	Kind() TaskKind
	isResponse()
}

// CoinFlipResponse carries the learner's call. The call does not affect the result.
type CoinFlipResponse struct {
	Call string `json:"call,omitempty"`
}

// MultipleChoiceResponse holds option labels or 1-based option numbers.
type MultipleChoiceResponse struct {
	Selected []string `json:"selected"`
}

type TrueFalseResponse struct {
	Value bool `json:"value"`
}

type DragAndDropResponse struct {
	Placements map[string]string `json:"placements"` // item id -> bucket id
}

type MatchingResponse struct {
	Pairs map[string]string `json:"pairs"` // key -> value
}

type SliderResponse struct {
	Value float64 `json:"value"`
}

type SortingResponse struct {
	Order []string `json:"order"`
}

type PricePredictionResponse struct {
	Direction Direction `json:"direction,omitempty"`
	Price     *float64  `json:"price,omitempty"`
}

type ChartInteractionResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SimulationResponse struct {
	Actions []string `json:"actions,omitempty"`
}

type FillBlankResponse struct {
	Tokens []string `json:"tokens"`
}

func (CoinFlipResponse) Kind() TaskKind         { return TaskCoinFlip }
func (MultipleChoiceResponse) Kind() TaskKind   { return TaskMultipleChoice }
func (TrueFalseResponse) Kind() TaskKind        { return TaskTrueFalse }
func (DragAndDropResponse) Kind() TaskKind      { return TaskDragAndDrop }
func (MatchingResponse) Kind() TaskKind         { return TaskMatching }
func (SliderResponse) Kind() TaskKind           { return TaskSlider }
func (SortingResponse) Kind() TaskKind          { return TaskSorting }
func (PricePredictionResponse) Kind() TaskKind  { return TaskPricePrediction }
func (ChartInteractionResponse) Kind() TaskKind { return TaskChartInteraction }
func (SimulationResponse) Kind() TaskKind       { return TaskSimulation }
func (FillBlankResponse) Kind() TaskKind        { return TaskFillBlank }

func (CoinFlipResponse) isResponse()         {}
func (MultipleChoiceResponse) isResponse()   {}
func (TrueFalseResponse) isResponse()        {}
func (DragAndDropResponse) isResponse()      {}
func (MatchingResponse) isResponse()         {}
func (SliderResponse) isResponse()           {}
func (SortingResponse) isResponse()          {}
func (PricePredictionResponse) isResponse()  {}
func (ChartInteractionResponse) isResponse() {}
func (SimulationResponse) isResponse()       {}
func (FillBlankResponse) isResponse()        {}

// TaskResult is the evaluated outcome of one submission.
type TaskResult struct {
	Kind     TaskKind `json:"kind"`
	Passed   bool     `json:"passed"`
	Score    float64  `json:"score"`
	Outcome  string   `json:"outcome,omitempty"`
	Feedback string   `json:"feedback,omitempty"`
}
