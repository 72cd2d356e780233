package tasks

import (
	"sort"

	"github.com/vytor/tradeskill/internal/models"
)

// View is what a client sees of a task: everything needed to render it and
// nothing that reveals the answer.
type View struct {
	Kind            models.TaskKind   `json:"kind"`
	Prompt          string            `json:"prompt,omitempty"`
	Options         []string          `json:"options,omitempty"`
	MultiAnswer     bool              `json:"multi_answer,omitempty"`
	Keys            []string          `json:"keys,omitempty"`
	Items           []models.DragItem `json:"items,omitempty"`
	Buckets         []models.Bucket   `json:"buckets,omitempty"`
	Min             *float64          `json:"min,omitempty"`
	Max             *float64          `json:"max,omitempty"`
	Unit            string            `json:"unit,omitempty"`
	Instrument      string            `json:"instrument,omitempty"`
	AsksDirection   bool              `json:"asks_direction,omitempty"`
	AsksPrice       bool              `json:"asks_price,omitempty"`
	Series          []float64         `json:"series,omitempty"`
	Template        string            `json:"template,omitempty"`
	Blanks          int               `json:"blanks,omitempty"`
	Scenario        string            `json:"scenario,omitempty"`
	StartingBalance float64           `json:"starting_balance,omitempty"`
}

// displayOrder returns items sorted alphabetically, so that orderings the
// learner must reconstruct are never shown in their solved form.
func displayOrder(items []string) []string {
	out := append([]string(nil), items...)
	sort.Strings(out)
	return out
}

func matchingValues(cfg models.MatchingTask) []string {
	values := make([]string, 0, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		values = append(values, p.Value)
	}
	return displayOrder(values)
}

// Present builds the client view of cfg.
func Present(cfg models.TaskConfig) View {
	v := View{Kind: cfg.Kind()}
	switch c := cfg.(type) {
	case models.CoinFlipTask:
		v.Prompt = "Flip the coin!"
		v.Options = []string{orDefault(c.WinLabel, "win"), orDefault(c.LoseLabel, "lose")}
	case models.MultipleChoiceTask:
		v.Prompt = c.Prompt
		v.MultiAnswer = c.MultiAnswer
		for _, o := range c.Options {
			v.Options = append(v.Options, o.Label)
		}
	case models.TrueFalseTask:
		v.Prompt = c.Statement
		v.Options = []string{"True", "False"}
	case models.DragAndDropTask:
		v.Prompt = c.Prompt
		v.Items = c.Items
		v.Buckets = c.Buckets
	case models.MatchingTask:
		v.Prompt = c.Prompt
		for _, p := range c.Pairs {
			v.Keys = append(v.Keys, p.Key)
		}
		v.Options = matchingValues(c)
	case models.SliderTask:
		v.Prompt = c.Prompt
		v.Min, v.Max = &c.Min, &c.Max
		v.Unit = c.Unit
	case models.SortingTask:
		v.Prompt = c.Prompt
		v.Options = displayOrder(c.Items)
	case models.PricePredictionTask:
		v.Prompt = c.Prompt
		v.Instrument = c.Instrument
		v.AsksDirection = c.Direction != ""
		v.AsksPrice = c.Target != nil
	case models.ChartInteractionTask:
		v.Prompt = c.Prompt
		v.Series = c.Series
	case models.SimulationTask:
		v.Prompt = c.Prompt
		v.Scenario = c.Scenario
		v.StartingBalance = c.StartingBalance
	case models.FillBlankTask:
		v.Template = c.Template
		v.Blanks = len(c.Blanks)
		v.Options = displayOrder(c.Choices)
	}
	return v
}
