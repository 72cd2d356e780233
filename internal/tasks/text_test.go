package tasks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/tasks"
)

func TestParseText(t *testing.T) {
	matching := models.MatchingTask{Pairs: []models.MatchPair{{Key: "Bull", Value: "Rising market"}, {Key: "Bear", Value: "Falling market"}}}
	sorting := models.SortingTask{Items: []string{"Open", "Manage", "Close"}}
	dnd := models.DragAndDropTask{
		Items:   []models.DragItem{{ID: "gold", Label: "Gold"}, {ID: "eth", Label: "Ether"}},
		Buckets: []models.Bucket{{ID: "commodity", Label: "Commodities"}, {ID: "crypto", Label: "Crypto"}},
	}

	tests := []struct {
		name  string
		cfg   models.TaskConfig
		input string
		want  models.Response
	}{
		{"multiple choice list", models.MultipleChoiceTask{}, "Buy, Sell", models.MultipleChoiceResponse{Selected: []string{"Buy", "Sell"}}},
		{"true false", models.TrueFalseTask{}, "Yes", models.TrueFalseResponse{Value: true}},
		{"slider", models.SliderTask{}, " 540 ", models.SliderResponse{Value: 540}},
		// Values are shown alphabetically: a) Falling market b) Rising market.
		{"matching by position and letter", matching, "1=b; 2=a", models.MatchingResponse{Pairs: map[string]string{"Bull": "Rising market", "Bear": "Falling market"}}},
		// Items are shown alphabetically: 1) Close 2) Manage 3) Open.
		{"sorting by position", sorting, "3,2,1", models.SortingResponse{Order: []string{"Open", "Manage", "Close"}}},
		{"drag and drop by label", dnd, "Gold=Commodities; 2=2", models.DragAndDropResponse{Placements: map[string]string{"gold": "commodity", "eth": "crypto"}}},
		{"chart point", models.ChartInteractionTask{}, "12.5, 3", models.ChartInteractionResponse{X: 12.5, Y: 3}},
		{"fill blank", models.FillBlankTask{}, "stop-loss, risk", models.FillBlankResponse{Tokens: []string{"stop-loss", "risk"}}},
		{"coin flip", models.CoinFlipTask{}, "heads", models.CoinFlipResponse{Call: "heads"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tasks.ParseText(tt.cfg, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseText_PricePrediction(t *testing.T) {
	got, err := tasks.ParseText(models.PricePredictionTask{}, "up 1.105")
	require.NoError(t, err)

	resp := got.(models.PricePredictionResponse)
	assert.Equal(t, models.DirectionUp, resp.Direction)
	require.NotNil(t, resp.Price)
	assert.Equal(t, 1.105, *resp.Price)
}

func TestParseText_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		cfg   models.TaskConfig
		input string
	}{
		{"true false gibberish", models.TrueFalseTask{}, "maybe"},
		{"slider not a number", models.SliderTask{}, "lots"},
		{"empty multiple choice", models.MultipleChoiceTask{}, "  "},
		{"matching without equals", models.MatchingTask{}, "1 b"},
		{"chart single value", models.ChartInteractionTask{}, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tasks.ParseText(tt.cfg, tt.input)
			assert.Error(t, err)
		})
	}
}

func TestPresent_HidesAnswers(t *testing.T) {
	sorting := tasks.Present(models.SortingTask{Items: []string{"Zeta", "Alpha", "Mid"}})
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, sorting.Options)

	mc := tasks.Present(models.MultipleChoiceTask{Prompt: "Pick", Options: []models.Option{{Label: "A", Correct: true}, {Label: "B"}}})
	assert.Equal(t, []string{"A", "B"}, mc.Options)
	assert.Equal(t, "Pick", mc.Prompt)

	target := 100.0
	price := tasks.Present(models.PricePredictionTask{Instrument: "SPX", Target: &target})
	assert.True(t, price.AsksPrice)
	assert.False(t, price.AsksDirection)

	fill := tasks.Present(models.FillBlankTask{Template: "Buy ___ sell ___", Blanks: []string{"low", "high"}})
	assert.Equal(t, 2, fill.Blanks)
}
