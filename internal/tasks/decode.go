package tasks

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vytor/tradeskill/internal/models"
)

func object(required []any, props map[string]any) map[string]any {
	s := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

var (
	stringArray = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	stringMap   = map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}}
	number      = map[string]any{"type": "number"}
)

// responseSchemas describes the JSON body accepted for each task kind.
var responseSchemas = map[models.TaskKind]map[string]any{
	models.TaskCoinFlip: object(nil, map[string]any{
		"call": map[string]any{"type": "string"},
	}),
	models.TaskMultipleChoice: object([]any{"selected"}, map[string]any{
		"selected": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
	}),
	models.TaskTrueFalse: object([]any{"value"}, map[string]any{
		"value": map[string]any{"type": "boolean"},
	}),
	models.TaskDragAndDrop: object([]any{"placements"}, map[string]any{
		"placements": stringMap,
	}),
	models.TaskMatching: object([]any{"pairs"}, map[string]any{
		"pairs": stringMap,
	}),
	models.TaskSlider: object([]any{"value"}, map[string]any{
		"value": number,
	}),
	models.TaskSorting: object([]any{"order"}, map[string]any{
		"order": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
	}),
	models.TaskPricePrediction: func() map[string]any {
		s := object(nil, map[string]any{
			"direction": map[string]any{"type": "string", "enum": []any{"up", "down"}},
			"price":     number,
		})
		s["minProperties"] = 1
		return s
	}(),
	models.TaskChartInteraction: object([]any{"x", "y"}, map[string]any{
		"x": number,
		"y": number,
	}),
	models.TaskSimulation: object(nil, map[string]any{
		"actions": stringArray,
	}),
	models.TaskFillBlank: object([]any{"tokens"}, map[string]any{
		"tokens": stringArray,
	}),
}

// compiled caches compiled schemas by task kind.
var compiled sync.Map // map[models.TaskKind]*jsonschema.Schema

func schemaFor(kind models.TaskKind) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}
	def, ok := responseSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("no response schema for %q", kind)
	}

	// The compiler wants a plain decoded JSON value, so round-trip the Go literal.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://responses/%s.json", kind)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	compiled.Store(kind, sch)
	return sch, nil
}

// DecodeResponse validates a JSON response body for a task kind and decodes
// it into the matching Response variant.
func DecodeResponse(kind models.TaskKind, raw json.RawMessage) (models.Response, error) {
	if len(raw) == 0 {
		return nil, malformed(kind, "empty response body")
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, malformed(kind, "invalid JSON: %v", err)
	}
	sch, err := schemaFor(kind)
	if err != nil {
		return nil, malformed(kind, "%v", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, malformed(kind, "schema validation failed: %v", err)
	}

	var resp models.Response
	switch kind {
	case models.TaskCoinFlip:
		resp, err = decodeInto[models.CoinFlipResponse](raw)
	case models.TaskMultipleChoice:
		resp, err = decodeInto[models.MultipleChoiceResponse](raw)
	case models.TaskTrueFalse:
		resp, err = decodeInto[models.TrueFalseResponse](raw)
	case models.TaskDragAndDrop:
		resp, err = decodeInto[models.DragAndDropResponse](raw)
	case models.TaskMatching:
		resp, err = decodeInto[models.MatchingResponse](raw)
	case models.TaskSlider:
		resp, err = decodeInto[models.SliderResponse](raw)
	case models.TaskSorting:
		resp, err = decodeInto[models.SortingResponse](raw)
	case models.TaskPricePrediction:
		resp, err = decodeInto[models.PricePredictionResponse](raw)
	case models.TaskChartInteraction:
		resp, err = decodeInto[models.ChartInteractionResponse](raw)
	case models.TaskSimulation:
		resp, err = decodeInto[models.SimulationResponse](raw)
	case models.TaskFillBlank:
		resp, err = decodeInto[models.FillBlankResponse](raw)
	default:
		return nil, malformed(kind, "unsupported task kind")
	}
	if err != nil {
		return nil, malformed(kind, "%v", err)
	}
	return resp, nil
}

func decodeInto[T models.Response](raw json.RawMessage) (models.Response, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
