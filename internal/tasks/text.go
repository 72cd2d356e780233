package tasks

import (
	"strconv"
	"strings"

	"github.com/vytor/tradeskill/internal/models"
)

// ParseText turns a line typed at a terminal into a response for cfg.
// Lists are comma separated; pairings are written "left=right" and
// separated by semicolons. Numbers refer to the positions shown by Present.
func ParseText(cfg models.TaskConfig, input string) (models.Response, error) {
	input = strings.TrimSpace(input)
	kind := cfg.Kind()

	switch c := cfg.(type) {
	case models.CoinFlipTask:
		return models.CoinFlipResponse{Call: input}, nil

	case models.MultipleChoiceTask:
		sel := splitList(input, ",")
		if len(sel) == 0 {
			return nil, malformed(kind, "choose an option")
		}
		return models.MultipleChoiceResponse{Selected: sel}, nil

	case models.TrueFalseTask:
		switch strings.ToLower(input) {
		case "t", "true", "y", "yes", "1":
			return models.TrueFalseResponse{Value: true}, nil
		case "f", "false", "n", "no", "2":
			return models.TrueFalseResponse{Value: false}, nil
		}
		return nil, malformed(kind, "answer true or false")

	case models.DragAndDropTask:
		pairs, err := splitPairs(kind, input)
		if err != nil {
			return nil, err
		}
		placements := make(map[string]string, len(pairs))
		for left, right := range pairs {
			item := pickID(left, len(c.Items), func(i int) (string, string) { return c.Items[i].ID, c.Items[i].Label })
			bucket := pickID(right, len(c.Buckets), func(i int) (string, string) { return c.Buckets[i].ID, c.Buckets[i].Label })
			placements[item] = bucket
		}
		return models.DragAndDropResponse{Placements: placements}, nil

	case models.MatchingTask:
		pairs, err := splitPairs(kind, input)
		if err != nil {
			return nil, err
		}
		values := matchingValues(c)
		out := make(map[string]string, len(pairs))
		for left, right := range pairs {
			key := pickID(left, len(c.Pairs), func(i int) (string, string) { return c.Pairs[i].Key, c.Pairs[i].Key })
			out[key] = pickLettered(right, values)
		}
		return models.MatchingResponse{Pairs: out}, nil

	case models.SliderTask:
		v, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return nil, malformed(kind, "enter a number")
		}
		return models.SliderResponse{Value: v}, nil

	case models.SortingTask:
		shown := displayOrder(c.Items)
		var order []string
		for _, tok := range splitList(input, ",") {
			order = append(order, pickID(tok, len(shown), func(i int) (string, string) { return shown[i], shown[i] }))
		}
		return models.SortingResponse{Order: order}, nil

	case models.PricePredictionTask:
		var resp models.PricePredictionResponse
		for _, tok := range strings.Fields(input) {
			switch strings.ToLower(tok) {
			case "up", "u", "higher":
				resp.Direction = models.DirectionUp
				continue
			case "down", "d", "lower":
				resp.Direction = models.DirectionDown
				continue
			}
			p, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, malformed(kind, "unrecognised token %q", tok)
			}
			resp.Price = &p
		}
		return resp, nil

	case models.ChartInteractionTask:
		parts := splitList(input, ",")
		if len(parts) != 2 {
			return nil, malformed(kind, "enter a point as x,y")
		}
		x, errX := strconv.ParseFloat(parts[0], 64)
		y, errY := strconv.ParseFloat(parts[1], 64)
		if errX != nil || errY != nil {
			return nil, malformed(kind, "enter a point as x,y")
		}
		return models.ChartInteractionResponse{X: x, Y: y}, nil

	case models.SimulationTask:
		return models.SimulationResponse{Actions: splitList(input, ",")}, nil

	case models.FillBlankTask:
		return models.FillBlankResponse{Tokens: splitList(input, ",")}, nil
	}
	return nil, malformed(kind, "unsupported task kind")
}

func splitList(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitPairs(kind models.TaskKind, s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range splitList(s, ";") {
		left, right, ok := strings.Cut(part, "=")
		if !ok {
			return nil, malformed(kind, "write pairs as left=right, got %q", part)
		}
		out[strings.TrimSpace(left)] = strings.TrimSpace(right)
	}
	if len(out) == 0 {
		return nil, malformed(kind, "no pairs given")
	}
	return out, nil
}

// pickID resolves a 1-based position, an id or a label to an id. Unknown
// tokens are returned unchanged so the evaluator can reject them.
func pickID(tok string, n int, at func(int) (id, label string)) string {
	if i, err := strconv.Atoi(tok); err == nil && i >= 1 && i <= n {
		id, _ := at(i - 1)
		return id
	}
	want := Normalize(tok)
	for i := 0; i < n; i++ {
		id, label := at(i)
		if Normalize(id) == want || Normalize(label) == want {
			return id
		}
	}
	return tok
}

// pickLettered resolves "a", "b", ... or the value text itself.
func pickLettered(tok string, values []string) string {
	if len(tok) == 1 {
		if i := int(strings.ToLower(tok)[0] - 'a'); i >= 0 && i < len(values) {
			return values[i]
		}
	}
	want := Normalize(tok)
	for _, v := range values {
		if Normalize(v) == want {
			return v
		}
	}
	return tok
}
