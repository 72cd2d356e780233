package tasks

import (
	"strconv"
	"strings"

	"github.com/vytor/tradeskill/internal/models"
)

// Normalize folds case and collapses inner whitespace. Labels that normalize
// to the same text are indistinguishable to the evaluators.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// resolveOption maps a label or 1-based option number to an option index.
func resolveOption(options []models.Option, answer string) (int, bool) {
	want := Normalize(answer)
	for i, o := range options {
		if Normalize(o.Label) == want {
			return i, true
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(answer)); err == nil && n >= 1 && n <= len(options) {
		return n - 1, true
	}
	return 0, false
}

func evalMultipleChoice(cfg models.MultipleChoiceTask, resp models.MultipleChoiceResponse) (models.TaskResult, error) {
	kind := cfg.Kind()
	if len(resp.Selected) == 0 {
		return models.TaskResult{}, malformed(kind, "no option selected")
	}
	if !cfg.MultiAnswer && len(resp.Selected) != 1 {
		return models.TaskResult{}, malformed(kind, "%d options selected for a single-answer question", len(resp.Selected))
	}

	chosen := make(map[int]bool, len(resp.Selected))
	for _, s := range resp.Selected {
		idx, ok := resolveOption(cfg.Options, s)
		if !ok {
			return models.TaskResult{}, malformed(kind, "%q is not one of the options", s)
		}
		chosen[idx] = true
	}

	for i, o := range cfg.Options {
		if o.Correct != chosen[i] {
			if cfg.MultiAnswer {
				return fail("That selection is not quite right."), nil
			}
			return fail("Not quite. Think it through and try again."), nil
		}
	}
	return pass("Correct!"), nil
}

func evalTrueFalse(cfg models.TrueFalseTask, resp models.TrueFalseResponse) (models.TaskResult, error) {
	if resp.Value == cfg.Answer {
		return pass("Correct!"), nil
	}
	return fail("Not quite. Read the statement again."), nil
}
