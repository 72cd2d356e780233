// Package tasks scores learner responses against task configurations.
// There is one evaluator per task kind, held in a Registry.
package tasks

import (
	"fmt"

	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/models"
)

// Evaluator scores one response against one configuration. Evaluation
// outcomes are returned as results; the error is reserved for responses
// that do not fit the task.
type Evaluator func(cfg models.TaskConfig, resp models.Response) (models.TaskResult, error)

// Registry dispatches evaluation by task kind.
type Registry struct {
	evaluators map[models.TaskKind]Evaluator
}

// NewRegistry returns a registry with an evaluator for every task kind.
// rng is consumed only by coin flips.
func NewRegistry(rng RandomSource) *Registry {
	r := &Registry{evaluators: make(map[models.TaskKind]Evaluator, len(models.TaskKinds))}
	r.Register(models.TaskCoinFlip, coinFlip(rng))
	r.Register(models.TaskMultipleChoice, typed(evalMultipleChoice))
	r.Register(models.TaskTrueFalse, typed(evalTrueFalse))
	r.Register(models.TaskDragAndDrop, typed(evalDragAndDrop))
	r.Register(models.TaskMatching, typed(evalMatching))
	r.Register(models.TaskSlider, typed(evalSlider))
	r.Register(models.TaskSorting, typed(evalSorting))
	r.Register(models.TaskPricePrediction, typed(evalPricePrediction))
	r.Register(models.TaskChartInteraction, typed(evalChartInteraction))
	r.Register(models.TaskSimulation, typed(evalSimulation))
	r.Register(models.TaskFillBlank, typed(evalFillBlank))
	return r
}

// Register installs or replaces the evaluator for kind.
func (r *Registry) Register(kind models.TaskKind, e Evaluator) {
	r.evaluators[kind] = e
}

// Evaluate scores resp against cfg.
func (r *Registry) Evaluate(cfg models.TaskConfig, resp models.Response) (models.TaskResult, error) {
	if cfg == nil {
		return models.TaskResult{}, apperrors.NewMalformedResponseError("unknown", fmt.Errorf("no task configured"))
	}
	kind := cfg.Kind()
	if resp == nil {
		return models.TaskResult{}, apperrors.NewMalformedResponseError(string(kind), fmt.Errorf("empty response"))
	}
	if resp.Kind() != kind {
		return models.TaskResult{}, apperrors.NewMalformedResponseError(string(kind), fmt.Errorf("got a %s response", resp.Kind()))
	}
	e, ok := r.evaluators[kind]
	if !ok {
		return models.TaskResult{}, apperrors.NewMalformedResponseError(string(kind), fmt.Errorf("no evaluator registered"))
	}
	res, err := e(cfg, resp)
	if err != nil {
		return models.TaskResult{}, err
	}
	res.Kind = kind
	return res, nil
}

// AutoResolve evaluates a task that never blocks progress with an empty
// response of its kind.
func (r *Registry) AutoResolve(cfg models.TaskConfig) (models.TaskResult, error) {
	switch cfg.Kind() {
	case models.TaskCoinFlip:
		return r.Evaluate(cfg, models.CoinFlipResponse{})
	case models.TaskSimulation:
		return r.Evaluate(cfg, models.SimulationResponse{})
	}
	return models.TaskResult{}, fmt.Errorf("%s tasks cannot be auto-resolved", cfg.Kind())
}

// typed adapts a concrete evaluator to the Evaluator signature.
func typed[C models.TaskConfig, R models.Response](fn func(C, R) (models.TaskResult, error)) Evaluator {
	return func(cfg models.TaskConfig, resp models.Response) (models.TaskResult, error) {
		c, ok := cfg.(C)
		if !ok {
			return models.TaskResult{}, apperrors.NewMalformedResponseError(string(cfg.Kind()), fmt.Errorf("unexpected config type %T", cfg))
		}
		r, ok := resp.(R)
		if !ok {
			return models.TaskResult{}, apperrors.NewMalformedResponseError(string(cfg.Kind()), fmt.Errorf("unexpected response type %T", resp))
		}
		return fn(c, r)
	}
}

func pass(feedback string) models.TaskResult {
	return models.TaskResult{Passed: true, Score: 1, Feedback: feedback}
}

func fail(feedback string) models.TaskResult {
	return models.TaskResult{Passed: false, Score: 0, Feedback: feedback}
}

func malformed(kind models.TaskKind, format string, args ...any) error {
	return apperrors.NewMalformedResponseError(string(kind), fmt.Errorf(format, args...))
}
