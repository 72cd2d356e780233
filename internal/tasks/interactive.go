package tasks

import (
	"math"

	"github.com/vytor/tradeskill/internal/models"
)

func evalChartInteraction(cfg models.ChartInteractionTask, resp models.ChartInteractionResponse) (models.TaskResult, error) {
	if math.IsNaN(resp.X) || math.IsNaN(resp.Y) {
		return models.TaskResult{}, malformed(cfg.Kind(), "selection has no coordinates")
	}
	if cfg.Target.Contains(resp.X, resp.Y) {
		return pass("You spotted it!"), nil
	}
	return fail("Look again. That's not the area we're after."), nil
}

// Simulations are open sandboxes and never fail.
func evalSimulation(_ models.SimulationTask, _ models.SimulationResponse) (models.TaskResult, error) {
	return pass("Simulation complete."), nil
}

// coinFlip draws once from rng. The outcome is cosmetic; a flip always passes.
func coinFlip(rng RandomSource) Evaluator {
	return typed(func(cfg models.CoinFlipTask, _ models.CoinFlipResponse) (models.TaskResult, error) {
		res := pass("")
		if rng.Float64() < cfg.WinProbability {
			res.Outcome = orDefault(cfg.WinLabel, "win")
		} else {
			res.Outcome = orDefault(cfg.LoseLabel, "lose")
		}
		res.Feedback = res.Outcome
		return res, nil
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
