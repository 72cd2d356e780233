package tasks

import (
	"math"

	"github.com/vytor/tradeskill/internal/models"
)

func withinTolerance(value, target, tolerance float64) bool {
	return math.Abs(value-target) <= tolerance
}

func evalSlider(cfg models.SliderTask, resp models.SliderResponse) (models.TaskResult, error) {
	if math.IsNaN(resp.Value) || resp.Value < cfg.Min || resp.Value > cfg.Max {
		return models.TaskResult{}, malformed(cfg.Kind(), "value %v outside [%v, %v]", resp.Value, cfg.Min, cfg.Max)
	}
	if withinTolerance(resp.Value, cfg.Target, cfg.Tolerance) {
		return pass("Right on target!"), nil
	}
	if resp.Value > cfg.Target {
		return fail("Too high. Try a lower value."), nil
	}
	return fail("Too low. Try a higher value."), nil
}

func evalPricePrediction(cfg models.PricePredictionTask, resp models.PricePredictionResponse) (models.TaskResult, error) {
	kind := cfg.Kind()
	if cfg.Direction != "" {
		if resp.Direction != models.DirectionUp && resp.Direction != models.DirectionDown {
			return models.TaskResult{}, malformed(kind, "direction must be up or down, got %q", resp.Direction)
		}
		if resp.Direction != cfg.Direction {
			return fail("The market moved the other way."), nil
		}
	}
	if cfg.Target != nil {
		if resp.Price == nil || math.IsNaN(*resp.Price) {
			return models.TaskResult{}, malformed(kind, "a price is required")
		}
		if !withinTolerance(*resp.Price, *cfg.Target, cfg.Tolerance) {
			if *resp.Price > *cfg.Target {
				return fail("Your prediction is too high."), nil
			}
			return fail("Your prediction is too low."), nil
		}
	}
	return pass("Good call!"), nil
}
