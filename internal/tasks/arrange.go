package tasks

import (
	"fmt"

	"github.com/vytor/tradeskill/internal/models"
)

// Arrangement tasks are exact-match only: any misplaced item fails the whole task.

func evalDragAndDrop(cfg models.DragAndDropTask, resp models.DragAndDropResponse) (models.TaskResult, error) {
	kind := cfg.Kind()
	items := make(map[string]bool, len(cfg.Items))
	for _, it := range cfg.Items {
		items[it.ID] = true
	}
	buckets := make(map[string]bool, len(cfg.Buckets))
	for _, b := range cfg.Buckets {
		buckets[b.ID] = true
	}
	for item, bucket := range resp.Placements {
		if !items[item] {
			return models.TaskResult{}, malformed(kind, "unknown item %q", item)
		}
		if !buckets[bucket] {
			return models.TaskResult{}, malformed(kind, "unknown bucket %q", bucket)
		}
	}

	placed := 0
	for item, want := range cfg.Solution {
		got, ok := resp.Placements[item]
		if !ok {
			continue
		}
		if got != want {
			return fail("Some items are in the wrong bucket."), nil
		}
		placed++
	}
	if placed < len(cfg.Solution) {
		return fail(fmt.Sprintf("%d of %d items still need a bucket.", len(cfg.Solution)-placed, len(cfg.Solution))), nil
	}
	return pass("Everything is in the right place!"), nil
}

func evalMatching(cfg models.MatchingTask, resp models.MatchingResponse) (models.TaskResult, error) {
	kind := cfg.Kind()
	want := make(map[string]string, len(cfg.Pairs))
	values := make(map[string]bool, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		want[p.Key] = p.Value
		values[p.Value] = true
	}
	for k, v := range resp.Pairs {
		if _, ok := want[k]; !ok {
			return models.TaskResult{}, malformed(kind, "unknown key %q", k)
		}
		if !values[v] {
			return models.TaskResult{}, malformed(kind, "unknown value %q", v)
		}
	}

	if len(resp.Pairs) < len(want) {
		return fail("Match every term before checking."), nil
	}
	for k, v := range want {
		if resp.Pairs[k] != v {
			return fail("Some pairs don't match yet."), nil
		}
	}
	return pass("All pairs matched!"), nil
}

func evalSorting(cfg models.SortingTask, resp models.SortingResponse) (models.TaskResult, error) {
	kind := cfg.Kind()
	if len(resp.Order) != len(cfg.Items) {
		return models.TaskResult{}, malformed(kind, "expected %d items, got %d", len(cfg.Items), len(resp.Order))
	}
	remaining := make(map[string]int, len(cfg.Items))
	for _, it := range cfg.Items {
		remaining[it]++
	}
	for _, it := range resp.Order {
		if remaining[it] == 0 {
			return models.TaskResult{}, malformed(kind, "unexpected item %q", it)
		}
		remaining[it]--
	}

	for i := range cfg.Items {
		if cfg.Items[i] != resp.Order[i] {
			return fail("Not in the right order yet."), nil
		}
	}
	return pass("Perfect order!"), nil
}

func evalFillBlank(cfg models.FillBlankTask, resp models.FillBlankResponse) (models.TaskResult, error) {
	if len(resp.Tokens) != len(cfg.Blanks) {
		return models.TaskResult{}, malformed(cfg.Kind(), "expected %d tokens, got %d", len(cfg.Blanks), len(resp.Tokens))
	}
	for i, want := range cfg.Blanks {
		if Normalize(resp.Tokens[i]) != Normalize(want) {
			return fail(fmt.Sprintf("Blank %d isn't right yet.", i+1)), nil
		}
	}
	return pass("Sentence complete!"), nil
}
