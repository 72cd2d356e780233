package curriculum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/tasks"
)

// Validate checks the structural invariants of a program and reports every
// violation found, not just the first.
func Validate(p models.Program) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(p.Days) == 0 {
		add("program has no days")
	}
	for i, day := range p.Days {
		if day.Number != i+1 {
			add("day numbers must run 1..%d without gaps: position %d holds day %d", len(p.Days), i+1, day.Number)
		}
		if len(day.Lessons) == 0 {
			add("day %d has no lessons", day.Number)
		}
		for li, lesson := range day.Lessons {
			where := fmt.Sprintf("day %d lesson %d", day.Number, li+1)
			if lesson.Index != li+1 {
				add("%s: index %d out of sequence", where, lesson.Index)
			}
			validateLesson(where, lesson, add)
		}
		if day.Test != nil {
			validateTest(fmt.Sprintf("day %d test", day.Number), *day.Test, add)
		}
	}
	return errors.Join(errs...)
}

// screenRank orders kinds: intros first, summaries last.
func screenRank(k models.ScreenKind) int {
	switch k {
	case models.ScreenIntro:
		return 0
	case models.ScreenSummary:
		return 2
	default:
		return 1
	}
}

func validateLesson(where string, lesson models.Lesson, add func(string, ...any)) {
	if len(lesson.Screens) == 0 {
		add("%s has no screens", where)
		return
	}
	prevRank := 0
	for si, s := range lesson.Screens {
		at := fmt.Sprintf("%s screen %d", where, si)
		if !s.Kind.Valid() {
			add("%s: unknown screen type %q", at, s.Kind)
			continue
		}
		if r := screenRank(s.Kind); r < prevRank {
			add("%s: %s screen after a later-stage screen", at, s.Kind)
		} else {
			prevRank = r
		}
		switch {
		case s.Kind == models.ScreenTask && s.Task == nil:
			add("%s: task screen without a task", at)
		case s.Kind != models.ScreenTask && s.Task != nil:
			add("%s: %s screen must not carry a task", at, s.Kind)
		case s.Task != nil:
			for _, problem := range taskProblems(s.Task) {
				add("%s: %s", at, problem)
			}
		}
	}
}

func validateTest(where string, test models.DailyTest, add func(string, ...any)) {
	if test.PassingScore <= 0 || test.PassingScore > 100 {
		add("%s: passing score %v must be in (0, 100]", where, test.PassingScore)
	}
	if len(test.Questions) == 0 {
		add("%s has no questions", where)
	}
	for qi, q := range test.Questions {
		if q.Task == nil {
			add("%s question %d: missing task", where, qi+1)
			continue
		}
		for _, problem := range taskProblems(q.Task) {
			add("%s question %d: %s", where, qi+1, problem)
		}
	}
}

func taskProblems(cfg models.TaskConfig) []string {
	var out []string
	bad := func(format string, args ...any) {
		out = append(out, fmt.Sprintf(string(cfg.Kind())+": "+format, args...))
	}

	switch c := cfg.(type) {
	case models.CoinFlipTask:
		if c.WinProbability < 0 || c.WinProbability > 1 {
			bad("win probability %v outside [0, 1]", c.WinProbability)
		}
	case models.MultipleChoiceTask:
		if len(c.Options) < 2 {
			bad("needs at least two options")
		}
		if dup := firstDuplicate(len(c.Options), func(i int) string { return tasks.Normalize(c.Options[i].Label) }); dup != "" {
			bad("duplicate option %q", dup)
		}
		correct := len(c.CorrectLabels())
		if c.MultiAnswer && correct == 0 {
			bad("multi-answer question has no correct option")
		}
		if !c.MultiAnswer && correct != 1 {
			bad("single-answer question has %d correct options", correct)
		}
	case models.DragAndDropTask:
		if len(c.Items) == 0 || len(c.Buckets) == 0 {
			bad("needs items and buckets")
		}
		buckets := make(map[string]bool, len(c.Buckets))
		for _, b := range c.Buckets {
			buckets[b.ID] = true
		}
		for _, it := range c.Items {
			target, ok := c.Solution[it.ID]
			if !ok {
				bad("item %q has no solution bucket", it.ID)
			} else if !buckets[target] {
				bad("item %q solved into unknown bucket %q", it.ID, target)
			}
		}
		if len(c.Solution) != len(c.Items) {
			bad("solution covers %d items, task has %d", len(c.Solution), len(c.Items))
		}
	case models.MatchingTask:
		if len(c.Pairs) < 2 {
			bad("needs at least two pairs")
		}
		if dup := firstDuplicate(len(c.Pairs), func(i int) string { return tasks.Normalize(c.Pairs[i].Key) }); dup != "" {
			bad("duplicate key %q", dup)
		}
		if dup := firstDuplicate(len(c.Pairs), func(i int) string { return tasks.Normalize(c.Pairs[i].Value) }); dup != "" {
			bad("duplicate value %q", dup)
		}
	case models.SliderTask:
		if c.Min >= c.Max {
			bad("min %v must be below max %v", c.Min, c.Max)
		}
		if c.Target < c.Min || c.Target > c.Max {
			bad("target %v outside [%v, %v]", c.Target, c.Min, c.Max)
		}
		if c.Tolerance < 0 {
			bad("negative tolerance")
		}
	case models.SortingTask:
		if len(c.Items) < 2 {
			bad("needs at least two items")
		}
		if dup := firstDuplicate(len(c.Items), func(i int) string { return c.Items[i] }); dup != "" {
			bad("duplicate item %q", dup)
		}
	case models.PricePredictionTask:
		if c.Direction != "" && c.Direction != models.DirectionUp && c.Direction != models.DirectionDown {
			bad("direction %q must be up or down", c.Direction)
		}
		if c.Direction == "" && c.Target == nil {
			bad("needs a direction, a target, or both")
		}
		if c.Tolerance < 0 {
			bad("negative tolerance")
		}
	case models.ChartInteractionTask:
		if c.Target.XMin > c.Target.XMax || c.Target.YMin > c.Target.YMax {
			bad("target region is inverted")
		}
	case models.FillBlankTask:
		if len(c.Blanks) == 0 {
			bad("needs at least one blank")
		}
		if n := strings.Count(c.Template, models.BlankMarker); n != len(c.Blanks) {
			bad("template has %d blanks, %d answers given", n, len(c.Blanks))
		}
	case models.TrueFalseTask, models.SimulationTask:
	}
	return out
}

func firstDuplicate(n int, key func(int) string) string {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		k := key(i)
		if seen[k] {
			return k
		}
		seen[k] = true
	}
	return ""
}
