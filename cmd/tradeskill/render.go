package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/tasks"
)

func renderScreen(w io.Writer, s models.Screen) {
	if s.Eyebrow != "" {
		fmt.Fprintf(w, "%s\n", strings.ToUpper(s.Eyebrow))
	}
	if s.Body != "" {
		fmt.Fprintf(w, "%s\n", s.Body)
	}
	for _, o := range s.Objectives {
		fmt.Fprintf(w, "  * %s\n", o.Caption)
	}
	for _, k := range s.KeyPoints {
		fmt.Fprintf(w, "  - %s\n", k)
	}
}

func renderTask(w io.Writer, v tasks.View) {
	if v.Prompt != "" {
		fmt.Fprintf(w, "%s\n", v.Prompt)
	}
	if v.Instrument != "" {
		fmt.Fprintf(w, "Instrument: %s\n", v.Instrument)
	}
	if v.Scenario != "" {
		fmt.Fprintf(w, "%s\n", v.Scenario)
	}
	if v.StartingBalance > 0 {
		fmt.Fprintf(w, "Starting balance: %.2f\n", v.StartingBalance)
	}
	if v.Template != "" {
		fmt.Fprintf(w, "%s\n", v.Template)
	}
	if len(v.Series) > 0 {
		parts := make([]string, len(v.Series))
		for i, p := range v.Series {
			parts[i] = fmt.Sprintf("%g", p)
		}
		fmt.Fprintf(w, "Series: %s\n", strings.Join(parts, " "))
	}

	switch v.Kind {
	case models.TaskMatching:
		for i, k := range v.Keys {
			fmt.Fprintf(w, "  %d) %s\n", i+1, k)
		}
		for i, o := range v.Options {
			fmt.Fprintf(w, "  %c) %s\n", 'a'+i, o)
		}
		fmt.Fprintln(w, "Pair them as 1=a; 2=b")
	case models.TaskDragAndDrop:
		for i, it := range v.Items {
			fmt.Fprintf(w, "  %d) %s\n", i+1, it.Label)
		}
		labels := make([]string, len(v.Buckets))
		for i, b := range v.Buckets {
			labels[i] = fmt.Sprintf("%d) %s", i+1, b.Label)
		}
		fmt.Fprintf(w, "Buckets: %s\n", strings.Join(labels, "  "))
		fmt.Fprintln(w, "Place items as 1=2; 2=1")
	default:
		for i, o := range v.Options {
			fmt.Fprintf(w, "  %d) %s\n", i+1, o)
		}
	}

	switch v.Kind {
	case models.TaskMultipleChoice:
		if v.MultiAnswer {
			fmt.Fprintln(w, "Choose every correct option, separated by commas")
		}
	case models.TaskSlider:
		if v.Min != nil && v.Max != nil {
			fmt.Fprintf(w, "Pick a value between %g and %g %s\n", *v.Min, *v.Max, v.Unit)
		}
	case models.TaskSorting:
		fmt.Fprintln(w, "Give the order, separated by commas")
	case models.TaskPricePrediction:
		var asks []string
		if v.AsksDirection {
			asks = append(asks, "up or down")
		}
		if v.AsksPrice {
			asks = append(asks, "a price")
		}
		fmt.Fprintf(w, "Answer with %s\n", strings.Join(asks, " and "))
	case models.TaskChartInteraction:
		fmt.Fprintln(w, "Mark a point as x,y")
	case models.TaskFillBlank:
		fmt.Fprintf(w, "Fill %d blanks, separated by commas\n", v.Blanks)
	}
}

func renderResult(w io.Writer, res models.TaskResult) {
	mark := "x"
	if res.Passed {
		mark = "ok"
	}
	line := fmt.Sprintf("  [%s]", mark)
	if res.Outcome != "" {
		line += " " + res.Outcome + "."
	}
	if res.Feedback != "" {
		line += " " + res.Feedback
	}
	fmt.Fprintln(w, line)
}
