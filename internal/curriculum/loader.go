// Package curriculum loads the authored course from YAML and serves
// read-only lookups over it.
package curriculum

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
)

//go:embed data/*.yaml
var embedded embed.FS

// Embedded returns the built-in 28-day curriculum.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

type fileDoc struct {
	Program *programDoc `yaml:"program"`
	Days    []dayDoc    `yaml:"days"`
}

type programDoc struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

type dayDoc struct {
	Day     int         `yaml:"day"`
	Title   string      `yaml:"title"`
	Theme   string      `yaml:"theme"`
	Lessons []lessonDoc `yaml:"lessons"`
	Test    *testDoc    `yaml:"test"`
}

type lessonDoc struct {
	Title   string      `yaml:"title"`
	Screens []screenDoc `yaml:"screens"`
}

type screenDoc struct {
	Type       string             `yaml:"type"`
	Title      string             `yaml:"title"`
	Eyebrow    string             `yaml:"eyebrow"`
	Body       string             `yaml:"body"`
	Objectives []models.Objective `yaml:"objectives"`
	KeyPoints  []string           `yaml:"key_points"`
	Task       *yaml.Node         `yaml:"task"`
	Success    string             `yaml:"success"`
	Failure    string             `yaml:"failure"`
}

type testDoc struct {
	PassingScore float64       `yaml:"passing_score"`
	Questions    []questionDoc `yaml:"questions"`
}

type questionDoc struct {
	Task        *yaml.Node `yaml:"task"`
	Explanation string     `yaml:"explanation"`
}

// LoadDir loads every YAML file below dir.
func LoadDir(dir string) (models.Program, error) {
	return Load(os.DirFS(dir))
}

// Load parses every .yaml/.yml file in fsys, merges their days and
// validates the result. Files are read in lexical order; exactly one file
// may carry the program header.
func Load(fsys fs.FS) (models.Program, error) {
	log := logger.Default().WithPrefix("curriculum")

	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := path.Ext(p); ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return models.Program{}, fmt.Errorf("walking curriculum: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return models.Program{}, fmt.Errorf("no curriculum files found")
	}

	var prog models.Program
	seenHeader := ""
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return models.Program{}, fmt.Errorf("reading %s: %w", f, err)
		}
		var doc fileDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return models.Program{}, fmt.Errorf("parsing %s: %w", f, err)
		}
		if doc.Program != nil {
			if seenHeader != "" {
				return models.Program{}, fmt.Errorf("%s: program header already declared in %s", f, seenHeader)
			}
			seenHeader = f
			prog.ID = doc.Program.ID
			prog.Title = doc.Program.Title
		}
		for _, dd := range doc.Days {
			day, err := convertDay(dd)
			if err != nil {
				return models.Program{}, fmt.Errorf("%s: %w", f, err)
			}
			prog.Days = append(prog.Days, day)
		}
		log.Debug("loaded %s: %d days", f, len(doc.Days))
	}

	sort.SliceStable(prog.Days, func(i, j int) bool { return prog.Days[i].Number < prog.Days[j].Number })

	if err := Validate(prog); err != nil {
		return models.Program{}, err
	}
	log.Info("curriculum loaded: %q with %d days", prog.Title, len(prog.Days))
	return prog, nil
}

func convertDay(dd dayDoc) (models.Day, error) {
	day := models.Day{Number: dd.Day, Title: dd.Title, Theme: dd.Theme}
	for li, ld := range dd.Lessons {
		lesson := models.Lesson{Index: li + 1, Title: ld.Title}
		for si, sd := range ld.Screens {
			screen, err := convertScreen(sd)
			if err != nil {
				return models.Day{}, fmt.Errorf("day %d lesson %d screen %d: %w", dd.Day, li+1, si, err)
			}
			lesson.Screens = append(lesson.Screens, screen)
		}
		day.Lessons = append(day.Lessons, lesson)
	}
	if dd.Test != nil {
		test := &models.DailyTest{PassingScore: dd.Test.PassingScore}
		for qi, qd := range dd.Test.Questions {
			if qd.Task == nil {
				return models.Day{}, fmt.Errorf("day %d test question %d: missing task", dd.Day, qi+1)
			}
			cfg, err := decodeTask(qd.Task)
			if err != nil {
				return models.Day{}, fmt.Errorf("day %d test question %d: %w", dd.Day, qi+1, err)
			}
			test.Questions = append(test.Questions, models.TestQuestion{Task: cfg, Explanation: qd.Explanation})
		}
		day.Test = test
	}
	return day, nil
}

func convertScreen(sd screenDoc) (models.Screen, error) {
	s := models.Screen{
		Kind:        models.ScreenKind(strings.ToLower(sd.Type)),
		Title:       sd.Title,
		Eyebrow:     sd.Eyebrow,
		Body:        strings.TrimSpace(sd.Body),
		Objectives:  sd.Objectives,
		KeyPoints:   sd.KeyPoints,
		SuccessText: sd.Success,
		FailureText: sd.Failure,
	}
	if sd.Task != nil {
		cfg, err := decodeTask(sd.Task)
		if err != nil {
			return models.Screen{}, err
		}
		s.Task = cfg
	}
	return s, nil
}

// decodeTask reads the "kind" tag and decodes the node into that variant.
func decodeTask(node *yaml.Node) (models.TaskConfig, error) {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, fmt.Errorf("task: %w", err)
	}
	switch models.TaskKind(head.Kind) {
	case models.TaskCoinFlip:
		return decodeAs[models.CoinFlipTask](node)
	case models.TaskMultipleChoice:
		return decodeAs[models.MultipleChoiceTask](node)
	case models.TaskTrueFalse:
		return decodeAs[models.TrueFalseTask](node)
	case models.TaskDragAndDrop:
		return decodeAs[models.DragAndDropTask](node)
	case models.TaskMatching:
		return decodeAs[models.MatchingTask](node)
	case models.TaskSlider:
		return decodeAs[models.SliderTask](node)
	case models.TaskSorting:
		return decodeAs[models.SortingTask](node)
	case models.TaskPricePrediction:
		return decodeAs[models.PricePredictionTask](node)
	case models.TaskChartInteraction:
		return decodeAs[models.ChartInteractionTask](node)
	case models.TaskSimulation:
		return decodeAs[models.SimulationTask](node)
	case models.TaskFillBlank:
		return decodeAs[models.FillBlankTask](node)
	case "":
		return nil, fmt.Errorf("task: missing kind")
	}
	return nil, fmt.Errorf("task: unknown kind %q", head.Kind)
}

func decodeAs[T models.TaskConfig](node *yaml.Node) (models.TaskConfig, error) {
	var v T
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s task: %w", v.Kind(), err)
	}
	return v, nil
}
