package testutil

import "github.com/vytor/tradeskill/internal/models"

// TenScreenLesson returns a lesson with ten screens. Screen 2 is a
// multiple-choice task answered by "Sell", screen 4 a slider around 500,
// screen 6 a coin flip and screen 8 a simulation.
func TenScreenLesson() models.Lesson {
	return models.Lesson{
		Index: 1,
		Title: "Buyers, Sellers and Price",
		Screens: []models.Screen{
			{Kind: models.ScreenIntro, Title: "Welcome", Objectives: []models.Objective{{Icon: "handshake", Caption: "How a trade happens"}}},
			{Kind: models.ScreenContent, Title: "Two sides", Body: "Every trade has a buyer and a seller."},
			{
				Kind:  models.ScreenTask,
				Title: "Quick check",
				Task: models.MultipleChoiceTask{
					Prompt:  "Price is falling fast. Which side is in control?",
					Options: []models.Option{{Label: "Buy", Correct: false}, {Label: "Sell", Correct: true}},
				},
				SuccessText: "Right, sellers are in control.",
				FailureText: "Look again at who is in a hurry.",
			},
			{Kind: models.ScreenContent, Title: "Markets", Objectives: []models.Objective{{Icon: "globe", Caption: "Asset classes"}}},
			{
				Kind:  models.ScreenTask,
				Title: "Estimate",
				Task:  models.SliderTask{Prompt: "Where is fair value?", Min: 0, Max: 1000, Target: 500, Tolerance: 50},
			},
			{Kind: models.ScreenContent, Title: "Uncertainty"},
			{
				Kind:  models.ScreenTask,
				Title: "Flip",
				Task:  models.CoinFlipTask{WinProbability: 0.5, WinLabel: "up", LoseLabel: "down"},
			},
			{Kind: models.ScreenContent, Title: "Edge"},
			{
				Kind:  models.ScreenTask,
				Title: "Sandbox",
				Task:  models.SimulationTask{Prompt: "Try a trade", StartingBalance: 10000},
			},
			{Kind: models.ScreenSummary, Title: "Recap", KeyPoints: []string{"Price is agreement."}},
		},
	}
}

// TrueFalseTest returns a daily test of n questions whose answer is always
// true, with the given passing score.
func TrueFalseTest(n int, passingScore float64) models.DailyTest {
	test := models.DailyTest{PassingScore: passingScore}
	for i := 0; i < n; i++ {
		test.Questions = append(test.Questions, models.TestQuestion{
			Task:        models.TrueFalseTask{Statement: "Markets move on supply and demand.", Answer: true},
			Explanation: "Imbalance moves price.",
		})
	}
	return test
}

// SmallProgram returns a three-day program built from the fixtures above.
// Day 2 has two lessons and day 3 has no test.
func SmallProgram() models.Program {
	short := models.Lesson{Index: 2, Title: "Short", Screens: []models.Screen{
		{Kind: models.ScreenIntro, Title: "Hi"},
		{Kind: models.ScreenSummary, Title: "Bye"},
	}}
	test := TrueFalseTest(4, 75)
	day2Lesson := TenScreenLesson()
	return models.Program{
		ID:    "fixture",
		Title: "Fixture Program",
		Days: []models.Day{
			{Number: 1, Title: "One", Lessons: []models.Lesson{TenScreenLesson()}, Test: &test},
			{Number: 2, Title: "Two", Lessons: []models.Lesson{day2Lesson, short}, Test: &test},
			{Number: 3, Title: "Three", Lessons: []models.Lesson{TenScreenLesson()}},
		},
	}
}
