package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/tradeskill/internal/config"
	"github.com/vytor/tradeskill/internal/curriculum"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the curriculum and report every schema problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			setupLogger(cfg)

			prog, err := loadProgram(cmd, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			repo := curriculum.NewRepository(prog)
			fmt.Fprintf(out, "%s: %d days\n", prog.Title, repo.TotalDays())
			for _, d := range prog.Days {
				screens := 0
				for _, l := range d.Lessons {
					screens += repo.TotalScreens(l)
				}
				test := "no test"
				if d.Test != nil {
					test = fmt.Sprintf("test: %d questions, pass at %.0f", len(d.Test.Questions), d.Test.PassingScore)
				}
				fmt.Fprintf(out, "  day %2d  %-40s %d lessons, %3d screens, %s\n", d.Number, d.Title, len(d.Lessons), screens, test)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
