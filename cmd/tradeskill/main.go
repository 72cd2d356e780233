// Package main provides the tradeskill binary: the lesson API server, a
// curriculum validator and a terminal player.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/tradeskill/internal/config"
	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tradeskill",
		Short:         "28-day trading curriculum engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("curriculum", "", "Directory of curriculum YAML files (overrides CURRICULUM_DIR)")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(playCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tradeskill", version)
		},
	})
	return cmd
}

func setupLogger(cfg config.Config) *logger.Logger {
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogFormat != "json"),
		logger.WithJSON(cfg.LogFormat == "json"),
	)
	logger.SetDefault(log)
	return log
}

// loadProgram reads the curriculum from --curriculum, then CURRICULUM_DIR,
// then the embedded week files.
func loadProgram(cmd *cobra.Command, cfg config.Config) (models.Program, error) {
	dir, _ := cmd.Flags().GetString("curriculum")
	if dir == "" {
		dir = cfg.CurriculumDir
	}
	if dir != "" {
		return curriculum.LoadDir(dir)
	}
	return curriculum.Load(curriculum.Embedded())
}
