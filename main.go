// main.go
//
// Entry point for the tournament CLI.
// Responsibilities:
//   - Root command wiring (run, serve).
//   - Environment loading (.env) and global log level.
//
// Configuration precedence: flags > environment > defaults.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordle-tournament",
	Short: "Wordle strategy tournament engine",
	Long: `Runs Wordle strategy tournaments: agents play isolated games over
shared word corpora and are ranked by Borda scoring across rounds.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
