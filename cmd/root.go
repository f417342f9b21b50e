package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tmorita/studycoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studycoach",
	Short: "Turn study documents into AI-generated quizzes",
	Long: "Studycoach extracts text from study documents (PDF, Word, Excel, PowerPoint),\n" +
		"generates quiz questions with an LLM, tracks per-topic accuracy in a local\n" +
		"database, and coaches you on what to review next.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYCOACH_DB env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYCOACH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
