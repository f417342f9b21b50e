package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmorita/studycoach/internal/stats"
	"github.com/tmorita/studycoach/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-topic accuracy from your quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		events, err := st.EventRepo().AllResults(context.Background())
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No quiz history yet. Run 'studycoach quiz <file>' first.")
			return nil
		}

		printTopicStats(stats.Aggregate(events))
		fmt.Printf("\n%d answers total\n", len(events))
		return nil
	},
}

// printTopicStats renders the aggregate table, weakest topics first.
func printTopicStats(topicStats []stats.TopicStat) {
	fmt.Printf("%-28s  %8s  %8s  %9s\n", "Topic", "Attempts", "Correct", "Accuracy")
	fmt.Println(strings.Repeat("─", 60))
	for _, ts := range topicStats {
		topic := ts.Topic
		if len(topic) > 28 {
			topic = topic[:28]
		}
		fmt.Printf("%-28s  %8d  %8d  %8.0f%%\n", topic, ts.Attempts, ts.Correct, ts.Accuracy*100)
	}
}
