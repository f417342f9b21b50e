package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmorita/studycoach/internal/coach"
	"github.com/tmorita/studycoach/internal/llm"
	"github.com/tmorita/studycoach/internal/stats"
	"github.com/tmorita/studycoach/internal/store"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Get an AI coaching message based on your quiz history",
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

		ctx := context.Background()
		repo := st.EventRepo()

		events, err := repo.AllResults(ctx)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		topicStats := stats.Aggregate(events)

		if len(topicStats) > 0 {
			printTopicStats(topicStats)
			fmt.Println()
		}

		coachCfg := coach.DefaultConfig()
		recent, err := repo.RecentResults(ctx, coachCfg.RecentLimit)
		if err != nil {
			return fmt.Errorf("query recent results: %w", err)
		}

		var provider llm.Provider
		if len(topicStats) > 0 {
			// With no history the coach short-circuits without a model call.
			provider, err = llm.NewProviderFromEnv(ctx, repo)
			if err != nil {
				return fmt.Errorf("LLM provider: %w", err)
			}
		}

		msg, err := coach.NewService(provider, coachCfg).Message(ctx, topicStats, recent)
		if err != nil {
			return fmt.Errorf("coaching message: %w", err)
		}
		fmt.Println(msg)
		return nil
	},
}
