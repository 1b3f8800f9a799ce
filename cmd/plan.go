package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dayplan/internal/habit"
	"dayplan/internal/history"
	"dayplan/internal/plan"
	"dayplan/internal/risk"
	"dayplan/internal/score"
	"dayplan/models"
)

var (
	planTasksFile string
	planDate      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a daily plan from a task list",
	Long: `Plan reads tasks from a JSON file, enriches them with risk levels
derived from your completion history, and prints a scheduled plan for the
target date. Tasks without a priority are scored on the fly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDate := time.Now()
		if planDate != "" {
			t, err := time.Parse("2006-01-02", planDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", planDate, err)
			}
			targetDate = t
		}

		data, err := os.ReadFile(planTasksFile)
		if err != nil {
			return fmt.Errorf("read tasks file: %w", err)
		}
		var tasks []*models.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return fmt.Errorf("parse tasks file: %w", err)
		}

		cfg := loadConfig()

		pattern := loadPattern(cfg.HistoryFile)

		engine := risk.New(nil)
		scorer := score.New(nil)
		for _, t := range tasks {
			if t.Priority == 0 {
				t.Priority = scorer.ScoreTask(score.TaskInput{
					DueDate:     t.DueDate,
					CreatedAt:   t.CreatedAt,
					SourceType:  t.SourceType,
					Title:       t.Title,
					Description: t.Description,
				})
			}
			if t.RiskLevel == 0 {
				t.RiskLevel = engine.TaskRisk(t, pattern)
			}
		}

		daily := plan.New(newGateway(cfg), cfg.Planner, nil).GeneratePlan(cmd.Context(), tasks, targetDate)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(daily)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <task-id> <title>",
	Short: "Record a task completion in history",
	Long: `Complete appends a completion record to the local history database.
The habit predictor mines this history for peak hours and practiced
categories, which feed risk scoring and scheduling.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		store, err := history.Open(cfg.HistoryFile)
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Record(models.CompletionRecord{
			TaskID:      args[0],
			Title:       args[1],
			SourceType:  models.SourceManual,
			CompletedAt: time.Now(),
		})
	},
}

// loadPattern derives the completion pattern from history. Any failure
// yields an empty pattern; planning proceeds on defaults.
func loadPattern(historyFile string) models.CompletionPattern {
	store, err := history.Open(historyFile)
	if err != nil {
		slog.Warn("history unavailable, planning without patterns", "error", err)
		return models.CompletionPattern{}
	}
	defer store.Close()

	records, err := store.Completions(time.Time{})
	if err != nil {
		slog.Warn("failed to read completion history", "error", err)
		return models.CompletionPattern{}
	}
	return habit.AnalyzePatterns(records)
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(completeCmd)

	planCmd.Flags().StringVar(&planTasksFile, "tasks", "tasks.json", "JSON file holding the task list")
	planCmd.Flags().StringVar(&planDate, "date", "", "target date as YYYY-MM-DD (default today)")
}
