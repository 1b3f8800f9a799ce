package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dayplan/internal/extract"
	"dayplan/internal/taskgen"
	"dayplan/models"
)

var (
	extractSource  string
	extractSender  string
	extractSubj    string
	extractAsTasks bool
)

// extractOutput is the JSON document the extract command emits.
type extractOutput struct {
	Tasks    []models.TaskCandidate   `json:"tasks"`
	Dates    []models.ExtractedDate   `json:"dates"`
	Amounts  []models.ExtractedAmount `json:"amounts"`
	Entities models.Entities          `json:"entities"`
}

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract tasks, dates, amounts and entities from text",
	Long: `Extract reads text from a file (or stdin) and emits everything the
pipeline can find in it: task candidates, dates, monetary amounts and
named entities, as JSON on stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _, err := readInput(args)
		if err != nil {
			return err
		}

		source := models.SourceType(extractSource)
		switch source {
		case models.SourceEmail, models.SourceDocument, models.SourceCalendar, models.SourceManual:
		default:
			return fmt.Errorf("invalid --source %q", extractSource)
		}

		cfg := loadConfig()
		gateway := newGateway(cfg)
		nlp := extract.NewNLPExtractor(nil)
		dates := extract.NewDateExtractor(nil)

		var tctx *taskgen.Context
		if extractSender != "" || extractSubj != "" {
			tctx = &taskgen.Context{SenderEmail: extractSender, Subject: extractSubj}
		}

		candidates := taskgen.New(gateway, nlp, dates).ExtractTasks(cmd.Context(), text, source, tctx)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if extractAsTasks {
			// Full Task records with fresh IDs, ready for `dayplan plan --tasks`.
			tasks := make([]*models.Task, 0, len(candidates))
			for _, c := range candidates {
				tasks = append(tasks, models.NewTask(uuid.NewString(), c, source))
			}
			return enc.Encode(tasks)
		}

		out := extractOutput{
			Tasks:    candidates,
			Dates:    dates.ExtractDates(text),
			Amounts:  extract.ExtractAmounts(text),
			Entities: nlp.ExtractEntities(text),
		}
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractSource, "source", "email", "source type: email, document, calendar or manual")
	extractCmd.Flags().StringVar(&extractSender, "sender", "", "sender email, used as extraction context")
	extractCmd.Flags().StringVar(&extractSubj, "subject", "", "subject line, used as extraction context")
	extractCmd.Flags().BoolVar(&extractAsTasks, "as-tasks", false, "emit full task records instead of the raw extraction report")
}
