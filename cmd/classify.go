package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"dayplan/internal/classify"
)

var classifyName string

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify a document into a category",
	Long: `Classify reads document text from a file (or stdin) and prints the
detected category and confidence as JSON. Without a reachable model it
falls back to keyword matching.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, fileName, err := readInput(args)
		if err != nil {
			return err
		}
		if classifyName != "" {
			fileName = classifyName
		}

		cfg := loadConfig()
		result := classify.New(newGateway(cfg)).Classify(cmd.Context(), text, fileName)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyName, "name", "", "original filename, used as a classification signal")
}
