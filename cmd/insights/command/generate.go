package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/healthmitra/insights/insights"
)

var generateSubjectId string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run an insight generation pass over a subject's recent history",
	RunE: func(cmd *cobra.Command, args []string) error {
		var generator insights.Service
		return oneShot(cmd.Context(), func(ctx context.Context) error {
			created, err := generator.GenerateInsights(ctx, generateSubjectId, nil)
			if err != nil {
				return err
			}

			fmt.Printf("created %d insight(s)\n", len(created))
			for _, insight := range created {
				fmt.Printf("  [%s] %s (confidence %.2f)\n", insight.Severity, insight.Title, insight.Confidence)
			}
			return nil
		}, fx.Populate(&generator))
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateSubjectId, "subject", "", "Subject user id")
	_ = generateCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(generateCmd)
}
