package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/healthmitra/insights/insights"
	"github.com/healthmitra/insights/store"
)

var (
	listSubjectId       string
	listLimit           int
	listIncludeInactive bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a subject's insights, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var repo insights.Repository
		return oneShot(cmd.Context(), func(ctx context.Context) error {
			filter := &insights.Filter{IncludeInactive: listIncludeInactive}
			pagination := store.Pagination{Limit: listLimit}

			result, err := repo.List(ctx, listSubjectId, filter, pagination)
			if err != nil {
				return err
			}

			for _, insight := range result {
				fmt.Printf("%s [%s/%s] %s\n",
					insight.CreatedTime.Format(time.RFC3339), insight.Kind, insight.Severity, insight.Title)
			}
			return nil
		}, fx.Populate(&repo))
	},
}

func init() {
	listCmd.Flags().StringVar(&listSubjectId, "subject", "", "Subject user id")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of insights")
	listCmd.Flags().BoolVar(&listIncludeInactive, "include-inactive", false, "Include deactivated insights")
	_ = listCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(listCmd)
}
