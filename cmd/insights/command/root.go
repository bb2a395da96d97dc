package command

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/healthmitra/insights/api"
	"github.com/healthmitra/insights/store"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Admin tool for the health insight service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Overwrite zap's log level
		return os.Setenv("LOG_LEVEL", logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "error", "Log Level")
}

// oneShot builds the service dependency graph, runs the lifecycle so
// stores are initialized, executes f and tears everything down.
func oneShot(ctx context.Context, f func(ctx context.Context) error, opts ...fx.Option) error {
	options := append(api.Dependencies(), fx.NopLogger)
	options = append(options, opts...)

	app := fx.New(options...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancelStart := context.WithTimeout(ctx, store.ContextTimeout)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancelStop := context.WithTimeout(context.Background(), store.ContextTimeout)
		defer cancelStop()
		_ = app.Stop(stopCtx)
	}()

	return f(ctx)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
