package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check connectivity to the database and WordPress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		checks := map[string]string{"database": "ok", "wordpress": "ok"}

		if _, err := env.Store.Analytics(ctx); err != nil {
			checks["database"] = "unreachable"
			zap.L().Error("database check failed", zap.Error(err))
		}
		if env.WordPress == nil {
			checks["wordpress"] = "not configured"
		} else if !env.WordPress.TestConnection(ctx) {
			checks["wordpress"] = "unreachable"
		}

		return printJSON(checks)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
