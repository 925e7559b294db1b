package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/localpages/internal/model"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage tracked keywords",
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keywords, optionally filtered by location",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		locationID, _ := cmd.Flags().GetString("location")
		kws, err := env.Store.ListKeywords(ctx, locationID)
		if err != nil {
			return err
		}
		return printJSON(kws)
	},
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add <location-id> <keyword>",
	Short: "Add a keyword to track for a location",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		targetRank, _ := cmd.Flags().GetInt("target-rank")
		kw, err := env.Store.CreateKeyword(ctx, model.Keyword{
			LocationID: args[0],
			Keyword:    args[1],
			TargetRank: targetRank,
		})
		if err != nil {
			return err
		}

		zap.L().Info("keyword added", zap.String("id", kw.ID), zap.String("keyword", kw.Keyword))
		return printJSON(kw)
	},
}

func init() {
	keywordsListCmd.Flags().String("location", "", "filter by location id")
	keywordsAddCmd.Flags().Int("target-rank", 1, "rank goal for the keyword")

	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsAddCmd)
	rootCmd.AddCommand(keywordsCmd)
}
