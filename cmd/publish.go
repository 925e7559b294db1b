package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/localpages/internal/model"
	"github.com/sells-group/localpages/internal/workflow"
)

var (
	publishDraft  bool
	publishPostID int
)

var publishCmd = &cobra.Command{
	Use:   "publish <job-id>...",
	Short: "Publish completed jobs to WordPress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.WordPress == nil {
			return eris.New("wordpress is not configured")
		}

		status := model.PublishStatusPublish
		if publishDraft {
			status = model.PublishStatusDraft
		}

		if len(args) == 1 && publishPostID > 0 {
			result, err := env.Publish.Update(ctx, workflow.UpdateParams{JobID: args[0], PostID: publishPostID})
			if err != nil {
				return err
			}
			return printJSON(result)
		}

		if len(args) == 1 {
			result, err := env.Publish.Run(ctx, workflow.PublishParams{JobID: args[0], Status: status})
			if err != nil {
				return err
			}
			return printJSON(result)
		}

		result, err := env.Bulk.Run(ctx, workflow.BulkPublishParams{JobIDs: args, Status: status})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	publishCmd.Flags().BoolVar(&publishDraft, "draft", false, "create pages as drafts")
	publishCmd.Flags().IntVar(&publishPostID, "update", 0, "update an existing page by post id instead of creating")
	rootCmd.AddCommand(publishCmd)
}
