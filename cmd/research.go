package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/localpages/internal/model"
	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/internal/workflow"
)

var (
	researchPageType     string
	researchTopic        string
	researchNeighborhood string
	jobsLocationID       string
	jobsStatus           string
	jobsLimit            int
)

var researchCmd = &cobra.Command{
	Use:   "research <location-id>",
	Short: "Generate content for a location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		job, err := env.Research.Run(ctx, workflow.ResearchParams{
			LocationID:   args[0],
			PageType:     model.PageType(researchPageType),
			Topic:        researchTopic,
			Neighborhood: researchNeighborhood,
		})
		if err != nil {
			return err
		}

		zap.L().Info("job completed",
			zap.String("job_id", job.ID),
			zap.Int("word_count", job.WordCount),
			zap.Int("questions", job.QuestionsCount))
		return printJSON(job)
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List research jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		jobs, err := env.Store.ListResearchJobs(ctx, store.JobFilter{
			LocationID: jobsLocationID,
			Status:     model.JobStatus(jobsStatus),
			Limit:      jobsLimit,
		})
		if err != nil {
			return err
		}
		return printJSON(jobs)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	researchCmd.Flags().StringVar(&researchPageType, "page-type", "main_city", "page type: main_city, topic, neighborhood")
	researchCmd.Flags().StringVar(&researchTopic, "topic", "", "topic for topic pages")
	researchCmd.Flags().StringVar(&researchNeighborhood, "neighborhood", "", "neighborhood for neighborhood pages")
	rootCmd.AddCommand(researchCmd)

	jobsCmd.Flags().StringVar(&jobsLocationID, "location", "", "filter by location id")
	jobsCmd.Flags().StringVar(&jobsStatus, "status", "", "filter by status")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 50, "max jobs to list")
	rootCmd.AddCommand(jobsCmd)
}
