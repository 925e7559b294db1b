package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/localpages/internal/model"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Manage service-area locations",
}

var locationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		locs, err := env.Store.ListLocations(ctx)
		if err != nil {
			return err
		}
		return printJSON(locs)
	},
}

// seedLocation is one entry of a YAML seed file.
type seedLocation struct {
	City         string   `yaml:"city"`
	State        string   `yaml:"state"`
	StateAbbr    string   `yaml:"state_abbr"`
	County       string   `yaml:"county"`
	Population   int      `yaml:"population"`
	Latitude     *float64 `yaml:"latitude"`
	Longitude    *float64 `yaml:"longitude"`
	ZipCodes     []string `yaml:"zip_codes"`
	PriorityRank int      `yaml:"priority_rank"`
}

var locationsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import locations from a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read seed file")
		}

		var seeds []seedLocation
		if err := yaml.Unmarshal(data, &seeds); err != nil {
			return eris.Wrap(err, "parse seed file")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		imported := 0
		for _, seed := range seeds {
			if seed.City == "" || seed.StateAbbr == "" {
				zap.L().Warn("skipping entry without city or state_abbr")
				continue
			}
			_, err := env.Store.CreateLocation(ctx, model.Location{
				City:         seed.City,
				State:        seed.State,
				StateAbbr:    seed.StateAbbr,
				County:       seed.County,
				Population:   seed.Population,
				Latitude:     seed.Latitude,
				Longitude:    seed.Longitude,
				ZipCodes:     seed.ZipCodes,
				PriorityRank: seed.PriorityRank,
			})
			if err != nil {
				return eris.Wrapf(err, "import %s", seed.City)
			}
			imported++
		}

		zap.L().Info("locations imported", zap.Int("count", imported))
		return nil
	},
}

func init() {
	locationsCmd.AddCommand(locationsListCmd)
	locationsCmd.AddCommand(locationsImportCmd)
	rootCmd.AddCommand(locationsCmd)
}
