package cmd

import (
	"fmt"

	"github.com/mj1618/inspector-gadget/internal/output"
	"github.com/mj1618/inspector-gadget/internal/platform"
	"github.com/mj1618/inspector-gadget/internal/scenario"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print every semantic label visible in a scenario's tree",
	Long: `Build the host UI tree described by a scenario file (without running its
steps) and print all accessibility elements that carry a non-empty semantic
label, in YAML or JSON.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().String("scenario", "", "Scenario YAML file (required)")
	snapshotCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	_ = snapshotCmd.MarkFlagRequired("scenario")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	scenarioPath, _ := cmd.Flags().GetString("scenario")

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	world, err := sc.Build()
	if err != nil {
		return fmt.Errorf("build scenario: %w", err)
	}

	return output.Print(platform.SnapshotLabels(world.App))
}
