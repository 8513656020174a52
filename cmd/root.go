package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/inspector-gadget/internal/output"
	"github.com/mj1618/inspector-gadget/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inspector-gadget",
	Short: "Detect and report text changes inside a live UI tree",
	Long: `A runtime instrumentation tool that detects and reports text changes in a
UI tree without the host application modifying its own view code: imperative
text-control mutations are intercepted at the set-text entry point, and text
exposed through the accessibility layer is diffed by a periodic tree walk.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")

		// Smart default: piped output (agent context) → json,
		// terminal output (human) → yaml.
		if format == "" {
			if output.IsOutputPiped() {
				format = "json"
			} else {
				format = "yaml"
			}
		}

		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}
