package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fakenewsdetect",
	Short: "FakeNewsDetect analysis backend",
	Long: `FakeNewsDetect serves the analysis API used by the FakeNewsDetect
frontend: text, URL and image verdicts, feedback collection and a shared
analysis history.

Verdicts come from a keyword heuristic and canned archetypes. They are
illustrative and not a real credibility assessment.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fakenewsdetect %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml, ./config/config.yaml or /etc/fakenewsdetect/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}
