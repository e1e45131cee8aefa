package cmd

import (
	"fmt"
	"os"

	"github.com/prophetlog/prediction-api/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prediction-api",
	Short: "Prediction Log API server",
	Long: `Prediction Log API - extracts financial predictions from creator videos

The service tracks YouTube channels, discovers their recent videos, fetches
transcripts, segments them into semantic blocks, and asks a language model to
pull out every future-oriented financial claim. Predictions are stored with
their transcript context and timestamp so they can be checked later.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		// Version and help never touch config
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
