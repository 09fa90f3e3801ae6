// Package commands implements the CLI commands for statutree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statutree/statutree/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "statutree",
	Short: "Normalize statute and regulation text into subsection trees",
	Long: `Statutree parses extracted statute or regulation text into a single
hierarchical model: a section with an ordered tree of subsections,
its title, and any trailing history note.

Parsing is driven by declarative jurisdiction profiles, so the same
engine serves every numbering convention. Input is a local text, HTML,
or XML file; statutree never fetches anything itself.

Examples:
  # Parse a plain-text section with the West Virginia profile
  statutree parse -i section.txt -j WV -n 11-15-3

  # Parse a saved HTML page and emit YAML
  statutree parse -i page.html -j HI -n 231-1 -f yaml

  # Parse an eCFR SECTION element
  statutree parse -i div8.xml --xml-format cfr-section -n 101.1

  # List built-in jurisdiction profiles
  statutree profiles`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.statutree.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".statutree")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("STATUTREE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
