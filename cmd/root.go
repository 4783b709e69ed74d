package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docguard/anonymizer-cli/internal/config"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "anonymizer-cli",
	Short: "Anonymize sensitive text in Word documents",
	Long:  longDescription,
}

var cfgFile string
var noColor bool

// Execute executes the root command.
func Execute() {
	rootCmd.Execute()
}

// GetRootCmd returns the root command, for main.go to pass to whatever
// executes it.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.anonymizer-cli.yaml or ./config/defaults.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Has no effect: log prefixes are always colored")

	rootCmd.AddCommand(anonymizeCmd)
}

const longDescription = "Anonymizer CLI replaces sensitive text found in Office Open XML word-processing documents with deterministic surrogate identifiers, leaving formatting and document structure otherwise untouched."

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search for config in multiple locations (in order of priority):
		// 1. $HOME/.anonymizer-cli.yaml
		// 2. ./config/defaults.yaml (project local)
		homeConfig := filepath.Join(home, ".anonymizer-cli.yaml")
		if _, statErr := os.Stat(homeConfig); statErr == nil {
			viper.SetConfigFile(homeConfig)
		} else {
			viper.AddConfigPath("./config")
			viper.SetConfigType("yaml")
			viper.SetConfigName("defaults")
		}
	}

	// Enable environment variable support: each key is read from
	// ANONYMIZER_<KEY> (e.g. nlp_endpoint -> ANONYMIZER_NLP_ENDPOINT), with
	// any dots in a key replaced by underscores.
	viper.SetEnvPrefix("ANONYMIZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()

	notFound := &viper.ConfigFileNotFoundError{}
	switch {
	case err != nil && !errors.As(err, notFound):
		cobra.CheckErr(err)
	case err != nil && errors.As(err, notFound):
		// The config file is optional, we shouldn't exit when it's absent.
		break
	default:
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
