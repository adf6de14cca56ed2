package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.gopad.dev/highlight/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Syntax-highlight a source file using tree-sitter grammars",
	Long: `highlight drives the tree-sitter-backed highlight engine over a
single file, resolving language injections recursively, and prints the
result as HTML or ANSI-colored text.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./highlight.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (json, console)")
	rootCmd.PersistentFlags().Int("max-depth", 8, "maximum injection recursion depth")

	bind := func(key, flag string) {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "error binding %s flag: %v\n", flag, err)
		}
	}
	bind("log.level", "log-level")
	bind("log.format", "log-format")
	bind("highlight.max_depth", "max-depth")

	rootCmd.AddCommand(renderCmd)
}

func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("highlight")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HIGHLIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "error reading config file: %v\n", err)
		}
	}

	cfg = config.New(v)
}
