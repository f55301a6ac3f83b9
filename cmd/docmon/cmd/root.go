// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/oneconcern/docmon/pkg/dlogger"
	"github.com/oneconcern/docmon/pkg/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docmon",
	Short: "Docmon versions text documents",
	Long: `Docmon keeps track of versions of text documents made of a metadata block and free-form content.

Documents live as plain files in a workspace. Docmon stores immutable snapshots of their versions,
manages branches of documents, and merges concurrent edits with a three-way merge.

Conflicting edits may be resolved interactively or by editing a conflict artifact.
`,
	Version: NewVersionInfo().Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		logger, err = dlogger.GetConsoleLogger(config.LogLevel)
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}
		if config.Metrics {
			metrics.Init(metrics.WithExporter(metrics.DefaultExporter(logger)))
			docmonFlags.metrics.m = metrics.EnsureMetrics("cli", &M{}).(*M)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var (
	config *CLIConfig
	logger = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	rootCmd.SetVersionTemplate(NewVersionInfo().String())

	for _, flag := range []string{
		addRootFlag(rootCmd),
		addMetaFlag(rootCmd),
		addBackendFlag(rootCmd),
		addLogLevelFlag(rootCmd),
		addCacheFlag(rootCmd),
		addAuthorFlag(rootCmd),
		addMetricsFlag(rootCmd),
	} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			logFatalln(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault(rootFlag, ".")
	viper.SetDefault(metaFlag, ".docmon")
	viper.SetDefault(backendFlag, backendLocalFS)
	viper.SetDefault(logLevelFlag, dlogger.LogLevelInfo)
	viper.SetDefault(cacheFlag, defaultCacheSize)

	if os.Getenv("DOCMON_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("DOCMON_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.docmon")
		viper.AddConfigPath("/etc/docmon")
		viper.SetConfigName("docmon")
	}

	viper.SetEnvPrefix("docmon")
	viper.AutomaticEnv() // read in environment variables that match
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}
