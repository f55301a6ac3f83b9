// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
//
// Field names are the names of configuration keys, flags and DOCMON_ environment variables.
type CLIConfig struct {
	Root     string `json:"root" yaml:"root"`         // Workspace root
	Meta     string `json:"meta" yaml:"meta"`         // Metadata directory
	Backend  string `json:"backend" yaml:"backend"`   // Snapshot backend
	LogLevel string `json:"loglevel" yaml:"loglevel"` // Logging level
	Cache    int    `json:"cache" yaml:"cache"`       // Snapshot cache size
	Author   string `json:"author" yaml:"author"`     // Default author
	Metrics  bool   `json:"metrics" yaml:"metrics"`   // Metrics collection
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
