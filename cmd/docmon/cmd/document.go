// Copyright © 2018 One Concern

package cmd

import (
	"path/filepath"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:     "doc",
	Short:   "Commands to manage live documents",
	Aliases: []string{"document"},
	Long: `Commands to manage live documents.

A document is a text file starting with a metadata block delimited by "---" lines, followed by its content.
Documents are identified by their path relative to the workspace root.`,
}

func init() {
	rootCmd.AddCommand(documentCmd)
}

// documentArg reads a document identity from the command arguments
func documentArg(args []string) model.Identity {
	return model.Identity(filepath.ToSlash(filepath.Clean(args[0])))
}
