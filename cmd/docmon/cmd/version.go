// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Commands to manage versions of documents",
	Long: `Commands to manage versions of documents.

A version is an immutable snapshot of a document, tagged with a semantic version.
Versions record their parent versions: the history of a document is a graph spanning its branches.`,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
