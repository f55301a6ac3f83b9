// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Commands to merge documents",
	Long: `Commands to merge two live documents with a three-way merge.

The local document is the first argument, the remote document the second one.
The common ancestor is resolved from the version history of both documents, unless --base sets a version of the local document.`,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
