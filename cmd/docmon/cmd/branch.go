// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Commands to manage branches of documents",
	Long: `Commands to manage branches of documents.

A branch of a document is an independent document seeded from one of its versions.
The branch "draft" of notes/plan.md lives at notes/plan.draft.md.`,
}

func init() {
	rootCmd.AddCommand(branchCmd)
}
