// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/spf13/cobra"
)

var mergeAutoCmd = &cobra.Command{
	Use:   "auto <local document> <remote document>",
	Short: "Merge two documents without conflicts",
	Long: `Merge the edits of two documents and save the result at --output (the local document by default).

The merge fails when edits conflict, and nothing is saved then. The result is not versioned.`,
	Example: `% docmon merge auto notes/plan.md notes/plan.draft.md --output notes/merged.md
merged notes/plan.draft.md into notes/merged.md at version 0.1.1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "merge auto", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		var output model.Identity
		if docmonFlags.merge.output != "" {
			output = documentArg([]string{docmonFlags.merge.output})
		}
		remote := documentArg(args[1:])
		doc, err := m.AutoMergeDocuments(context.Background(), documentArg(args), remote, output, docmonFlags.merge.base)
		if err != nil {
			wrapFatalln("merge documents", err)
			return
		}
		outf("merged %s into %s at version %s\n", remote, doc.Identity, doc.Version())
	},
}

func init() {
	addMergeBaseFlag(mergeAutoCmd)
	addOutputFlag(mergeAutoCmd, "The document receiving the merge result (defaults to the local document)")
	mergeCmd.AddCommand(mergeAutoCmd)
}
