// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var branchMergeCmd = &cobra.Command{
	Use:   "merge <branch document> <target document>",
	Short: "Merge a branch into a document",
	Long: `Merge the live branch document into the live target document, and store the result as a new version of the target.

The merge fails when edits conflict: use "docmon merge artifact" to resolve conflicts by hand.`,
	Example: `% docmon branch merge notes/plan.draft.md notes/plan.md --backup
0.1.1	#4	alice	Less than a second ago	Merge notes/plan.draft.md@0.0.2 into notes/plan.md
	parents: notes/plan.md@0.1.0, notes/plan.draft.md@0.0.2`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "branch merge", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		entry, err := m.MergeBranch(context.Background(), documentArg(args), documentArg(args[1:]), docmonFlags.branch.backup)
		if err != nil {
			wrapFatalln("merge branch", err)
			return
		}
		if docmonFlags.json {
			if err = printJSON(entry); err != nil {
				wrapFatalln("print version", err)
			}
			return
		}
		printEntry(entry)
	},
}

func init() {
	addBackupFlag(branchMergeCmd)
	addJSONFlag(branchMergeCmd)
	branchCmd.AddCommand(branchMergeCmd)
}
