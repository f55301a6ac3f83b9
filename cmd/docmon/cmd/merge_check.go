// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var mergeCheckCmd = &cobra.Command{
	Use:   "check <local document> <remote document>",
	Short: "Check two documents for conflicts",
	Long:  `Detect the conflicts between the edits of two documents since their common ancestor. Nothing is modified.`,
	Example: `% docmon merge check notes/plan.md notes/plan.draft.md
session 2ABCxyz (detected): base 0.1.0, local 0.1.0, remote 0.1.0
metadata conflict title: local The plan, remote The draft (base Plan)
content conflict #0 on lines 3-3
<<<<<<< LOCAL
line 3 (main)
=======
line 3 (draft)
>>>>>>> REMOTE`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "merge check", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		session, err := m.CheckForConflicts(context.Background(), documentArg(args), documentArg(args[1:]), docmonFlags.merge.base)
		if err != nil {
			wrapFatalln("check for conflicts", err)
			return
		}
		if docmonFlags.json {
			if err = printJSON(session.Summary()); err != nil {
				wrapFatalln("print conflicts", err)
			}
			return
		}
		printSummary(session.Summary())
	},
}

func init() {
	addMergeBaseFlag(mergeCheckCmd)
	addJSONFlag(mergeCheckCmd)
	mergeCmd.AddCommand(mergeCheckCmd)
}
