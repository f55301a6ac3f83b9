// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/docmon/pkg/merge"
	"github.com/spf13/cobra"
)

var mergeArtifactCmd = &cobra.Command{
	Use:   "artifact <local document> <remote document>",
	Short: "Write a conflict artifact for manual resolution",
	Long: `Write the merge of two documents to --output, with conflict markers around every conflicting edit.

Edit the artifact to remove all markers, then run "docmon merge resolve".`,
	Example: `% docmon merge artifact notes/plan.md notes/plan.draft.md --output notes/plan.conflict.md
wrote notes/plan.conflict.md with 1 metadata and 1 content conflicts`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "merge artifact", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		ctx := context.Background()
		var session *merge.Session
		session, err = m.CheckForConflicts(ctx, documentArg(args), documentArg(args[1:]), docmonFlags.merge.base)
		if err != nil {
			wrapFatalln("check for conflicts", err)
			return
		}
		output := documentArg([]string{docmonFlags.merge.output})
		if err = m.CreateConflictArtifact(ctx, session, output); err != nil {
			wrapFatalln("write conflict artifact", err)
			return
		}
		conflicts := session.Conflicts()
		outf("wrote %s with %d metadata and %d content conflicts\n", output, len(conflicts.Metadata), len(conflicts.Content))
	},
}

func init() {
	addMergeBaseFlag(mergeArtifactCmd)
	if err := mergeArtifactCmd.MarkFlagRequired(addOutputFlag(mergeArtifactCmd, "The document receiving the conflict artifact")); err != nil {
		logFatalln(err)
	}
	mergeCmd.AddCommand(mergeArtifactCmd)
}
