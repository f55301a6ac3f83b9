// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var branchCreateCmd = &cobra.Command{
	Use:   "create <document> <branch>",
	Short: "Create a branch of a document",
	Long: `Create a branch of a document from one of its versions (the latest one by default).

Branch names start with a letter or a digit, and contain only letters, digits, '-' or '_'.`,
	Example: `% docmon branch create notes/plan.md draft
created branch draft of notes/plan.md@0.1.0 at notes/plan.draft.md`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "branch create", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		desc, _, err := m.CreateBranch(context.Background(), documentArg(args), args[1], docmonFlags.branch.baseVersion)
		if err != nil {
			wrapFatalln("create branch", err)
			return
		}
		if docmonFlags.json {
			if err = printJSON(desc); err != nil {
				wrapFatalln("print branch", err)
			}
			return
		}
		outf("created branch %s of %s@%s at %s\n", desc.Name, desc.Source, desc.BaseVersion, desc.Identity)
	},
}

func init() {
	addBaseVersionFlag(branchCreateCmd)
	addJSONFlag(branchCreateCmd)
	branchCmd.AddCommand(branchCreateCmd)
}
