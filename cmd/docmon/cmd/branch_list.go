// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/spf13/cobra"
)

func printBranch(b model.BranchDescriptor) {
	state := color.YellowString("open")
	if b.IsMerged() {
		state = color.HiBlackString("merged into %s@%s", b.MergedInto, b.MergedVersion)
	}
	outf("%s\t%s\tfrom %s\t%s\t%s\n", b.Name, b.Identity, b.BaseVersion, ago(b.Created), state)
}

var branchListCmd = &cobra.Command{
	Use:     "list <document>",
	Short:   "List the branches of a document",
	Long:    `List the branches of a document, sorted by name.`,
	Aliases: []string{"ls"},
	Example: `% docmon branch list notes/plan.md
draft	notes/plan.draft.md	from 0.1.0	2 hours ago	open`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "branch list", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		branches, err := m.ListBranches(context.Background(), documentArg(args))
		if err != nil {
			wrapFatalln("list branches", err)
			return
		}
		if docmonFlags.json {
			if err = printJSON(branches); err != nil {
				wrapFatalln("print branches", err)
			}
			return
		}
		for _, b := range branches {
			printBranch(b)
		}
	},
}

func init() {
	addJSONFlag(branchListCmd)
	branchCmd.AddCommand(branchListCmd)
}
