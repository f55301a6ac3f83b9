// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var versionListCmd = &cobra.Command{
	Use:     "list <document>",
	Short:   "List the versions of a document",
	Long:    `List the versions of a document, in the order they were created.`,
	Aliases: []string{"ls", "log"},
	Example: `% docmon version list notes/plan.md
0.0.1	#1	alice	2 days ago	First draft
0.1.0	#2	alice	2 hours ago	Reviewed by the team
	parents: notes/plan.md@0.0.1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "version list", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		entries, err := m.ListVersions(context.Background(), documentArg(args))
		if err != nil {
			wrapFatalln("list versions", err)
			return
		}

		if docmonFlags.json {
			if err = printJSON(entries); err != nil {
				wrapFatalln("print versions", err)
			}
			return
		}
		for _, entry := range entries {
			printEntry(entry)
		}
	},
}

func init() {
	addJSONFlag(versionListCmd)
	versionCmd.AddCommand(versionListCmd)
}
