// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var versionGetCmd = &cobra.Command{
	Use:   "get <document> <version>",
	Short: "Print a version of a document",
	Long:  `Print a stored version of a document. The live document is not modified.`,
	Example: `% docmon version get notes/plan.md 0.0.1 > plan-0.0.1.md`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "version get", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		doc, err := m.GetVersion(context.Background(), documentArg(args), args[1])
		if err != nil {
			wrapFatalln("get version", err)
			return
		}
		if err = printDocument(doc); err != nil {
			wrapFatalln("print version", err)
			return
		}
	},
}

func init() {
	addJSONFlag(versionGetCmd)
	versionCmd.AddCommand(versionGetCmd)
}
