// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var documentCheckCmd = &cobra.Command{
	Use:   "check <document>",
	Short: "Check if a document was modified concurrently",
	Long: `Check if a document was modified since some expected version.

The check compares the expected version with the latest version recorded for the document.
It is advisory only: it does not lock anything.`,
	Example: `% docmon doc check notes/plan.md --expected 0.1.0
✓ notes/plan.md is at the expected version 0.1.0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "doc check", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		identity := documentArg(args)
		expected := docmonFlags.doc.expected
		modified := m.DetectConcurrentModification(context.Background(), identity, expected)
		if expected == "" {
			expected = "current version"
		}

		if docmonFlags.json {
			if err = printJSON(map[string]interface{}{"identity": identity, "modified": modified}); err != nil {
				wrapFatalln("print result", err)
			}
			return
		}
		if modified {
			outf("%s %s was modified since %s\n", checkMark(false), identity, expected)
			return
		}
		outf("%s %s is at the expected version %s\n", checkMark(true), identity, expected)
	},
}

func init() {
	addExpectedVersionFlag(documentCheckCmd)
	addJSONFlag(documentCheckCmd)
	documentCmd.AddCommand(documentCheckCmd)
}
