// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var versionRollbackCmd = &cobra.Command{
	Use:   "rollback <document> <version>",
	Short: "Restore a version of a document",
	Long: `Overwrite a live document with a stored version.

Unless --no-backup is set, the current state of the document is saved as a new version first.
Further versions of the document derive from the restored version.`,
	Example: `% docmon version rollback notes/plan.md 0.0.1`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "version rollback", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		doc, err := m.Rollback(context.Background(), documentArg(args), args[1], !docmonFlags.version.noBackup)
		if err != nil {
			wrapFatalln("rollback", err)
			return
		}
		outf("restored %s at version %s\n", doc.Identity, doc.Version())
	},
}

func init() {
	addNoBackupFlag(versionRollbackCmd)
	versionCmd.AddCommand(versionRollbackCmd)
}
