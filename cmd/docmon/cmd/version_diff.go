// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/docmon/pkg/core"
	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/spf13/cobra"
)

var versionDiffCmd = &cobra.Command{
	Use:   "diff <document> <from version> <to version>",
	Short: "Compare two versions of a document",
	Long: `Compare two stored versions of a document.

Metadata changes are listed field by field, followed by the changes of the content.

With --unified, only the content is compared, as a unified diff with 3 lines of context.`,
	Example: `% docmon version diff notes/plan.md 0.0.1 0.0.2
--- notes/plan.md@0.0.1
+++ notes/plan.md@0.0.2
~ version: 0.0.1 -> 0.0.2
@@ -2,1 +2,1 @@
-line 2
+line two`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "version diff", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		identity := documentArg(args)
		if docmonFlags.unified {
			err = printUnified(context.Background(), m, identity, args[1], args[2])
			if err != nil {
				wrapFatalln("compare versions", err)
			}
			return
		}

		comparison, err := m.CompareVersions(context.Background(), identity, args[1], args[2])
		if err != nil {
			wrapFatalln("compare versions", err)
			return
		}

		if docmonFlags.json {
			if err = printJSON(comparison); err != nil {
				wrapFatalln("print comparison", err)
			}
			return
		}
		printComparison(identity, comparison)
	},
}

func printUnified(ctx context.Context, m *core.Manager, identity model.Identity, v1, v2 string) error {
	from, err := m.GetVersion(ctx, identity, v1)
	if err != nil {
		return err
	}
	to, err := m.GetVersion(ctx, identity, v2)
	if err != nil {
		return err
	}
	unified, err := diff.Unified(from.Content, to.Content,
		model.ParentRef{Identity: identity, Version: v1}.String(),
		model.ParentRef{Identity: identity, Version: v2}.String(),
		3,
	)
	if err != nil {
		return err
	}
	outf("%s", unified)
	return nil
}

func init() {
	addUnifiedFlag(versionDiffCmd)
	addJSONFlag(versionDiffCmd)
	versionCmd.AddCommand(versionDiffCmd)
}
