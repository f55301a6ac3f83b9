// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/spf13/cobra"
)

var mergeResolveCmd = &cobra.Command{
	Use:   "resolve <artifact>",
	Short: "Save a resolved conflict artifact",
	Long: `Read a conflict artifact edited by hand and save it at --output (the artifact itself by default).

It fails while conflict markers remain.`,
	Example: `% docmon merge resolve notes/plan.conflict.md --output notes/plan.md
resolved notes/plan.conflict.md into notes/plan.md at version 0.1.1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "merge resolve", err)
		}(time.Now())

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		var output model.Identity
		if docmonFlags.merge.output != "" {
			output = documentArg([]string{docmonFlags.merge.output})
		}
		artifact := documentArg(args)
		doc, err := m.ResolveFromArtifact(context.Background(), artifact, output)
		if err != nil {
			wrapFatalln("resolve conflict artifact", err)
			return
		}
		outf("resolved %s into %s at version %s\n", artifact, doc.Identity, doc.Version())
	},
}

func init() {
	addOutputFlag(mergeResolveCmd, "The document receiving the resolved artifact (defaults to the artifact)")
	mergeCmd.AddCommand(mergeResolveCmd)
}
