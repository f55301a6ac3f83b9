// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/docmon/pkg/core"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
	"github.com/spf13/cobra"
)

func versionOptions() ([]core.VersionOption, error) {
	kind, err := semver.ParseKind(docmonFlags.version.kind)
	if err != nil {
		return nil, err
	}
	opts := []core.VersionOption{
		core.Bump(kind),
		core.Description(docmonFlags.version.description),
	}
	if docmonFlags.version.version != "" {
		opts = append(opts, core.Version(docmonFlags.version.version))
	}
	if docmonFlags.version.author != "" {
		opts = append(opts, core.Author(docmonFlags.version.author))
	}
	if len(docmonFlags.version.parents) > 0 {
		parents := make([]model.ParentRef, 0, len(docmonFlags.version.parents))
		for _, p := range docmonFlags.version.parents {
			ref, err := model.ParseParentRef(p)
			if err != nil {
				return nil, err
			}
			parents = append(parents, ref)
		}
		opts = append(opts, core.Parents(parents...))
	}
	return opts, nil
}

var versionCreateCmd = &cobra.Command{
	Use:   "create <document>",
	Short: "Create a new version of a document",
	Long: `Tag the current state of a live document as a new version.

The new version is an increment of the current version of the document (patch by default),
unless an explicit version is set. The latest version of the document is recorded as its parent.`,
	Example: `% docmon version create notes/plan.md --kind minor --description "Reviewed by the team"
0.1.0	#2	alice	Less than a second ago	Reviewed by the team
	parents: notes/plan.md@0.0.1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "version create", err)
		}(time.Now())

		opts, err := versionOptions()
		if err != nil {
			wrapFatalln("invalid version options", err)
			return
		}

		ctx := context.Background()
		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		doc, err := m.Load(ctx, documentArg(args))
		if err != nil {
			wrapFatalln("load document", err)
			return
		}
		entry, err := m.CreateVersion(ctx, doc, opts...)
		if err != nil {
			wrapFatalln("create version", err)
			return
		}

		if docmonFlags.json {
			if err = printJSON(entry); err != nil {
				wrapFatalln("print version", err)
			}
			return
		}
		printEntry(entry)
	},
}

func init() {
	addKindFlag(versionCreateCmd)
	addSetVersionFlag(versionCreateCmd)
	addDescriptionFlag(versionCreateCmd)
	addVersionAuthorFlag(versionCreateCmd)
	addParentFlag(versionCreateCmd)
	addJSONFlag(versionCreateCmd)
	versionCmd.AddCommand(versionCreateCmd)
}
