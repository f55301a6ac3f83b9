// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/oneconcern/docmon/pkg/codec"
	"github.com/oneconcern/docmon/pkg/core"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/spf13/cobra"
)

func printDocumentInfo(ctx context.Context, m *core.Manager, doc *model.Document) error {
	versions, err := m.ListVersions(ctx, doc.Identity)
	if err != nil {
		return err
	}
	branches, err := m.ListBranches(ctx, doc.Identity)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}

	outln(color.New(color.Bold).Sprint(doc.Identity))
	outf("  title:    %s\n", doc.Title())
	outf("  version:  %s\n", color.GreenString(doc.Version()))
	outf("  author:   %s\n", doc.Author())
	outf("  tags:     %s\n", strings.Join(doc.Tags(), ", "))
	outf("  size:     %s\n", humanSize(doc.Content))
	outf("  versions: %d\n", len(versions))
	outf("  branches: %s\n", strings.Join(names, ", "))
	return nil
}

func printDocument(doc *model.Document) error {
	if docmonFlags.json {
		return printJSON(viewDocument(doc))
	}
	text, err := codec.RenderDocument(doc)
	if err != nil {
		return err
	}
	outf("%s", text)
	return nil
}

var documentShowCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Show a live document",
	Long:  `Print a live document, or a summary of it with --info.`,
	Example: `% docmon doc show notes/plan.md --info
notes/plan.md
  title:    The plan
  version:  0.1.0
  author:   alice
  tags:     draft
  size:     1.2kB
  versions: 3
  branches: draft`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "doc show", err)
		}(time.Now())

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

		if docmonFlags.doc.info {
			err = printDocumentInfo(ctx, m, doc)
		} else {
			err = printDocument(doc)
		}
		if err != nil {
			wrapFatalln("print document", err)
			return
		}
	},
}

func init() {
	addJSONFlag(documentShowCmd)
	addInfoFlag(documentShowCmd)
	documentCmd.AddCommand(documentShowCmd)
}
