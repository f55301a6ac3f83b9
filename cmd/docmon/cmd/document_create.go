// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"os"
	"time"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/spf13/cobra"
)

var documentCreateCmd = &cobra.Command{
	Use:   "create <document>",
	Short: "Create a new document",
	Long: `Create a new document in the workspace, with default metadata.

The title defaults to the file name. The document starts at version 0.0.0, until a version is created.`,
	Example: `% docmon doc create notes/plan.md --title "The plan" --tag draft --content-file plan.txt`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) {
			cliUsage(t0, "doc create", err)
		}(time.Now())

		content := docmonFlags.doc.content
		if docmonFlags.doc.contentFile != "" {
			var b []byte
			b, err = os.ReadFile(docmonFlags.doc.contentFile)
			if err != nil {
				wrapFatalln("read content file", err)
				return
			}
			content = string(b)
		}

		meta := model.NewMetadata()
		if docmonFlags.doc.title != "" {
			meta.Set(model.FieldTitle, docmonFlags.doc.title)
		}
		if len(docmonFlags.doc.tags) > 0 {
			meta.Set(model.FieldTags, docmonFlags.doc.tags)
		}

		m, done, err := openManager()
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer done()

		doc, err := m.Create(context.Background(), documentArg(args), meta, content)
		if err != nil {
			wrapFatalln("create document", err)
			return
		}
		outf("created %s (%s)\n", doc.Identity, doc.Title())
	},
}

func init() {
	addTitleFlag(documentCreateCmd)
	addTagFlag(documentCreateCmd)
	addContentFlag(documentCreateCmd)
	addContentFileFlag(documentCreateCmd)
	documentCmd.AddCommand(documentCreateCmd)
}
