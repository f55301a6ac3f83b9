// Copyright © 2018 One Concern

package cmd

import (
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/merge"
	"github.com/oneconcern/docmon/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	outln(string(b))
	return nil
}

// documentView is the JSON rendering of a document
type documentView struct {
	Identity model.Identity  `json:"identity"`
	Metadata *model.Metadata `json:"metadata"`
	Content  string          `json:"content"`
}

func viewDocument(doc *model.Document) documentView {
	return documentView{Identity: doc.Identity, Metadata: doc.Metadata, Content: doc.Content}
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return units.HumanDuration(time.Since(t)) + " ago"
}

func printEntry(entry model.VersionEntry) {
	outf("%s\t#%d\t%s\t%s\t%s\n",
		color.GreenString(entry.Version),
		entry.Sequence,
		entry.Author,
		color.HiBlackString(ago(entry.Timestamp)),
		entry.Description,
	)
	if len(entry.Parents) > 0 {
		parents := make([]string, 0, len(entry.Parents))
		for _, p := range entry.Parents {
			parents = append(parents, p.String())
		}
		outf("\tparents: %s\n", strings.Join(parents, ", "))
	}
}

func printComparison(identity model.Identity, comparison diff.Comparison) {
	outln(color.RedString("--- %s@%s", identity, comparison.From))
	outln(color.GreenString("+++ %s@%s", identity, comparison.To))
	for _, change := range comparison.Metadata {
		switch change.Kind {
		case diff.Added:
			outln(color.GreenString("+ %s: %s", change.Field, model.FormatValue(change.New)))
		case diff.Removed:
			outln(color.RedString("- %s: %s", change.Field, model.FormatValue(change.Old)))
		default:
			outln(color.YellowString("~ %s: %s -> %s", change.Field, model.FormatValue(change.Old), model.FormatValue(change.New)))
		}
	}
	for _, op := range comparison.Content {
		outln(color.CyanString("@@ -%d,%d +%d,%d @@", op.I1+1, op.I2-op.I1, op.J1+1, op.J2-op.J1))
		for _, line := range op.Source {
			outln(color.RedString("-%s", line))
		}
		for _, line := range op.Lines {
			outln(color.GreenString("+%s", line))
		}
	}
}

func printSummary(summary merge.Summary) {
	outf("session %s (%s): base %s, local %s, remote %s\n",
		summary.ID, summary.State, summary.BaseVersion, summary.LocalVersion, summary.RemoteVersion)
	if !summary.HasConflicts {
		outln(color.GreenString("no conflict"))
		return
	}
	for _, mc := range summary.MetadataConflicts {
		outf("%s %s: local %s, remote %s (base %s)\n",
			color.RedString("metadata conflict"),
			mc.Field,
			color.YellowString(model.FormatValue(mc.Local)),
			color.YellowString(model.FormatValue(mc.Remote)),
			model.FormatValue(mc.Base),
		)
	}
	for i, cc := range summary.ContentConflicts {
		outf("%s #%d on lines %d-%d\n", color.RedString("content conflict"), i, cc.Start+1, cc.End)
		outln(merge.MarkerLocal)
		if cc.Local != "" {
			outln(cc.Local)
		}
		outln(merge.MarkerSeparator)
		if cc.Remote != "" {
			outln(cc.Remote)
		}
		outln(merge.MarkerRemote)
	}
}

func humanSize(text string) string {
	return units.HumanSize(float64(len(text)))
}

func checkMark(ok bool) string {
	if ok {
		return color.GreenString("✓")
	}
	return color.RedString("✗")
}
