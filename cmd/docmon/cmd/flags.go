// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/docmon/pkg/snapshot"
	"github.com/spf13/cobra"
)

const (
	rootFlag     = "root"
	metaFlag     = "meta"
	backendFlag  = "backend"
	logLevelFlag = "loglevel"
	cacheFlag    = "cache"
	authorFlag   = "author"
	metricsFlag  = "metrics"

	backendLocalFS = "localfs"
	backendBadger  = "badger"

	defaultCacheSize = snapshot.DefaultCacheSize
)

type flagsT struct {
	doc struct {
		title       string
		tags        []string
		content     string
		contentFile string
		expected    string
		info        bool
	}
	version struct {
		kind        string
		version     string
		description string
		author      string
		parents     []string
		noBackup    bool
	}
	branch struct {
		baseVersion string
		backup      bool
	}
	merge struct {
		base   string
		output string
	}
	unified bool
	json    bool
	metrics metricsFlags
}

var docmonFlags = flagsT{}

func addRootFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().String(rootFlag, ".", "The workspace root, where documents live")
	return rootFlag
}

func addMetaFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().String(metaFlag, ".docmon", "The directory holding docmon metadata and snapshots. Relative paths are resolved against the workspace root")
	return metaFlag
}

func addBackendFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().String(backendFlag, backendLocalFS, "The snapshot storage backend: localfs or badger")
	return backendFlag
}

func addLogLevelFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().String(logLevelFlag, "info", "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return logLevelFlag
}

func addCacheFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().Int(cacheFlag, defaultCacheSize, "The number of snapshots kept in memory. 0 disables the cache")
	return cacheFlag
}

func addAuthorFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().String(authorFlag, "", "The default author recorded on new documents and versions")
	return authorFlag
}

func addMetricsFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().Bool(metricsFlag, false, "Toggle metrics collection. Metrics are logged at debug level")
	return metricsFlag
}

func addJSONFlag(cmd *cobra.Command) string {
	c := "json"
	cmd.Flags().BoolVar(&docmonFlags.json, c, false, "Print the output as JSON")
	return c
}

func addUnifiedFlag(cmd *cobra.Command) string {
	c := "unified"
	cmd.Flags().BoolVarP(&docmonFlags.unified, c, "u", false, "Print the content changes as a unified diff")
	return c
}

func addTitleFlag(cmd *cobra.Command) string {
	c := "title"
	cmd.Flags().StringVar(&docmonFlags.doc.title, c, "", "The title of the document (defaults to the file name)")
	return c
}

func addTagFlag(cmd *cobra.Command) string {
	c := "tag"
	cmd.Flags().StringSliceVar(&docmonFlags.doc.tags, c, nil, "A tag of the document. May be repeated")
	return c
}

func addContentFlag(cmd *cobra.Command) string {
	c := "content"
	cmd.Flags().StringVar(&docmonFlags.doc.content, c, "", "The text content of the document")
	return c
}

func addContentFileFlag(cmd *cobra.Command) string {
	c := "content-file"
	cmd.Flags().StringVar(&docmonFlags.doc.contentFile, c, "", "A file to read the text content of the document from")
	return c
}

func addExpectedVersionFlag(cmd *cobra.Command) string {
	c := "expected"
	cmd.Flags().StringVar(&docmonFlags.doc.expected, c, "", "The version the document is expected to be at (defaults to its current version)")
	return c
}

func addInfoFlag(cmd *cobra.Command) string {
	c := "info"
	cmd.Flags().BoolVar(&docmonFlags.doc.info, c, false, "Print a summary of the document instead of its text")
	return c
}

func addKindFlag(cmd *cobra.Command) string {
	c := "kind"
	cmd.Flags().StringVar(&docmonFlags.version.kind, c, "", "The version increment: patch, minor or major (defaults to patch)")
	return c
}

func addSetVersionFlag(cmd *cobra.Command) string {
	c := "set-version"
	cmd.Flags().StringVar(&docmonFlags.version.version, c, "", "An explicit version, instead of an increment")
	return c
}

func addDescriptionFlag(cmd *cobra.Command) string {
	c := "description"
	cmd.Flags().StringVar(&docmonFlags.version.description, c, "", "The description of the new version")
	return c
}

func addVersionAuthorFlag(cmd *cobra.Command) string {
	c := "by"
	cmd.Flags().StringVar(&docmonFlags.version.author, c, "", "The author of the new version (defaults to the author of the document)")
	return c
}

func addParentFlag(cmd *cobra.Command) string {
	c := "parent"
	cmd.Flags().StringSliceVar(&docmonFlags.version.parents, c, nil, "An extra parent of the new version, as identity@version. May be repeated")
	return c
}

func addNoBackupFlag(cmd *cobra.Command) string {
	c := "no-backup"
	cmd.Flags().BoolVar(&docmonFlags.version.noBackup, c, false, "Do not save the current state of the document as a new version before rolling back")
	return c
}

func addBaseVersionFlag(cmd *cobra.Command) string {
	c := "from-version"
	cmd.Flags().StringVar(&docmonFlags.branch.baseVersion, c, "", "The version of the source document to branch from (defaults to the latest one)")
	return c
}

func addBackupFlag(cmd *cobra.Command) string {
	c := "backup"
	cmd.Flags().BoolVar(&docmonFlags.branch.backup, c, false, "Save the current state of the target as a new version before merging")
	return c
}

func addMergeBaseFlag(cmd *cobra.Command) string {
	c := "base"
	cmd.Flags().StringVar(&docmonFlags.merge.base, c, "", "The version of the local document to use as common ancestor (defaults to the resolved common ancestor)")
	return c
}

func addOutputFlag(cmd *cobra.Command, usage string) string {
	c := "output"
	cmd.Flags().StringVar(&docmonFlags.merge.output, c, "", usage)
	return c
}
