// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"strings"
)

const (
	snapshotsPrefix = "snapshots/"
	headsPrefix     = "heads/"
	branchesPrefix  = "branches/"
	descriptorExt   = ".yaml"
)

// ArchivePathComponents defines the parts of a path in the metadata store
type ArchivePathComponents struct {
	Identity        Identity
	Version         string
	BranchName      string
	ArchiveFileName string
	IsHead          bool
}

// GetArchivePathToSnapshot yields the path to the snapshot of version of a document
func GetArchivePathToSnapshot(identity Identity, version string) string {
	return fmt.Sprint(snapshotsPrefix, identity, "/", version, descriptorExt)
}

// GetArchivePathPrefixToSnapshots yields the path prefix to all snapshots of a document
func GetArchivePathPrefixToSnapshots(identity Identity) string {
	return fmt.Sprint(snapshotsPrefix, identity, "/")
}

// GetArchivePathToHead yields the path to the head marker of a document
func GetArchivePathToHead(identity Identity) string {
	return fmt.Sprint(headsPrefix, identity, descriptorExt)
}

// GetArchivePathToBranch yields the path to a branch descriptor
func GetArchivePathToBranch(source Identity, name string) string {
	return fmt.Sprint(branchesPrefix, source, "/", name, descriptorExt)
}

// GetArchivePathPrefixToBranches yields the path prefix to all branch descriptors of a document
func GetArchivePathPrefixToBranches(source Identity) string {
	return fmt.Sprint(branchesPrefix, source, "/")
}

// GetArchivePathComponents yields all components from a parsed archive path.
//
// Identities may contain slashes, so the last path element is parsed first.
func GetArchivePathComponents(archivePath string) (ArchivePathComponents, error) {
	if !strings.HasSuffix(archivePath, descriptorExt) {
		return ArchivePathComponents{}, fmt.Errorf("path is invalid: expected a %s file: %s", descriptorExt, archivePath)
	}

	switch {
	case strings.HasPrefix(archivePath, snapshotsPrefix), strings.HasPrefix(archivePath, branchesPrefix):
		isSnapshot := strings.HasPrefix(archivePath, snapshotsPrefix)
		rest := strings.TrimPrefix(strings.TrimPrefix(archivePath, snapshotsPrefix), branchesPrefix)
		pos := strings.LastIndex(rest, "/")
		if pos <= 0 || pos == len(rest)-1 {
			return ArchivePathComponents{}, fmt.Errorf("path is invalid: expected {identity}/{file}: %s", archivePath)
		}
		file := rest[pos+1:]
		leaf := strings.TrimSuffix(file, descriptorExt)
		if leaf == "" {
			return ArchivePathComponents{}, fmt.Errorf("path is invalid: empty file name: %s", archivePath)
		}
		c := ArchivePathComponents{
			Identity:        Identity(rest[:pos]),
			ArchiveFileName: file,
		}
		if isSnapshot {
			c.Version = leaf
		} else {
			c.BranchName = leaf
		}
		return c, nil

	case strings.HasPrefix(archivePath, headsPrefix):
		id := strings.TrimSuffix(strings.TrimPrefix(archivePath, headsPrefix), descriptorExt)
		if id == "" {
			return ArchivePathComponents{}, fmt.Errorf("path is invalid: empty identity: %s", archivePath)
		}
		return ArchivePathComponents{
			Identity:        Identity(id),
			ArchiveFileName: archivePath[strings.LastIndex(archivePath, "/")+1:],
			IsHead:          true,
		}, nil

	default:
		return ArchivePathComponents{}, fmt.Errorf("path is invalid: %s", archivePath)
	}
}
