// Copyright © 2018 One Concern

package core

import (
	"time"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
	"go.uber.org/zap"
)

// Option is a functor to build a manager with some options
type Option func(*Manager)

// Logger injects a logging facility into core operations
func Logger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.l = l
		}
	}
}

// LinearAncestry resolves common ancestors by comparing version numbers only,
// ignoring the parent links recorded with versions.
//
// This is only correct for linear histories.
func LinearAncestry() Option {
	return func(m *Manager) {
		m.linear = true
	}
}

// Clock sets the time source for timestamps and updated_at fields
func Clock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// DefaultAuthor is recorded on versions when neither the caller nor the document specify an author
func DefaultAuthor(author string) Option {
	return func(m *Manager) {
		m.author = author
	}
}

// WithMetrics toggles metrics on core operations
func WithMetrics(enabled bool) Option {
	return func(m *Manager) {
		m.EnableMetrics(enabled)
	}
}

// VersionOption tunes the creation of a version
type VersionOption func(*versionSettings)

type versionSettings struct {
	version     string
	kind        semver.Kind
	author      string
	description string
	parents     []model.ParentRef
}

// Version sets an explicit version, instead of incrementing the current one
func Version(version string) VersionOption {
	return func(s *versionSettings) {
		s.version = version
	}
}

// Bump sets the kind of increment applied to the current version: major, minor or patch (the default)
func Bump(kind semver.Kind) VersionOption {
	return func(s *versionSettings) {
		s.kind = kind
	}
}

// Author of the version
func Author(author string) VersionOption {
	return func(s *versionSettings) {
		s.author = author
	}
}

// Description of the version
func Description(description string) VersionOption {
	return func(s *versionSettings) {
		s.description = description
	}
}

// Parents records additional parents for the version, e.g. the branch head of a merge
func Parents(parents ...model.ParentRef) VersionOption {
	return func(s *versionSettings) {
		s.parents = append(s.parents, parents...)
	}
}
