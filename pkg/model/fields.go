// Copyright © 2018 One Concern

package model

// Well-known metadata fields
const (
	FieldTitle          = "title"
	FieldAuthor         = "author"
	FieldTags           = "tags"
	FieldUUID           = "uuid"
	FieldCreatedAt      = "created_at"
	FieldUpdatedAt      = "updated_at"
	FieldVersion        = "version"
	FieldLatestVersion  = "latest_version"
	FieldVersionHistory = "version_history"
)

// DateFormat is the layout of the created_at and updated_at fields
const DateFormat = "2006-01-02"

// IsSystemField tells if a metadata field is managed by docmon.
//
// System fields are always overwritten by a merge result and never take part in conflict detection.
func IsSystemField(field string) bool {
	switch field {
	case FieldUpdatedAt, FieldVersion, FieldVersionHistory:
		return true
	default:
		return false
	}
}
