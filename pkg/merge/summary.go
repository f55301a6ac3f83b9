// Copyright © 2018 One Concern

package merge

// Summary describes the state of a resolution session
type Summary struct {
	ID                string             `json:"id" yaml:"id"`
	State             string             `json:"state" yaml:"state"`
	BaseVersion       string             `json:"base_version" yaml:"base_version"`
	LocalVersion      string             `json:"local_version" yaml:"local_version"`
	RemoteVersion     string             `json:"remote_version" yaml:"remote_version"`
	MetadataConflicts []MetadataConflict `json:"metadata_conflicts" yaml:"metadata_conflicts"`
	ContentConflicts  []ContentConflict  `json:"content_conflicts" yaml:"content_conflicts"`
	HasConflicts      bool               `json:"has_conflicts" yaml:"has_conflicts"`
}

// Summary of the remaining conflicts
func (s *Session) Summary() Summary {
	set := s.Conflicts()
	return Summary{
		ID:                s.id,
		State:             s.State().String(),
		BaseVersion:       s.BaseVersion(),
		LocalVersion:      s.LocalVersion(),
		RemoteVersion:     s.RemoteVersion(),
		MetadataConflicts: set.Metadata,
		ContentConflicts:  set.Content,
		HasConflicts:      set.HasConflicts(),
	}
}
