// Copyright © 2018 One Concern

package model

import "time"

// HeadDescriptor records the latest version created for a document.
//
// The head is tracked separately from the live document, so that concurrent writers can be detected.
type HeadDescriptor struct {
	Identity Identity  `json:"identity" yaml:"identity"`
	Version  string    `json:"version" yaml:"version"`
	Updated  time.Time `json:"updated" yaml:"updated"`
	_        struct{}
}
