// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"runtime/debug"
)

// Build information, set at link time with -ldflags "-X ..."
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// VersionInfo describes the build of the docmon binary
type VersionInfo struct {
	Version   string `json:"version,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	GitState  string `json:"gitState,omitempty"`
}

// NewVersionInfo yields the build information of this binary.
//
// Without link time information, the commit and working tree state recorded by the go toolchain are used.
func NewVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GitState:  GitState,
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.GitCommit != "" {
		return info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = setting.Value
			}
		case "vcs.modified":
			if info.GitState == "" && setting.Value == "true" {
				info.GitState = "dirty"
			} else if info.GitState == "" {
				info.GitState = "clean"
			}
		}
	}
	return info
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("Version: %s\nBuild date: %s\nCommit: %s\nWorking tree: %s\n",
		v.Version, v.BuildDate, v.GitCommit, v.GitState)
}
