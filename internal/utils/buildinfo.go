package utils

import (
	"runtime/debug"
)

const (
	unknownVersion       = "unknown"
	develVersion         = "(devel)"
	vcsRevisionSetting   = "vcs.revision"
	vcsModifiedSetting   = "vcs.modified"
	shortRevisionLength  = 12
	modifiedVersionLabel = "-dirty"
)

// GetApplicationVersion reports the module version stamped by the Go toolchain.
// Development builds fall back to the VCS revision recorded in the build settings.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}

	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case vcsRevisionSetting:
			revision = setting.Value
		case vcsModifiedSetting:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += modifiedVersionLabel
	}
	return revision
}
