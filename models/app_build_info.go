// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// NotAvailable marks build metadata that was not injected at link time.
const NotAvailable = "N/A"

// AppBuildInfo carries the linker-injected version, date and commit of a
// binary. Blank values are stored as [NotAvailable].
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// HasVersion reports whether a build version was injected.
func (a AppBuildInfo) HasVersion() bool {
	return known(a.buildVersion)
}

// Describe returns version followed by the short build commit, if known:
// "1.4.0 (abc1234)".
func (a AppBuildInfo) Describe(version string) string {
	if !known(a.buildCommit) {
		return version
	}
	commit := a.buildCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

func (a AppBuildInfo) String() string {
	return a.Describe(a.buildVersion)
}

func known(v string) bool {
	return v != "" && v != NotAvailable
}

func orNotAvailable(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}
