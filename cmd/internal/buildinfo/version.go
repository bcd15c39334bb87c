// Package buildinfo holds the one version string shared by all three
// chippy8 binaries, following the teacher's currentReleaseVersion
// constant but factored out so it isn't duplicated per command.
package buildinfo

// Version is the currently released chippy8 toolchain version.
const Version = "v0.1.0"
