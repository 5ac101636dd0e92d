// Package constants defines common constants used across vvm
package constants

// Host platforms with published prebuilt archives
const (
	OSDarwin = "darwin"
	OSLinux  = "linux"

	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

// Affirmative answers accepted by confirmation prompts. Every other
// answer counts as a refusal.
const (
	ResponseYes = "yes"
	ResponseY   = "y"
)
