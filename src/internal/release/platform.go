package release

import (
	"runtime"
	"slices"

	"github.com/vvm/vvm/src/internal/constants"
)

// Platform keys use the "GOOS-GOARCH" form.
const (
	PlatformDarwinAMD64 = constants.OSDarwin + "-" + constants.ArchAMD64
	PlatformDarwinARM64 = constants.OSDarwin + "-" + constants.ArchARM64
	PlatformLinuxAMD64  = constants.OSLinux + "-" + constants.ArchAMD64
	PlatformLinuxARM64  = constants.OSLinux + "-" + constants.ArchARM64
)

// CurrentPlatform returns the key for the OS and architecture vvm is
// running on.
func CurrentPlatform() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// ValidPlatforms lists the keys prebuilt archives are published for.
func ValidPlatforms() []string {
	return []string{
		PlatformLinuxAMD64,
		PlatformLinuxARM64,
		PlatformDarwinAMD64,
		PlatformDarwinARM64,
	}
}

// IsValidPlatform reports whether archives are published for platform.
func IsValidPlatform(platform string) bool {
	return slices.Contains(ValidPlatforms(), platform)
}
