package tools

import (
	"fmt"
	"runtime"
)

// OS is a supported formatter release operating system.
type OS string

// Arch is a supported formatter release architecture.
type Arch string

const (
	OSLinux   OS = "linux"
	OSMacOS   OS = "macos"
	OSWindows OS = "windows"

	ArchX86_64  Arch = "x86_64"
	ArchAArch64 Arch = "aarch64"
)

const (
	binaryBaseName = "gdscript-formatter"
	assetPrefix    = binaryBaseName + "-"
	assetExtension = ".zip"
	versionFile    = "VERSION"
)

// Platform is the (OS, architecture) pair a release asset is built for.
type Platform struct {
	OS   OS
	Arch Arch
}

// Key names the platform in cache directories and asset names.
func (p Platform) Key() string {
	return string(p.OS) + "-" + string(p.Arch)
}

// BinaryName is the executable filename shipped inside the release archive.
func (p Platform) BinaryName() string {
	if p.OS == OSWindows {
		return binaryBaseName + ".exe"
	}
	return binaryBaseName
}

func (p Platform) isZero() bool {
	return p.OS == "" && p.Arch == ""
}

// LookupPlatform maps Go's GOOS/GOARCH onto the release matrix. Anything
// outside the matrix is ErrUnsupportedPlatform.
func LookupPlatform(goos, goarch string) (Platform, error) {
	var p Platform
	switch goos {
	case "linux":
		p.OS = OSLinux
	case "darwin":
		p.OS = OSMacOS
	case "windows":
		p.OS = OSWindows
	default:
		return Platform{}, fmt.Errorf("%w: os=%s arch=%s", ErrUnsupportedPlatform, goos, goarch)
	}

	switch goarch {
	case "amd64":
		p.Arch = ArchX86_64
	case "arm64":
		p.Arch = ArchAArch64
	default:
		return Platform{}, fmt.Errorf("%w: os=%s arch=%s", ErrUnsupportedPlatform, goos, goarch)
	}
	return p, nil
}

// CurrentPlatform looks up the platform this process runs on.
func CurrentPlatform() (Platform, error) {
	return LookupPlatform(runtime.GOOS, runtime.GOARCH)
}
