// Package platform describes the host a release asset is resolved for.
//
// It detects OS, architecture, and Linux distribution details, and knows the
// spellings release authors use for each OS and architecture in asset names
// ("darwin" vs "macos", "amd64" vs "x86_64"). The same information is exposed
// to Lua selector scripts as a read-only table.
package platform

import "context"

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info describes a system an asset is selected for.
type Info struct {
	OS       string // "linux", "darwin", "windows" (normalized)
	Arch     string // "amd64", "arm64", "386", "arm" (normalized)
	ArchRaw  string // value as given, e.g. "x86_64"
	Platform string // distro ID (Linux only, e.g. "ubuntu")
	Family   string // canonical family (e.g. "debian")
	Version  string // distro version (Linux only, e.g. "22.04")
}

// New builds an Info from explicit OS and architecture values, normalizing
// known aliases. No distribution details are filled in.
func New(goos, arch string) *Info {
	return &Info{
		OS:      NormalizeOS(goos),
		Arch:    NormalizeArch(arch),
		ArchRaw: arch,
	}
}

// String returns "os/arch".
func (i *Info) String() string {
	return i.OS + "/" + i.Arch
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsDebianFamily returns true if the Linux distribution is Debian-based,
// i.e. .deb assets can be handed to dpkg.
func (i *Info) IsDebianFamily() bool {
	return i.IsLinux() && i.Family == FamilyDebian
}

// OSAliases returns every spelling of the info's OS accepted in asset names.
func (i *Info) OSAliases() []string {
	return osAliases(i.OS)
}

// ArchAliases returns every spelling of the info's architecture accepted in
// asset names.
func (i *Info) ArchAliases() []string {
	return archAliases(i.Arch)
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
