package platform

import (
	"strings"
)

// familyMap maps distribution names to their canonical family names.
// gopsutil reports some distributions under their own name as family.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
}

// osAliasTable lists the asset-name spellings of each normalized OS.
var osAliasTable = map[string][]string{
	"linux":   {"linux"},
	"darwin":  {"darwin", "macos", "macosx", "osx", "apple"},
	"windows": {"windows", "win", "win32", "win64"},
	"freebsd": {"freebsd"},
}

// archAliasTable lists the asset-name spellings of each normalized
// architecture. Multi-part spellings use "_" between parts.
var archAliasTable = map[string][]string{
	"amd64": {"amd64", "x86_64", "x64"},
	"arm64": {"arm64", "aarch64"},
	"386":   {"386", "i386", "i686", "x86"},
	"arm":   {"arm", "armv7", "armhf"},
}

// NormalizeOS maps an OS spelling to its canonical GOOS-style name.
// Unknown values are returned lower-cased.
func NormalizeOS(goos string) string {
	return canonical(goos, osAliasTable)
}

// NormalizeArch maps an architecture spelling to its canonical GOARCH-style
// name (e.g. "x86_64" -> "amd64"). Unknown values are returned lower-cased.
func NormalizeArch(arch string) string {
	return canonical(arch, archAliasTable)
}

func canonical(value string, table map[string][]string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if _, ok := table[v]; ok {
		return v
	}
	for name, aliases := range table {
		for _, alias := range aliases {
			if alias == v {
				return name
			}
		}
	}
	return v
}

func osAliases(goos string) []string {
	return aliasList(NormalizeOS(goos), osAliasTable)
}

func archAliases(arch string) []string {
	return aliasList(NormalizeArch(arch), archAliasTable)
}

// aliasList returns the table entry for value, or value itself when the
// table does not know it.
func aliasList(value string, table map[string][]string) []string {
	if value == "" {
		return nil
	}
	if aliases, ok := table[value]; ok {
		out := make([]string, len(aliases))
		copy(out, aliases)
		return out
	}
	return []string{value}
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}

// Spellings returns every OS and architecture alias known to the package.
func Spellings() []string {
	var out []string
	for _, table := range []map[string][]string{osAliasTable, archAliasTable} {
		for _, aliases := range table {
			out = append(out, aliases...)
		}
	}
	return out
}
