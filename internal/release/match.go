package release

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/platform"
)

// supplementalSuffixes mark checksum, signature and metadata files that sit
// next to the real assets and must never be picked for installation.
var supplementalSuffixes = []string{
	".sha256", ".sha256sum", ".sha512", ".md5", ".asc", ".sig", ".minisig",
	".pem", ".sbom", ".intoto.jsonl",
}

// multiPartSpellings holds aliases such as "x86_64" that tokenize into more
// than one token.
var multiPartSpellings = func() map[string]bool {
	m := make(map[string]bool)
	for _, s := range platform.Spellings() {
		if strings.Contains(s, "_") {
			m[s] = true
		}
	}
	return m
}()

// MatchBySystem returns the first asset whose name carries both an OS and an
// architecture spelling compatible with info. Order of assets is the only
// tie-break.
func MatchBySystem(info *platform.Info, assets []Asset) (Asset, bool) {
	osAliases := info.OSAliases()
	archAliases := info.ArchAliases()

	for _, a := range assets {
		if isSupplemental(a.Name) {
			continue
		}
		terms := nameTerms(a.Name)
		if containsAny(terms, osAliases) && containsAny(terms, archAliases) {
			return a, true
		}
	}
	return Asset{}, false
}

// nameTerms lower-cases name, splits it on every non-alphanumeric run and
// rejoins adjacent tokens that form a known multi-part spelling, so
// "tool-x86_64" yields {tool, x86_64} rather than {tool, x86, 64}.
func nameTerms(name string) map[string]bool {
	tokens := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make(map[string]bool, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) {
			joined := tokens[i] + "_" + tokens[i+1]
			if multiPartSpellings[joined] {
				terms[joined] = true
				i++
				continue
			}
		}
		terms[tokens[i]] = true
	}
	return terms
}

func containsAny(terms map[string]bool, aliases []string) bool {
	for _, a := range aliases {
		if terms[a] {
			return true
		}
	}
	return false
}

func isSupplemental(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range supplementalSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// BugReportBaseURL is where users are asked to report selection misses.
const BugReportBaseURL = "https://github.com/ZebulonRouseFrantzich/relfetch/issues/new"

// NoMatchError reports that automatic selection found no asset for a system.
// It matches ErrAssetNotFound with errors.Is.
type NoMatchError struct {
	Repository  Repository
	Tag         Tag
	OS          string
	Arch        string
	ToolVersion string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf(
		"Cannot find asset that matches your system %s %s\nIf you think this is a bug, please report the issue: %s",
		e.OS, e.Arch, e.BugReportURL(),
	)
}

// Is reports whether target is ErrAssetNotFound.
func (e *NoMatchError) Is(target error) bool {
	return target == ErrAssetNotFound
}

// BugReportURL returns a prefilled issue URL carrying the system details.
func (e *NoMatchError) BugReportURL() string {
	body := fmt.Sprintf(
		"## relfetch version\n%s\n## Bug report\nRepository: %s\nRelease: %s\nOS: %s\nARCH: %s",
		e.ToolVersion, e.Repository, e.Tag.Value, e.OS, e.Arch,
	)
	q := url.Values{}
	q.Set("title", "Error: automatic download of asset")
	q.Set("body", body)
	return BugReportBaseURL + "?" + q.Encode()
}
