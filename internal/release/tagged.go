package release

import (
	"fmt"
	"strings"
)

// TagPlaceholder marks where a release embeds its version in an asset name.
// It is the only insertion convention supported: names that embed the
// version in any other way must be given verbatim.
const TagPlaceholder = "{tag}"

// TaggedName replaces every TagPlaceholder in untagged with the tag's
// version. "tool-{tag}-linux.tar.gz" with tag "v1.2.0" becomes
// "tool-1.2.0-linux.tar.gz". A leading "v" or "V" is dropped only when a
// digit follows it: tag "vnext" is inserted as "vnext". A name without
// placeholder is returned as is.
func TaggedName(tag Tag, untagged string) string {
	return strings.ReplaceAll(untagged, TagPlaceholder, tag.Version())
}

// Untag is the inverse of TaggedName: each occurrence of the tag's version
// in name becomes TagPlaceholder.
func Untag(tag Tag, name string) string {
	version := tag.Version()
	if version == "" {
		return name
	}
	return strings.ReplaceAll(name, version, TagPlaceholder)
}

// FindTagged resolves untagged against the release's tag and returns the
// single asset with exactly that name. No match and several matches are
// both reported as ErrAssetNotFound.
func FindTagged(r *Release, untagged string) (Asset, error) {
	name := TaggedName(r.Tag, untagged)

	var found []Asset
	for _, a := range r.Assets {
		if a.Name == name {
			found = append(found, a)
		}
	}
	if len(found) != 1 {
		return Asset{}, fmt.Errorf("no asset found for %s: %w", untagged, ErrAssetNotFound)
	}
	return found[0], nil
}
