// Package release models GitHub releases and resolves which of a release's
// assets to fetch, either by matching the host platform or by rebuilding the
// exact tagged name from a user-supplied untagged one.
package release

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAssetNotFound reports that no asset of a release satisfied a lookup.
var ErrAssetNotFound = errors.New("asset not found")

// Asset is a single downloadable file attached to a release. Name is unique
// within its release.
type Asset struct {
	Name        string
	DownloadURL string
	ID          int64
	// Size is the size declared by the release API. It is only used for
	// progress reporting and may be zero.
	Size int64
}

// Tag is the version identifier of a release, e.g. "v1.2.0".
type Tag struct {
	Value string
}

// Version returns the tag without a leading "v" when one is followed by a
// digit ("v1.2.0" -> "1.2.0"). Other tags are returned as is.
func (t Tag) Version() string {
	if len(t.Value) > 1 && (t.Value[0] == 'v' || t.Value[0] == 'V') && t.Value[1] >= '0' && t.Value[1] <= '9' {
		return t.Value[1:]
	}
	return t.Value
}

// String returns the raw tag value.
func (t Tag) String() string {
	return t.Value
}

// Release is a tagged publication and its assets, in the order the source
// listed them.
type Release struct {
	Tag    Tag
	Assets []Asset
}

// AssetNames returns the names of the release's assets in order.
func (r *Release) AssetNames() []string {
	names := make([]string, len(r.Assets))
	for i, a := range r.Assets {
		names[i] = a.Name
	}
	return names
}

// FindByName returns the asset with the given exact name.
func (r *Release) FindByName(name string) (Asset, error) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("no asset named %s: %w", name, ErrAssetNotFound)
}

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Repo  string
}

// ParseRepository parses "owner/repo".
func ParseRepository(s string) (Repository, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return Repository{}, fmt.Errorf("invalid repository %q: expected owner/repo", s)
	}
	return Repository{Owner: owner, Repo: repo}, nil
}

// String returns "owner/repo".
func (r Repository) String() string {
	return r.Owner + "/" + r.Repo
}
