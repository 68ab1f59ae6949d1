package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/download"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/platform"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/testutil"
)

// fakeSource serves a fixed release from memory.
type fakeSource struct {
	rel      *release.Release
	content  map[string][]byte
	fetchErr error

	fetches   int
	downloads []string
	gotTag    *release.Tag
}

func (f *fakeSource) FetchRelease(ctx context.Context, repo release.Repository, tag *release.Tag) (*release.Release, error) {
	f.fetches++
	f.gotTag = tag
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.rel, nil
}

func (f *fakeSource) DownloadAsset(ctx context.Context, repo release.Repository, asset release.Asset) (download.Stream, io.Closer, error) {
	f.downloads = append(f.downloads, asset.Name)
	data, ok := f.content[asset.Name]
	if !ok {
		return download.Stream{}, nil, release.ErrAssetNotFound
	}
	body := io.NopCloser(bytes.NewReader(data))
	return download.Stream{Body: body, Name: asset.Name, Length: int64(len(data))}, body, nil
}

// newFakeSource builds a release tagged tag whose assets hold content.
func newFakeSource(tag string, content map[string]string, order ...string) *fakeSource {
	src := &fakeSource{
		rel:     &release.Release{Tag: release.Tag{Value: tag}},
		content: make(map[string][]byte),
	}
	for i, name := range order {
		src.rel.Assets = append(src.rel.Assets, release.Asset{Name: name, ID: int64(i + 1)})
		src.content[name] = []byte(content[name])
	}
	return src
}

func newTestApp(t *testing.T, source releaseSource, info *platform.Info, stdin string) (*app, *bytes.Buffer) {
	t.Helper()
	testutil.SetupTestEnv(t)

	var stdout bytes.Buffer
	a := &app{
		stdin:    strings.NewReader(stdin),
		stdout:   &stdout,
		stderr:   io.Discard,
		logger:   zap.NewNop(),
		detector: platform.StaticDetector{Info: info},
		newSource: func(string, *zap.Logger) (releaseSource, error) {
			return source, nil
		},
		progress: func() download.Progress { return download.NoProgress{} },
	}
	return a, &stdout
}

func runCLI(a *app, args ...string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}
