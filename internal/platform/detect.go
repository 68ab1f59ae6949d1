package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running host.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns the host platform. OS and architecture come from the Go
// runtime; Linux distribution details come from gopsutil.
//
// A failed distribution lookup is not an error: the returned Info simply has
// empty distro fields. A cancelled context is.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := New(runtime.GOOS, runtime.GOARCH)

	if runtime.GOOS != "linux" {
		return info, nil
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	platform = normalizePlatform(platform)
	if platform != "" {
		info.Platform = platform
		info.Family = mapFamily(family)
		info.Version = normalizePlatform(version)
	}

	return info, nil
}

// StaticDetector always returns the same Info. It is used when the caller
// overrides OS or architecture explicitly.
type StaticDetector struct {
	Info *Info
}

// Detect returns the configured Info.
func (d StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if d.Info == nil {
		return nil, fmt.Errorf("no platform configured")
	}
	return d.Info, nil
}
