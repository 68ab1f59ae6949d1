package platform

import (
	"context"
	"runtime"
	"testing"
)

func TestRealDetector_Detect(t *testing.T) {
	info, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}
	if info.Arch == "" {
		t.Error("Arch should not be empty")
	}

	// Family is always set alongside Platform, "unknown" at minimum
	if info.Platform != "" && info.Family == "" {
		t.Error("Family should be set when Platform is set")
	}

	if runtime.GOOS != "linux" && (info.Platform != "" || info.Family != "" || info.Version != "") {
		t.Errorf("distro fields should be empty on non-Linux, got %+v", info)
	}
}

func TestStaticDetector(t *testing.T) {
	want := New("macos", "aarch64")

	got, err := StaticDetector{Info: want}.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got != want {
		t.Errorf("Detect() = %+v, want %+v", got, want)
	}

	if _, err := (StaticDetector{}).Detect(context.Background()); err == nil {
		t.Error("expected error for empty StaticDetector")
	}
}

func TestInfo_BooleanMethods(t *testing.T) {
	tests := []struct {
		name       string
		info       *Info
		wantLinux  bool
		wantMacOS  bool
		wantWin    bool
		wantDebian bool
	}{
		{"linux debian", &Info{OS: "linux", Arch: "amd64", Family: FamilyDebian}, true, false, false, true},
		{"linux arch", &Info{OS: "linux", Arch: "arm64", Family: FamilyArch}, true, false, false, false},
		{"macos", &Info{OS: "darwin", Arch: "arm64"}, false, true, false, false},
		{"windows", &Info{OS: "windows", Arch: "amd64"}, false, false, true, false},
		{"debian family off linux", &Info{OS: "darwin", Family: FamilyDebian}, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.IsLinux(); got != tt.wantLinux {
				t.Errorf("IsLinux() = %v, want %v", got, tt.wantLinux)
			}
			if got := tt.info.IsMacOS(); got != tt.wantMacOS {
				t.Errorf("IsMacOS() = %v, want %v", got, tt.wantMacOS)
			}
			if got := tt.info.IsWindows(); got != tt.wantWin {
				t.Errorf("IsWindows() = %v, want %v", got, tt.wantWin)
			}
			if got := tt.info.IsDebianFamily(); got != tt.wantDebian {
				t.Errorf("IsDebianFamily() = %v, want %v", got, tt.wantDebian)
			}
		})
	}
}

func TestInfo_String(t *testing.T) {
	if got := New("linux", "x86_64").String(); got != "linux/amd64" {
		t.Errorf("String() = %q, want %q", got, "linux/amd64")
	}
}
