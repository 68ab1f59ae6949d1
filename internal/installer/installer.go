package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultPackageManager is the program debian packages are installed with.
const DefaultPackageManager = "dpkg"

// copyBufferSize bounds memory use of every streaming copy.
const copyBufferSize = 32 * 1024

// Executable is the desired file name of the installed executable,
// independent of how the asset names it internally.
type Executable struct {
	Name string
}

// Installer installs classified files into a destination directory.
type Installer struct {
	logger         *zap.Logger
	packageManager string
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Installer) {
		i.logger = logger
	}
}

// WithPackageManager overrides the program used for debian packages.
func WithPackageManager(program string) Option {
	return func(i *Installer) {
		i.packageManager = program
	}
}

// New creates an Installer.
func New(opts ...Option) *Installer {
	i := &Installer{
		logger:         zap.NewNop(),
		packageManager: DefaultPackageManager,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// CheckDestination fails unless dir is an existing directory. Destinations
// are never created.
func CheckDestination(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Fatalf("%s is not a directory", dir)
	}
	return nil
}

// Install installs file into destination as exe and returns the path of the
// installed executable. Debian packages are installed system-wide by the
// package manager, so the returned path is empty for them.
func (i *Installer) Install(ctx context.Context, file ClassifiedFile, destination string, exe Executable) (string, error) {
	if file.Format != DebianPackage {
		if err := CheckDestination(destination); err != nil {
			return "", err
		}
		if exe.Name == "" {
			return "", Fatalf("executable name is required")
		}
	}

	i.logger.Debug("installing asset",
		zap.String("path", file.Path),
		zap.Stringer("format", file.Format),
		zap.String("destination", destination),
		zap.String("executable", exe.Name),
	)

	target := filepath.Join(destination, exe.Name)

	var err error
	switch file.Format {
	case Gzip, Xz, Bzip2:
		err = decompressTo(file, target)
	case TarGz, TarXz, TarBz2:
		err = extractFromTar(file, exe, target)
	case Zip:
		err = extractFromZip(file.Path, exe, target)
	case DebianPackage:
		return "", i.installDebian(ctx, file)
	case RawExecutable:
		err = copyExecutable(file.Path, target)
	default:
		return "", Fatalf("%s is not supported", filepath.Base(file.Path))
	}
	if err != nil {
		return "", err
	}
	return target, nil
}

// InstallArtifact classifies and installs the downloaded artifact, then
// releases it. The artifact is released whatever the outcome; a release
// failure is logged and never replaces the install result.
func (i *Installer) InstallArtifact(ctx context.Context, artifact *Artifact, declaredName, destination string, exe Executable) (string, error) {
	defer artifact.Release()

	file, err := Classify(artifact.Path(), declaredName)
	if err != nil {
		return "", err
	}
	if file.Format == Unsupported {
		return "", Fatalf("%s is not supported", declaredName)
	}
	return i.Install(ctx, file, destination, exe)
}

// writeExecutable streams src into target and marks target executable.
// target is removed again when anything fails.
func writeExecutable(src io.Reader, target string) (err error) {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return Fatal(fmt.Sprintf("Error creating %s", target), err)
	}
	defer func() {
		if err != nil {
			os.Remove(target)
		}
	}()

	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(out, src, buf); err != nil {
		out.Close()
		return Fatal(fmt.Sprintf("Error saving %s", target), err)
	}
	if err := out.Close(); err != nil {
		return Fatal(fmt.Sprintf("Error saving %s", target), err)
	}

	return setExecutable(target)
}
