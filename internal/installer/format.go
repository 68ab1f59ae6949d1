package installer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Format is the archive or package kind of a downloaded file.
type Format int

const (
	Unsupported Format = iota
	Gzip
	Xz
	Bzip2
	TarGz
	TarXz
	TarBz2
	Zip
	DebianPackage
	RawExecutable
)

// String returns a short human-readable name of the format.
func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Xz:
		return "xz"
	case Bzip2:
		return "bzip2"
	case TarGz:
		return "tar.gz"
	case TarXz:
		return "tar.xz"
	case TarBz2:
		return "tar.bz2"
	case Zip:
		return "zip"
	case DebianPackage:
		return "deb"
	case RawExecutable:
		return "executable"
	default:
		return "unsupported"
	}
}

// extensions maps recognized suffixes to formats. Compound suffixes come
// first so ".tar.gz" wins over ".gz".
var extensions = []struct {
	suffix string
	format Format
}{
	{".tar.gz", TarGz},
	{".tar.xz", TarXz},
	{".tar.bz2", TarBz2},
	{".tgz", TarGz},
	{".txz", TarXz},
	{".tbz2", TarBz2},
	{".tbz", TarBz2},
	{".gz", Gzip},
	{".xz", Xz},
	{".bz2", Bzip2},
	{".deb", DebianPackage},
	{".zip", Zip},
}

var (
	elfMagic   = [][]byte{{0x7f, 'E', 'L', 'F'}}
	machOMagic = [][]byte{
		{0xfe, 0xed, 0xfa, 0xce}, // 32-bit
		{0xfe, 0xed, 0xfa, 0xcf}, // 64-bit
		{0xce, 0xfa, 0xed, 0xfe}, // 32-bit, little endian
		{0xcf, 0xfa, 0xed, 0xfe}, // 64-bit, little endian
		{0xca, 0xfe, 0xba, 0xbe}, // universal
	}
	peMagic    = [][]byte{{'M', 'Z'}}
)

// scriptMagic marks an interpreter script, runnable on every host.
var scriptMagic = []byte("#!")

// nativeMagic returns the signatures of executables the goos host runs
// natively. A Mach-O binary is not an executable on Linux.
func nativeMagic(goos string) [][]byte {
	switch goos {
	case "darwin", "ios":
		return machOMagic
	case "windows":
		return peMagic
	case "js", "wasip1", "plan9":
		return nil
	default:
		return elfMagic
	}
}

// hasExecutableMagic reports whether header starts with a script marker or
// a native executable signature of goos.
func hasExecutableMagic(header []byte, goos string) bool {
	if bytes.HasPrefix(header, scriptMagic) {
		return true
	}
	for _, magic := range nativeMagic(goos) {
		if bytes.HasPrefix(header, magic) {
			return true
		}
	}
	return false
}

// ClassifiedFile is a local file together with the format that decides how
// it is installed.
type ClassifiedFile struct {
	Path   string
	Format Format
}

// Classify determines the format of the file at path. The extension is
// taken from declaredName, the asset's published name, because the local
// file may live under a temporary name. Only files without a recognized
// extension are opened, to look for executable permission bits or magic.
func Classify(path, declaredName string) (ClassifiedFile, error) {
	lower := strings.ToLower(declaredName)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext.suffix) {
			return ClassifiedFile{Path: path, Format: ext.format}, nil
		}
	}

	executable, err := looksExecutable(path)
	if err != nil {
		return ClassifiedFile{}, err
	}
	if executable {
		return ClassifiedFile{Path: path, Format: RawExecutable}, nil
	}
	return ClassifiedFile{Path: path, Format: Unsupported}, nil
}

func looksExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, Fatal(fmt.Sprintf("Error reading %s", path), err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	if info.Mode().Perm()&0111 != 0 {
		return true, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, Fatal(fmt.Sprintf("Error opening %s", path), err)
	}
	defer f.Close()

	header := make([]byte, 4)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, Fatal(fmt.Sprintf("Error reading %s", path), err)
	}

	return hasExecutableMagic(header[:n], runtime.GOOS), nil
}
