package installer

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// archiveEntry is the part of a tar or zip entry needed to pick the
// executable.
type archiveEntry struct {
	name       string
	executable bool
}

// pickEntry chooses the entry to install: the regular file named like the
// executable (with or without ".exe"), else the sole regular file, else the
// sole file with an executable bit.
func pickEntry(entries []archiveEntry, exe Executable) (string, bool) {
	want := strings.ToLower(exe.Name)
	for _, e := range entries {
		base := strings.ToLower(path.Base(e.name))
		if base == want || base == want+".exe" {
			return e.name, true
		}
	}

	if len(entries) == 1 {
		return entries[0].name, true
	}

	var executables []archiveEntry
	for _, e := range entries {
		if e.executable {
			executables = append(executables, e)
		}
	}
	if len(executables) == 1 {
		return executables[0].name, true
	}

	return "", false
}

func entryNotFound(archivePath string, exe Executable, entries []archiveEntry) error {
	if len(entries) == 0 {
		return Fatalf("Cannot find executable %s in %s: archive has no files", exe.Name, archivePath)
	}
	return Fatalf("Cannot find executable %s in %s (%d candidate files)", exe.Name, archivePath, len(entries))
}

// extractFromTar installs one entry of a compressed tar archive. The
// archive is streamed twice, once to list entries and once to copy the
// chosen one, so it is never held in memory.
func extractFromTar(file ClassifiedFile, exe Executable, target string) error {
	entries, err := listTar(file)
	if err != nil {
		return err
	}

	name, ok := pickEntry(entries, exe)
	if !ok {
		return entryNotFound(file.Path, exe, entries)
	}

	stream, closeStream, err := openDecoded(file.Path, file.Format)
	if err != nil {
		return err
	}
	defer closeStream()

	tarReader := tar.NewReader(stream)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return entryNotFound(file.Path, exe, entries)
		}
		if err != nil {
			return Fatal(fmt.Sprintf("Error reading %s", file.Path), err)
		}
		if header.Typeflag == tar.TypeReg && header.Name == name {
			return writeExecutable(tarReader, target)
		}
	}
}

func listTar(file ClassifiedFile) ([]archiveEntry, error) {
	stream, closeStream, err := openDecoded(file.Path, file.Format)
	if err != nil {
		return nil, err
	}
	defer closeStream()

	var entries []archiveEntry
	tarReader := tar.NewReader(stream)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, Fatal(fmt.Sprintf("Error reading %s", file.Path), err)
		}

		// Directories, links and devices are never installed
		if header.Typeflag != tar.TypeReg {
			continue
		}
		entries = append(entries, archiveEntry{
			name:       header.Name,
			executable: header.FileInfo().Mode().Perm()&0111 != 0,
		})
	}
}

// extractFromZip installs one entry of a zip archive.
func extractFromZip(archivePath string, exe Executable, target string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return Fatal(fmt.Sprintf("Error opening %s", archivePath), err)
	}
	defer reader.Close()

	var entries []archiveEntry
	files := make(map[string]*zip.File)
	for _, f := range reader.File {
		if !f.Mode().IsRegular() {
			continue
		}
		entries = append(entries, archiveEntry{
			name:       f.Name,
			executable: f.Mode().Perm()&0111 != 0,
		})
		files[f.Name] = f
	}

	name, ok := pickEntry(entries, exe)
	if !ok {
		return entryNotFound(archivePath, exe, entries)
	}

	rc, err := files[name].Open()
	if err != nil {
		return Fatal(fmt.Sprintf("Error reading %s from %s", name, archivePath), err)
	}
	defer rc.Close()

	return writeExecutable(rc, target)
}
