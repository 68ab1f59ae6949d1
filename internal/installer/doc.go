// Package installer turns a downloaded release asset into an executable on
// disk.
//
// # Pipeline
//
// A downloaded file is first classified by name (and, for bare executables,
// by its permission bits and magic bytes) into exactly one Format. Install
// then dispatches on that Format with a single switch:
//   - Gzip, Xz, Bzip2: the single compressed stream is decoded straight into
//     the destination file
//   - TarGz, TarXz, TarBz2, Zip: the archive is searched for the executable
//   - DebianPackage: the file is handed to dpkg
//   - RawExecutable: the file is copied as is
//   - Unsupported: fatal error
//
// Every strategy writes destination/<executable name> and marks it
// executable where the OS has permission bits. The downloaded artifact is
// held as an Artifact and removed exactly once after the attempt, whatever
// its outcome.
//
// # Errors
//
// All failures are returned as *InstallError. They are fatal: nothing here
// retries, and a partially written destination file is removed before the
// error is returned.
package installer
