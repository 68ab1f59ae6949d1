// Package verify checks downloaded release assets against the checksum and
// signature files published alongside them.
//
// Two methods are supported:
//
//   - SHA256 checksums, from a per-asset file ("tool.tar.gz.sha256") or a
//     combined list ("checksums.txt", "SHA256SUMS") in sha256sum format
//   - OpenPGP detached signatures, armored or binary, against a keyring
//     supplied by the user
//
// Candidate files are found among the release's asset names with
// ChecksumCandidates and SignatureCandidates.
package verify
