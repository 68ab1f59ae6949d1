package installer

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// decoder wraps a compressed stream in its decompressing reader.
type decoder func(io.Reader) (io.ReadCloser, error)

func gzipDecoder(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func xzDecoder(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

func bzip2Decoder(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}

// decoderFor returns the decoder of a single-stream or compressed-tar format.
func decoderFor(format Format) decoder {
	switch format {
	case Gzip, TarGz:
		return gzipDecoder
	case Xz, TarXz:
		return xzDecoder
	case Bzip2, TarBz2:
		return bzip2Decoder
	default:
		return nil
	}
}

// openDecoded opens path and wraps it with the decoder of format. The
// returned close function releases both readers.
func openDecoded(path string, format Format) (io.Reader, func(), error) {
	decode := decoderFor(format)
	if decode == nil {
		return nil, nil, Fatalf("%s is not a compressed format", format)
	}

	compressed, err := os.Open(path)
	if err != nil {
		return nil, nil, Fatal(fmt.Sprintf("Error opening %s", path), err)
	}

	stream, err := decode(compressed)
	if err != nil {
		compressed.Close()
		return nil, nil, Fatal(fmt.Sprintf("Error decompressing %s", path), err)
	}

	return stream, func() {
		stream.Close()
		compressed.Close()
	}, nil
}

// decompressTo writes the decompressed content of a single-stream file to
// target. These formats hold exactly one file, so there is nothing to
// search for.
func decompressTo(file ClassifiedFile, target string) error {
	stream, closeStream, err := openDecoded(file.Path, file.Format)
	if err != nil {
		return err
	}
	defer closeStream()

	return writeExecutable(stream, target)
}
