package siq

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Compression is the zip method used to store a container member.
type Compression uint16

const (
	CompStore   Compression = Compression(zip.Store)
	CompDeflate Compression = Compression(zip.Deflate)
	CompZSTD    Compression = zstd.ZipMethodWinZip
)

func (c Compression) String() string {
	switch c {
	case CompStore:
		return "store"
	case CompDeflate:
		return "deflate"
	case CompZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint16(c))
	}
}

// Function variables for testing injection.
var (
	zipCreate = func(zw *zip.Writer, h *zip.FileHeader) (io.Writer, error) { return zw.CreateHeader(h) }
	zipClose  = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen   = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll   = io.ReadAll
)

// newZipReader opens an in-memory container. Zstandard members are readable
// under both method IDs in use.
func newZipReader(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	zr.RegisterDecompressor(zstd.ZipMethodPKWare, zstd.ZipDecompressor())
	return zr, nil
}

func newZipWriter(w io.Writer, cfg writeConfig) *zip.Writer {
	zw := zip.NewWriter(w)
	level := cfg.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	return zw
}

// readMember decompresses zf, rejecting members larger than limit whether
// the central directory admits it or not.
func readMember(zf *zip.File, limit uint64) ([]byte, error) {
	if zf.UncompressedSize64 > limit {
		return nil, fmt.Errorf("%w: member %q is %d bytes", ErrLimitExceeded, zf.Name, zf.UncompressedSize64)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := readAll(io.LimitReader(rc, overLimit(limit)))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > limit {
		return nil, fmt.Errorf("%w: member %q expanded beyond %d bytes", ErrLimitExceeded, zf.Name, limit)
	}
	return b, nil
}

func writeMember(zw *zip.Writer, name string, comp Compression, data []byte) error {
	w, err := zipCreate(zw, &zip.FileHeader{Name: name, Method: uint16(comp)})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// overLimit returns the read budget that detects input longer than limit.
func overLimit(limit uint64) int64 {
	if limit >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(limit) + 1
}
