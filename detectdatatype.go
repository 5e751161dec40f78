package mapthin

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"io"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
	DataTypeZstd
)

func (d DataType) String() string {
	switch d {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZlib:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	case DataTypeZstd:
		return "zstd"
	}
	return "invalid"
}

// Checked in order; the zlib signatures share no prefix with the others.
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// DetectDataType identifies the compression of a stream from its leading bytes.
// Byte code signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
	for _, v := range byteCodeSigs {
		if bytes.HasPrefix(head, v.sig) {
			return v.dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress peeks at the start of rc and, if it carries a known
// compression signature, wraps it in the matching decompressor. Closing the
// result closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	head, err := br.Peek(6)
	if err != nil && !errors.Is(err, io.EOF) {
		rc.Close()
		return nil, pfx.Err(err)
	}

	var r io.Reader
	switch dt := DetectDataType(head); dt {
	case DataTypeGzip:
		r, err = gzip.NewReader(br)
	case DataTypeZip:
		// Only the first entry of an archive is read
		zr := zipstream.NewReader(br)
		if _, err = zr.Next(); err == nil {
			r = zr
		}
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		r, err = xz.NewReader(br, 0)
	case DataTypeZlib:
		r, err = zlib.NewReader(br)
	case DataTypeZstd:
		var zr *zstd.Decoder
		if zr, err = zstd.NewReader(br); err == nil {
			r = zstdReader{zr}
		}
	default:
		r = br
	}
	if err != nil {
		rc.Close()
		return nil, pfx.Err(err)
	}

	return &readCloser{Reader: r, close: rc.Close}, nil
}

// readCloser pairs a decompressing reader with the Close of the stream
// underneath it.
type readCloser struct {
	io.Reader
	close func() error
}

func (c *readCloser) Close() error {
	if rc, ok := c.Reader.(io.Closer); ok {
		rc.Close()
	}
	return c.close()
}

// zstdReader releases the decoder's goroutines on Close.
type zstdReader struct {
	*zstd.Decoder
}

func (z zstdReader) Close() error {
	z.Decoder.Close()
	return nil
}
