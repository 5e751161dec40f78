package mapthin

import (
	"bufio"
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Names of the side files that collect markers without a usable position.
const (
	MissingGeneticDistanceFile  = "missingGeneticDis.txt"
	MissingBasePairPositionFile = "missingBasePairPosition.txt"
)

// MissingFileName picks the side file for the distance mode.
func MissingFileName(basePair bool) string {
	if basePair {
		return MissingBasePairPositionFile
	}
	return MissingGeneticDistanceFile
}

// Create opens path for writing, truncating it. Paths beginning with gs://
// are written to Google Storage when the returned writer is closed.
func Create(path string, client *storage.Client) (io.WriteCloser, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	if !IsGoogleStoragePath(expanded) {
		f, err := os.OpenFile(expanded, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return newBufferedFile(f), nil
	}

	handle, err := googleStorageObject(expanded, client)
	if err != nil {
		return nil, err
	}

	return newBufferedFile(handle.NewWriter(context.Background())), nil
}

type bufferedFile struct {
	*bufio.Writer
	dst io.WriteCloser
}

func newBufferedFile(dst io.WriteCloser) *bufferedFile {
	return &bufferedFile{Writer: bufio.NewWriter(dst), dst: dst}
}

func (b *bufferedFile) Close() error {
	if err := b.Flush(); err != nil {
		b.dst.Close()
		return pfx.Err(err)
	}
	if err := b.dst.Close(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// LazyFile creates its file on the first write, so that nothing is left on
// disk when nothing is written.
type LazyFile struct {
	Path   string
	client *storage.Client
	w      io.WriteCloser
}

func NewLazyFile(path string, client *storage.Client) *LazyFile {
	return &LazyFile{Path: path, client: client}
}

// Created reports whether anything has been written.
func (l *LazyFile) Created() bool {
	return l.w != nil
}

func (l *LazyFile) Write(p []byte) (int, error) {
	if l.w == nil {
		w, err := Create(l.Path, l.client)
		if err != nil {
			return 0, err
		}
		l.w = w
	}

	return l.w.Write(p)
}

func (l *LazyFile) Close() error {
	if l.w == nil {
		return nil
	}
	return l.w.Close()
}
