package mapthin

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Source is a map file that can be read from the start as many times as
// needed. Each evaluation of a density is a fresh pass over the Source.
type Source struct {
	Path   string
	Layout Layout

	client *storage.Client
}

// NewSource describes the map at path. Paths beginning with gs:// are read
// from Google Storage through client, which may otherwise be nil.
func NewSource(path string, client *storage.Client) (*Source, error) {
	if IsGoogleStoragePath(path) && client == nil {
		return nil, fmt.Errorf("%s: a storage client is required for gs:// paths", path)
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	return &Source{
		Path:   expanded,
		Layout: DetectLayout(expanded),
		client: client,
	}, nil
}

// Open starts a new pass over the source, decompressing as needed.
func (s *Source) Open() (io.ReadCloser, error) {
	raw, err := s.openRaw()
	if err != nil {
		return nil, err
	}

	return MaybeDecompress(raw)
}

func (s *Source) openRaw() (io.ReadCloser, error) {
	if !IsGoogleStoragePath(s.Path) {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return f, nil
	}

	handle, err := googleStorageObject(s.Path, s.client)
	if err != nil {
		return nil, err
	}

	r, err := handle.NewReader(context.Background())
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", s.Path, err))
	}

	return r, nil
}

func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// googleStorageObject resolves gs://bucket/path/to/object to a handle.
func googleStorageObject(path string, client *storage.Client) (*storage.ObjectHandle, error) {
	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return nil, fmt.Errorf("Tried to split your google storage path into bucket and object, but got %d parts: %v", len(pathParts), pathParts)
	}
	bucketName := pathParts[0]
	pathName := pathParts[1]

	return client.Bucket(bucketName).Object(pathName), nil
}
