package ingest

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"prodanalytics/internal/services/nps/domain"
)

// OSOpener opens locations as local file paths
type OSOpener struct{}

var _ domain.Opener = OSOpener{}

// Open opens the file at location
func (OSOpener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(location)
}

// FSOpener opens locations inside an fs.FS
type FSOpener struct {
	FS fs.FS
}

var _ domain.Opener = FSOpener{}

// Open opens location relative to the FS root
func (o FSOpener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(path.Clean("/"+location), "/")
	return o.FS.Open(name)
}
