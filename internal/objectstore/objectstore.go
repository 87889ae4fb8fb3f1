package objectstore

import (
	"context"
	"io"
)

// FileStorer stores rendered reports under keys of the form
// <session id>/<file name>. Upload returns a location the user can follow.
type FileStorer interface {
	Upload(ctx context.Context, file io.Reader, key, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}
