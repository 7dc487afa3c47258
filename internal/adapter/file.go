package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/models"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

const tempPrefix = ".history-sync-"

type fileTransport struct {
	fs     billy.Filesystem
	logger *logger.Logger
}

// NewFileTransport constructs a [Transport] that stores snapshots as files of
// filesystem. URLs have the form file:///dir/name; the path is resolved
// against the root of filesystem.
//
// Outcomes are reported with HTTP status codes so the orchestrator treats both
// transports alike: a missing file is 404, a permission error is 403, a file
// that changed since the caller fetched it is 412, a completed write is 200.
func NewFileTransport(filesystem billy.Filesystem, log *logger.Logger) Transport {
	return &fileTransport{fs: filesystem, logger: log}
}

// NewOSFileTransport is [NewFileTransport] over the host filesystem.
func NewOSFileTransport(log *logger.Logger) Transport {
	return NewFileTransport(osfs.New("/"), log)
}

// Fetch implements [Transport].
func (f *fileTransport) Fetch(_ context.Context, target string, progress ProgressFunc) (Response, error) {
	p, err := filePath(target)
	if err != nil {
		return Response{}, err
	}

	file, err := f.fs.Open(p)
	if err != nil {
		if status, ok := statusFromFSError(err); ok {
			return Response{StatusCode: status}, nil
		}
		return Response{}, fmt.Errorf("%w: open %s: %w", ErrTransport, p, err)
	}
	defer file.Close()

	total := int64(-1)
	if info, statErr := f.fs.Stat(p); statErr == nil {
		total = info.Size()
	}

	body, err := io.ReadAll(newProgressReader(file, total, progress))
	if err != nil {
		return Response{}, fmt.Errorf("%w: read %s: %w", ErrTransport, p, err)
	}

	f.logger.Debug().
		Str("func", "fileTransport.Fetch").
		Str("path", p).
		Int("bytes", len(body)).
		Msg("fetched remote history")

	return Response{StatusCode: http.StatusOK, Body: body}, nil
}

// Push implements [Transport]. The snapshot is written to a temporary file in
// the target directory and renamed over the target, so readers never observe
// a partial snapshot.
//
// The base check and the rename are not atomic; two writers racing inside
// that window still overwrite each other.
func (f *fileTransport) Push(_ context.Context, target string, body []byte, base string, progress ProgressFunc) (Response, error) {
	p, err := filePath(target)
	if err != nil {
		return Response{}, err
	}

	current, err := f.storedETag(p)
	if err != nil {
		return f.pushFailure(p, "read current snapshot", err)
	}
	if current != base {
		f.logger.Warn().
			Str("func", "fileTransport.Push").
			Str("path", p).
			Str("base", base).
			Str("current", current).
			Msg("snapshot changed since fetch, refusing to overwrite")
		return Response{StatusCode: http.StatusPreconditionFailed}, nil
	}

	dir := path.Dir(p)
	if err = f.fs.MkdirAll(dir, 0o755); err != nil {
		return f.pushFailure(p, "mkdir", err)
	}

	tmp, err := f.fs.TempFile(dir, tempPrefix)
	if err != nil {
		return f.pushFailure(p, "create temp file", err)
	}
	tmpName := tmp.Name()

	_, err = io.Copy(tmp, newProgressReader(bytes.NewReader(body), int64(len(body)), progress))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = f.fs.Remove(tmpName)
		return f.pushFailure(p, "write temp file", err)
	}

	if err = f.fs.Rename(tmpName, p); err != nil {
		_ = f.fs.Remove(tmpName)
		return f.pushFailure(p, "rename", err)
	}

	f.logger.Debug().
		Str("func", "fileTransport.Push").
		Str("path", p).
		Int("bytes", len(body)).
		Msg("pushed history")

	return Response{StatusCode: http.StatusOK}, nil
}

// storedETag returns the etag of the snapshot at p, "" when there is none.
func (f *fileTransport) storedETag(p string) (string, error) {
	current, err := util.ReadFile(f.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return models.BlobETag(current), nil
}

func (f *fileTransport) pushFailure(p, op string, err error) (Response, error) {
	if status, ok := statusFromFSError(err); ok && status == http.StatusForbidden {
		return Response{StatusCode: status}, nil
	}
	return Response{}, fmt.Errorf("%w: %s %s: %w", ErrTransport, op, p, err)
}

func statusFromFSError(err error) (int, bool) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, true
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden, true
	}
	return 0, false
}

func filePath(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: parse %q: %w", ErrTransport, target, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, target)
	}
	if u.Path == "" || u.Path == "/" {
		return "", fmt.Errorf("%w: empty file path in %q", ErrTransport, target)
	}
	return path.Clean(u.Path), nil
}
