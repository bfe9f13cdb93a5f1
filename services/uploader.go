package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadResult is what the media boundary hands back on success.
type UploadResult struct {
	URL string
}

// Uploader is the recording upload boundary: a local media reference plus
// filename and mime metadata in, a served URL or an error out.
type Uploader interface {
	Upload(ctx context.Context, localPath, filename, mimeType string) (UploadResult, error)
}

// MockUploader simulates the future storage backend: after an artificial
// delay it mints a URL under its base, with a collision-free server-side
// name.
type MockUploader struct {
	BaseURL string
	Delay   time.Duration
}

func (u *MockUploader) Upload(ctx context.Context, localPath, filename, mimeType string) (UploadResult, error) {
	if filename == "" {
		return UploadResult{}, errors.New("upload requires a filename")
	}

	select {
	case <-ctx.Done():
		return UploadResult{}, ctx.Err()
	case <-time.After(u.Delay):
	}

	ext := path.Ext(filename)
	name := uuid.NewString() + ext

	return UploadResult{
		URL: fmt.Sprintf("%s/%s", strings.TrimRight(u.BaseURL, "/"), name),
	}, nil
}

// KindForMime maps an upload's mime type onto the recording kind.
func KindForMime(mimeType string) string {
	if strings.HasPrefix(mimeType, "audio/") {
		return "audio"
	}
	return "file"
}
