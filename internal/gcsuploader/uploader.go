package gcsuploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"cloud.google.com/go/storage"
)

// uploadTimeout bounds a single object upload.
const uploadTimeout = 2 * time.Minute

// UploadFile uploads a local file to a GCS bucket under the given object name.
// It assumes Application Default Credentials are configured.
func UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("UploadFile: open file %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("UploadFile: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("UploadFile: copy file to GCS writer: %w", err)
	}

	// Close finalizes the upload.
	if err := w.Close(); err != nil {
		return fmt.Errorf("UploadFile: finalize upload: %w", err)
	}

	return nil
}

// PublishArtifacts uploads run output files to the bucket under a per-run
// prefix. Missing local files are skipped; the first upload error aborts.
func PublishArtifacts(ctx context.Context, bucketName, runID string, filePaths []string) error {
	for _, filePath := range filePaths {
		if _, err := os.Stat(filePath); err != nil {
			continue
		}
		objectName := path.Join("runs", runID, path.Base(filePath))
		if err := UploadFile(ctx, bucketName, objectName, filePath); err != nil {
			return fmt.Errorf("PublishArtifacts: %w", err)
		}
	}
	return nil
}
