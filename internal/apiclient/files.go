// internal/apiclient/files.go
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/inkstone-labs/qtstore/internal/models"
)

type FilesAPI struct {
	c *Client
}

// Upload sends a file as multipart form data; fileType classifies the upload
// ("general", "icon", "banner", ...).
func (f *FilesAPI) Upload(ctx context.Context, filename string, content io.Reader, fileType string) (*models.UploadResult, error) {
	if fileType == "" {
		fileType = "general"
	}
	return f.uploadMultipart(ctx, "/files/upload", filename, content, fileType)
}

// UploadImage is the image-specific upload used for avatars and screenshots.
func (f *FilesAPI) UploadImage(ctx context.Context, filename string, content io.Reader) (*models.UploadResult, error) {
	return f.uploadMultipart(ctx, "/files/upload/image", filename, content, "")
}

func (f *FilesAPI) uploadMultipart(ctx context.Context, path, filename string, content io.Reader, fileType string) (*models.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copying file content: %w", err)
	}
	if fileType != "" {
		if err := writer.WriteField("type", fileType); err != nil {
			return nil, fmt.Errorf("writing type field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	f.c.authorize(ctx, req)

	resp, err := f.c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	var result models.UploadResult
	if err := f.c.handleResponse(ctx, http.MethodPost, path, resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
