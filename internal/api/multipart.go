package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// FilesField is the form field every uploaded file is attached under.
const FilesField = "files"

// File is one part of a multipart upload.
type File struct {
	Name    string
	Content io.Reader
}

// PostFiles uploads files as multipart/form-data under FilesField.
func (c *Client) PostFiles(ctx context.Context, domain Domain, path string, files []File) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, f := range files {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("file-%d", i)
		}
		part, err := w.CreateFormFile(FilesField, name)
		if err != nil {
			return fmt.Errorf("api: create form file: %w", err)
		}
		if f.Content != nil {
			if _, err := io.Copy(part, f.Content); err != nil {
				return fmt.Errorf("api: copy %s: %w", name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("api: close multipart body: %w", err)
	}

	return c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        &buf,
		Domain:      domain,
		NoJSON:      true,
		ContentType: w.FormDataContentType(),
	}, nil)
}
