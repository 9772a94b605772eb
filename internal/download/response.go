package download

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/offer-composer/internal/document"
)

// Response streams an artifact as the body of an HTTP response. It is single-use: one
// Response per request.
type Response struct {
	W       http.ResponseWriter
	written bool
}

// NewResponse wraps w
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{W: w}
}

// DownloadFile writes the artifact as an attachment
func (r *Response) DownloadFile(ctx context.Context, filename string, content []byte, mimeType string) (document.DownloadResult, error) {
	if err := ctx.Err(); err != nil {
		return document.DownloadResult{}, err
	}
	if r.written {
		return document.DownloadResult{}, fmt.Errorf("response already carries an artifact")
	}
	name, err := cleanFilename(filename)
	if err != nil {
		return document.DownloadResult{}, err
	}

	r.W.Header().Set("Content-Type", mimeType)
	r.W.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	r.W.Header().Set("Content-Length", strconv.Itoa(len(content)))
	r.W.WriteHeader(http.StatusOK)
	r.written = true

	if _, err := r.W.Write(content); err != nil {
		return document.DownloadResult{}, fmt.Errorf("failed to write response body: %w", err)
	}
	return document.DownloadResult{Succeeded: true, Location: name}, nil
}

// Written reports whether an artifact was sent
func (r *Response) Written() bool {
	return r.written
}
