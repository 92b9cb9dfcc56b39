package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const contentTypeJSON = "application/json"

// Request describes one backend call.
type Request struct {
	// Method is GET, PUT, POST or PATCH. Empty means GET.
	Method string
	// Path is appended to the domain's base URL. It may carry its own query.
	Path string
	// Body is JSON-encoded unless NoJSON is set. A nil body sends no payload.
	Body any
	// Query is appended to the URL as a standard query string.
	Query url.Values
	// Domain selects the backend. The zero value is DomainDFX.
	Domain Domain
	// WithoutJWT marks endpoints that may be called anonymously.
	WithoutJWT bool
	// NoJSON sends Body verbatim (io.Reader, []byte or string) and omits
	// the JSON content type.
	NoJSON bool
	// ContentType is sent with NoJSON bodies, e.g. a multipart boundary.
	ContentType string
}

func (r Request) method() (string, error) {
	m := strings.ToUpper(strings.TrimSpace(r.Method))
	switch m {
	case "":
		return http.MethodGet, nil
	case http.MethodGet, http.MethodPut, http.MethodPost, http.MethodPatch:
		return m, nil
	default:
		return "", fmt.Errorf("api: unsupported method %q", r.Method)
	}
}

// target joins base, path and query. A path that already carries a query
// string is extended with '&'.
func (r Request) target(base string) string {
	u := base + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + r.Query.Encode()
}

// body returns the payload reader and the content type to send.
func (r Request) body() (io.Reader, string, error) {
	if r.NoJSON {
		switch b := r.Body.(type) {
		case nil:
			return nil, r.ContentType, nil
		case io.Reader:
			return b, r.ContentType, nil
		case []byte:
			return bytes.NewReader(b), r.ContentType, nil
		case string:
			return strings.NewReader(b), r.ContentType, nil
		default:
			return nil, "", fmt.Errorf("api: raw body must be io.Reader, []byte or string, got %T", r.Body)
		}
	}

	if r.Body == nil {
		return nil, contentTypeJSON, nil
	}
	payload, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("api: marshal request body: %w", err)
	}
	return bytes.NewReader(payload), contentTypeJSON, nil
}
