package responder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/drblury/bloglist/jsonutil"
)

// ErrEmptyBody is reported when a request that needs a JSON document has none.
var ErrEmptyBody = errors.New("request body is required")

// ReadRequestBody parses the request body into the provided value and handles
// malformed content by returning a JSON error response.
func (r *Responder) ReadRequestBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := r.decodeRequestBody(w, req, v); err != nil {
		r.HandleBadRequestError(w, req, err, "failed to parse request body")
		return false
	}
	return true
}

func (r *Responder) decodeRequestBody(w http.ResponseWriter, req *http.Request, v any) error {
	if req == nil || req.Body == nil || req.Body == http.NoBody {
		return ErrEmptyBody
	}

	body := req.Body
	if w != nil && r.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, req.Body, r.maxBodyBytes)
	}

	if err := jsonutil.Decode(body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

func requestInstance(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.RequestURI()
}

func requestContext(req *http.Request) context.Context {
	if req == nil {
		return context.Background()
	}
	return req.Context()
}
