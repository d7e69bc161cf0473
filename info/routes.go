package info

import (
	"bytes"
	"errors"
	"net/http"
)

// GetStatus returns a simple health payload that can be used for lightweight diagnostics.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "HEALTHY")
}

// GetHealthz implements the liveness probe. The process is alive while it
// can answer; store trouble is reported by /readyz only.
func (ih *InfoHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "ok")
}

// GetReadyz implements the readiness probe; it fails while the store is unreachable.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.readinessChecks); err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "readiness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ready")
}

// GetVersion returns the structure provided by the configured InfoProvider.
func (ih *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := ih.infoProvider()
	if payload == nil {
		payload = map[string]string{}
	}
	ih.RespondWithJSON(w, r, http.StatusOK, payload)
}

// GetOpenAPIJSON writes the configured OpenAPI JSON document.
func (ih *InfoHandler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	body, err := ih.swaggerProvider()
	if err != nil {
		ih.HandleInternalServerError(w, r, err, "failed to load openapi document")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(body); err != nil {
		ih.Logger().ErrorContext(r.Context(), "failed to write swagger response", "error", err)
	}
}

// GetOpenAPIHTML renders the documentation viewer, which fetches the document
// from /openapi.json. The page is rendered fully before anything is written
// so template failures still produce a clean problem response.
func (ih *InfoHandler) GetOpenAPIHTML(w http.ResponseWriter, r *http.Request) {
	if ih.openapiTemplate == nil {
		ih.HandleInternalServerError(w, r, errors.New("openapi template not configured"), "failed to render openapi template")
		return
	}

	var page bytes.Buffer
	if err := ih.openapiTemplate.Execute(&page, templateData(ih.baseURL)); err != nil {
		ih.HandleInternalServerError(w, r, err, "failed to render openapi template")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := page.WriteTo(w); err != nil {
		ih.Logger().ErrorContext(r.Context(), "failed to write openapi page", "error", err)
	}
}
