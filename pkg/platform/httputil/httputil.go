package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "crsc/pkg/domain-errors"
)

// Content types the CRSC API answers with. Callers compare these verbatim,
// so no charset parameter is appended.
const (
	ContentTypeText = "text/plain"
	ContentTypeXML  = "application/xml"
	ContentTypeJSON = "application/json"
)

// WriteText writes body with an explicit content type so net/http never sniffs it.
func WriteText(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code.
	_, _ = io.WriteString(w, body)
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
// The domain message is the plain-text body; unexpected errors never leak their text.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		WriteText(w, DomainCodeToHTTPStatus(domainErr.Code), ContentTypeText, domainErr.Error())
		return
	}
	WriteText(w, http.StatusInternalServerError, ContentTypeText, http.StatusText(http.StatusInternalServerError))
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeUnrecognisedReference:
		return http.StatusBadRequest
	case dErrors.CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
