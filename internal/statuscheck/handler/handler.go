package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"crsc/internal/statuscheck"
	"crsc/pkg/platform/httputil"
	"crsc/pkg/requestcontext"
)

// Route patterns the status lookup is served on. The second is the path the
// real API is hosted under.
const (
	StatusRoute       = "/status/{" + statuscheck.PathParamDisclosureRef + "}"
	HostedStatusRoute = "/crsc/api/status/{" + statuscheck.PathParamDisclosureRef + "}"
)

type Responder interface {
	Respond(ctx context.Context, req statuscheck.Request) statuscheck.Response
}

type Handler struct {
	responder Responder
	logger    *slog.Logger
}

func New(responder Responder, logger *slog.Logger) *Handler {
	return &Handler{
		responder: responder,
		logger:    logger,
	}
}

// Register mounts the status lookup for every method; non-GET requests are
// answered with the plain-text 405 by the responder, not by chi.
func (h *Handler) Register(r chi.Router) {
	r.HandleFunc(StatusRoute, h.HandleStatus)
	r.HandleFunc(HostedStatusRoute, h.HandleStatus)
}

// HandleStatus implements GET /status/{disclosureRef}.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref := chi.URLParam(r, statuscheck.PathParamDisclosureRef)
	// chi routes on RawPath only when it is set; otherwise ref is already decoded.
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(ref); err == nil {
			ref = decoded
		} else {
			h.logger.DebugContext(ctx, "disclosure reference kept undecoded",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}

	resp := h.responder.Respond(ctx, statuscheck.Request{
		Method:        r.Method,
		DisclosureRef: ref,
		Query:         ParseQuery(r.URL.RawQuery),
	})
	httputil.WriteText(w, resp.Status, resp.ContentType, resp.Body)
}
