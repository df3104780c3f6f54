package settings

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// HandlerOption configures the HTTP handler.
type HandlerOption func(*handler)

// WithLogger attaches a structured logger for request-level failures.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

type handler struct {
	controller *Controller
	logger     *slog.Logger
}

// Handler serves the settings page over HTTP. GET renders the current
// state; POST applies the submission and redirects on success so a browser
// refresh cannot resubmit the form. A rejected submission re-renders the
// page with field errors and status 200, a body that does not parse as
// form data gets 400, and storage failures return 500.
func Handler(controller *Controller, opts ...HandlerOption) http.Handler {
	h := &handler{
		controller: controller,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.serveGet(w, r)
	case http.MethodPost:
		h.servePost(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *handler) serveGet(w http.ResponseWriter, r *http.Request) {
	page, err := h.controller.RenderPage(r.Context())
	if err != nil {
		h.logger.Error("render settings page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writePage(w, http.StatusOK, page)
}

func (h *handler) servePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("read submission body", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	verrs, err := h.controller.Submit(r.Context(), string(body))
	if err != nil {
		if errors.Is(err, ErrMalformedBody) {
			h.logger.Info("reject malformed submission body", "error", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		h.logger.Error("apply settings submission", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(verrs) > 0 {
		h.logger.Info("settings submission rejected", "fields", len(verrs))
		page, err := h.controller.RenderRejected(r.Context(), verrs)
		if err != nil {
			h.logger.Error("render rejected submission", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.writePage(w, http.StatusOK, page)
		return
	}

	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

func (h *handler) writePage(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", h.controller.Renderer().ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(page); err != nil {
		h.logger.Error("write response", "error", err)
	}
}
