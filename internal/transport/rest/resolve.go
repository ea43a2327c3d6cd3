package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/mexxdev/qrdirect/internal/domain"
	"github.com/mexxdev/qrdirect/internal/service/resolve"
)

// resolver is the slice of the resolution service the handler needs.
type resolver interface {
	Resolve(ctx context.Context, slug string, creds resolve.Credentials, meta domain.ScanMetadata) resolve.Outcome
}

// ResolveHandler turns resolution outcomes into HTTP responses: temporary
// redirects for links, a vCard download for contacts, and redirects to the
// PIN and error pages for everything else.
type ResolveHandler struct {
	log           *slog.Logger
	service       resolver
	pinPagePath   string
	errorPagePath string
}

// NewResolveHandler creates a ResolveHandler. pinPagePath is a format string
// with one %s verb receiving the slug.
func NewResolveHandler(logger *slog.Logger, service resolver, pinPagePath, errorPagePath string) *ResolveHandler {
	return &ResolveHandler{
		log:           logger.With("handler", "resolve"),
		service:       service,
		pinPagePath:   pinPagePath,
		errorPagePath: errorPagePath,
	}
}

// Resolve handles GET /q/{slug}. An absent pin query parameter means no PIN
// was presented; an empty one counts as an attempt.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var creds resolve.Credentials
	if pins, ok := r.URL.Query()["pin"]; ok && len(pins) > 0 {
		creds = resolve.Credentials{PIN: pins[0], PINSupplied: true}
	}

	meta := domain.ScanMetadata{
		UserAgent:  r.UserAgent(),
		RemoteAddr: clientAddr(r),
	}

	out := h.service.Resolve(r.Context(), slug, creds, meta)

	switch o := out.(type) {
	case resolve.Redirect:
		http.Redirect(w, r, o.URL, http.StatusTemporaryRedirect)
	case resolve.ContactPayload:
		writeVCard(w, o)
	case resolve.NeedPin:
		http.Redirect(w, r, fmt.Sprintf(h.pinPagePath, url.PathEscape(slug)), http.StatusTemporaryRedirect)
	case resolve.WrongPin:
		target := fmt.Sprintf(h.pinPagePath, url.PathEscape(slug)) + "?error=" + url.QueryEscape(o.Message)
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	case resolve.Unavailable:
		http.Redirect(w, r, h.errorPagePath, http.StatusTemporaryRedirect)
	default:
		h.log.ErrorContext(r.Context(), "unhandled outcome", "outcome", fmt.Sprintf("%T", out))
		http.Redirect(w, r, h.errorPagePath, http.StatusTemporaryRedirect)
	}
}

func writeVCard(w http.ResponseWriter, p resolve.ContactPayload) {
	w.Header().Set("Content-Type", "text/vcard;charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Slug+".vcf"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(p.Card)) //nolint:errcheck
}

// clientAddr prefers the first X-Forwarded-For hop, falling back to the
// socket address with the port stripped.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
