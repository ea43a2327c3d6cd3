// Package probe implements the target liveness check: a bounded HEAD request
// that answers whether a destination currently responds.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Prober performs lightweight existence checks against target URLs.
type Prober struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewProber creates a Prober whose requests are bounded by timeout.
func NewProber(timeout time.Duration, logger *slog.Logger) *Prober {
	return &Prober{
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "probe"),
	}
}

// Probe checks whether rawURL currently responds. A nil return means the
// target is reachable; a non-nil error describes why it is not and is safe to
// show to the fallback chooser as the unavailability reason. The request is
// cancelled when ctx is.
func (p *Prober) Probe(ctx context.Context, rawURL string) error {
	resp, err := p.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return fmt.Errorf("the target did not respond: %w", err)
	}
	resp.Body.Close()

	// Some origins reject HEAD outright; give them one GET before judging.
	if resp.StatusCode == http.StatusMethodNotAllowed {
		resp, err = p.do(ctx, http.MethodGet, rawURL)
		if err != nil {
			return fmt.Errorf("the target did not respond: %w", err)
		}
		resp.Body.Close()
	}

	if resp.StatusCode >= 400 {
		p.log.DebugContext(ctx, "probe failed",
			slog.String("url", rawURL),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("the target returned HTTP status %d", resp.StatusCode)
	}

	return nil
}

func (p *Prober) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return p.httpClient.Do(req)
}
