package resolve

import (
	"context"

	"github.com/mexxdev/qrdirect/internal/domain"
)

// resolveDestination picks the URL an admitted scan is sent to. The primary
// target wins whenever the probe says it is alive; otherwise the fallback
// list is consulted, with the selector choosing among candidates and the
// first candidate standing in whenever selection cannot happen or misfires.
func (s *Service) resolveDestination(ctx context.Context, link *domain.LinkRecord) Outcome {
	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	probeErr := s.prober.Probe(probeCtx, link.TargetURL)
	cancel()

	if probeErr == nil {
		return Redirect{URL: link.TargetURL}
	}
	s.log.WarnContext(ctx, "primary target unreachable",
		"slug", link.Slug, "target_url", link.TargetURL, "reason", probeErr)

	if len(link.FallbackURLs) == 0 {
		return Unavailable{}
	}

	return Redirect{URL: s.chooseFallback(ctx, link, probeErr.Error())}
}

// chooseFallback asks the selector for the best candidate and pins the result
// back to the configured list: a selector answer outside the list, an error,
// or a disabled selector all fall back to the first candidate.
func (s *Service) chooseFallback(ctx context.Context, link *domain.LinkRecord, reason string) string {
	candidates := link.FallbackURLs
	if s.chooser == nil {
		return candidates[0]
	}

	selCtx, cancel := context.WithTimeout(ctx, s.cfg.SelectorTimeout)
	defer cancel()

	chosen, err := s.chooser.Choose(selCtx, link.TargetURL, candidates, reason)
	if err != nil {
		s.log.WarnContext(ctx, "fallback selection failed",
			"slug", link.Slug, "error", err)
		return candidates[0]
	}
	if !containsURL(candidates, chosen) {
		s.log.WarnContext(ctx, "fallback selection returned unknown url",
			"slug", link.Slug, "chosen_url", chosen)
		return candidates[0]
	}
	return chosen
}

func containsURL(urls []string, u string) bool {
	for _, c := range urls {
		if c == u {
			return true
		}
	}
	return false
}
