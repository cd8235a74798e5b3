package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FACorreiaa/tripwhisper-api/internal/types"
	"github.com/FACorreiaa/tripwhisper-api/pkg/failover"
	"github.com/FACorreiaa/tripwhisper-api/pkg/observability"
)

var _ Client = (*ClientImpl)(nil)

// Client runs Overpass QL queries against a set of mirror endpoints.
type Client interface {
	Query(ctx context.Context, body string) ([]types.OverpassElement, error)
}

type ClientImpl struct {
	logger      *slog.Logger
	mirrors     []string
	mirrorDelay time.Duration
	userAgent   string
	httpClient  *http.Client
}

func NewOverpassClient(mirrors []string, mirrorDelay time.Duration, userAgent string, timeout time.Duration, logger *slog.Logger) *ClientImpl {
	return &ClientImpl{
		logger:      logger,
		mirrors:     mirrors,
		mirrorDelay: mirrorDelay,
		userAgent:   userAgent,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type overpassResponse struct {
	Elements []types.OverpassElement `json:"elements"`
}

// Query posts the query body to each mirror strictly in order, pausing
// briefly between attempts. The first success short-circuits the rest; once
// every mirror has failed the last error is escalated.
func (c *ClientImpl) Query(ctx context.Context, body string) ([]types.OverpassElement, error) {
	elements, err := failover.Do(ctx, c.mirrors, c.mirrorDelay,
		func(ctx context.Context, mirror string) ([]types.OverpassElement, error) {
			return c.queryMirror(ctx, mirror, body)
		},
		func(mirror string, err error) {
			observability.MirrorFailures.Inc()
			c.logger.WarnContext(ctx, "overpass mirror failed, trying next",
				slog.String("mirror", mirror),
				slog.Any("error", err))
		})
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", types.ErrAllMirrorsFailed, err)
	}
	return elements, nil
}

func (c *ClientImpl) queryMirror(ctx context.Context, mirror, body string) ([]types.OverpassElement, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("overpass", "network_error").Inc()
		return nil, fmt.Errorf("overpass request to %s failed: %w", mirror, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamRequests.WithLabelValues("overpass", "error").Inc()
		return nil, fmt.Errorf("overpass mirror %s returned %s: %w", mirror, resp.Status, types.ErrUpstream)
	}
	observability.UpstreamRequests.WithLabelValues("overpass", "success").Inc()

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}
	return parsed.Elements, nil
}
