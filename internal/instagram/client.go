package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"lala-site-api/internal/logger"
)

const (
	defaultBaseURL = "https://graph.instagram.com"
	mediaFields    = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"
)

// MediaTypeVideo marks posts whose display image comes from the thumbnail.
const MediaTypeVideo = "VIDEO"

// Media is one item of the Graph API media edge.
type Media struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}

type mediaResponse struct {
	Data  []Media       `json:"data"`
	Error *upstreamFail `json:"error"`
}

type upstreamFail struct {
	Message string `json:"message"`
}

// APIError carries an upstream non-success status so the mirror endpoint
// can forward it as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("instagram api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("instagram api: %d", e.Status)
}

// Client fetches recent media for one account from the Instagram Graph API.
type Client struct {
	accessToken string
	userID      string
	limit       string

	// BaseURL may be overridden in tests.
	BaseURL string

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
}

func NewClient(accessToken, userID, limit string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "InstagramAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	// Results are cached for the freshness window, so upstream traffic is
	// already low; the limiter only guards against cache-miss stampedes.
	limiter := rate.NewLimiter(rate.Limit(2), 4)

	return &Client{
		accessToken: accessToken,
		userID:      userID,
		limit:       limit,
		BaseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		breaker:     breaker,
		limiter:     limiter,
	}
}

// RecentMedia fetches the account's media edge, newest first as returned by
// the Graph API. Non-success upstream statuses come back as *APIError.
func (c *Client) RecentMedia(ctx context.Context) ([]Media, error) {
	tracer := otel.Tracer("instagram-client")
	ctx, span := tracer.Start(ctx, "instagram.recent_media")
	defer span.End()

	span.SetAttributes(
		attribute.String("instagram.user_id", c.userID),
		attribute.String("instagram.limit", c.limit),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchMedia(ctx)
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("instagram.fetch_failed", true))
		return nil, err
	}

	media := result.([]Media)
	span.SetAttributes(attribute.Int("instagram.media_count", len(media)))
	return media, nil
}

func (c *Client) fetchMedia(ctx context.Context) ([]Media, error) {
	endpoint := fmt.Sprintf("%s/%s/media", c.BaseURL, c.userID)

	query := url.Values{}
	query.Set("fields", mediaFields)
	query.Set("access_token", c.accessToken)
	query.Set("limit", c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode instagram response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if payload.Error != nil {
			apiErr.Message = payload.Error.Message
		}
		return nil, apiErr
	}

	return payload.Data, nil
}
