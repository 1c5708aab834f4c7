// Package geo integrates the Google Maps web services used by tracking and
// dispatch: reverse geocoding for timeline place names and the distance
// matrix for remaining road distance.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

const defaultBaseURL = "https://maps.googleapis.com"

const serviceName = "google maps"

// statusOK and statusZeroResults are the Google Maps API status values the
// adapter distinguishes; everything else is treated as a service failure.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

// GoogleMapsClient calls the Google Maps geocoding and distance matrix APIs.
// It implements both ports.GeocodeResolver and ports.DistanceProvider.
type GoogleMapsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a GoogleMapsClient.
type Option func(*GoogleMapsClient)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *GoogleMapsClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *GoogleMapsClient) {
		c.httpClient = httpClient
	}
}

// NewGoogleMapsClient creates a client with the given API key.
func NewGoogleMapsClient(apiKey string, opts ...Option) *GoogleMapsClient {
	c := &GoogleMapsClient{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve reverse-geocodes the point to a formatted address.
// Per the resolver contract it never fails: an empty result set yields
// UnknownLocationName and any transport or service error yields
// LocationUnavailableName.
func (c *GoogleMapsClient) Resolve(ctx context.Context, point kernel.GeoPoint) string {
	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
	}

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", point.Lat(), point.Lng()))
	params.Set("key", c.apiKey)

	err := c.getJSON(ctx, "/maps/api/geocode/json", params, &payload)
	if err != nil {
		return ports.LocationUnavailableName
	}

	switch {
	case payload.Status == statusOK && len(payload.Results) > 0:
		return payload.Results[0].FormattedAddress
	case payload.Status == statusZeroResults || len(payload.Results) == 0:
		return ports.UnknownLocationName
	default:
		return ports.LocationUnavailableName
	}
}

// Distance returns the road distance between origin and destination as the
// provider formats it, e.g. "23.4 km". Failures are wrapped as
// ExternalServiceError; there is no fallback value.
func (c *GoogleMapsClient) Distance(ctx context.Context, origin, destination kernel.GeoPoint) (string, error) {
	var payload struct {
		Status string `json:"status"`
		Rows   []struct {
			Elements []struct {
				Status   string `json:"status"`
				Distance struct {
					Text string `json:"text"`
				} `json:"distance"`
			} `json:"elements"`
		} `json:"rows"`
	}

	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", origin.Lat(), origin.Lng()))
	params.Set("destinations", fmt.Sprintf("%f,%f", destination.Lat(), destination.Lng()))
	params.Set("key", c.apiKey)

	err := c.getJSON(ctx, "/maps/api/distancematrix/json", params, &payload)
	if err != nil {
		return "", errs.NewExternalServiceError(serviceName, err)
	}

	if payload.Status != statusOK || len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return "", errs.NewExternalServiceError(serviceName,
			fmt.Errorf("distance matrix status %q", payload.Status))
	}

	element := payload.Rows[0].Elements[0]
	if element.Status != statusOK {
		return "", errs.NewExternalServiceError(serviceName,
			fmt.Errorf("distance matrix element status %q", element.Status))
	}

	return element.Distance.Text, nil
}

func (c *GoogleMapsClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+path+"?"+params.Encode(), nil)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *GoogleMapsClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) with exponential backoff while respecting context cancellation.
func (c *GoogleMapsClient) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
