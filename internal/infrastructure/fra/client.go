package fra

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/milepost-service/internal/config"
	"github.com/milepost-service/internal/domain"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response ends up in the error.
const maxErrorBody = 512

// Client reads the FRA highway-rail crossing inventory over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// NewClient builds a dataset client from config
func NewClient(cfg *config.DatasetConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		url:    cfg.URL,
		logger: logger,
	}
}

// FetchPayload returns the response body of a successful dataset request.
func (c *Client) FetchPayload(ctx context.Context) ([]byte, error) {
	c.logger.Debug("Fetching crossing dataset", zap.String("url", c.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Dataset API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("dataset API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read response", zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return data, nil
}

// FetchCrossings loads and decodes the whole dataset.
func (c *Client) FetchCrossings(ctx context.Context) ([]domain.RawCrossingRecord, error) {
	data, err := c.FetchPayload(ctx)
	if err != nil {
		return nil, err
	}

	records, skipped, err := domain.DecodeCrossingRecords(data)
	if err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, err
	}
	if skipped > 0 {
		c.logger.Debug("Skipped malformed crossing records", zap.Int("skipped", skipped))
	}

	c.logger.Info("Crossing dataset fetched", zap.Int("records", len(records)))
	return records, nil
}
