package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
)

// TokenEnvVar is read when no results token is configured.
const TokenEnvVar = "TASKCHART_TOKEN"

// maxPayloadSize bounds remote payloads.
const maxPayloadSize = 64 << 20

// RemoteConfig holds configuration for fetching a remote payload.
type RemoteConfig struct {
	URL      string
	Token    string
	RetryMax int
	Logger   hclog.Logger
}

// FetchRemoteData retrieves a payload over HTTP(S), retrying transient
// failures.
func FetchRemoteData(ctx context.Context, config RemoteConfig) ([]byte, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("remote data URL is empty")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	if config.RetryMax > 0 {
		client.RetryMax = config.RetryMax
	}
	if config.Logger != nil {
		client.Logger = config.Logger.Named("http")
	} else {
		client.Logger = nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	token := config.Token
	if token == "" {
		token = os.Getenv(TokenEnvVar)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", config.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("failed to fetch %s: status %d: %s", config.URL, resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
