package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/config"
	apperrors "github.com/lalitbansal40/shopify-backend/pkg/errors"
)

// Client is a Shopify Storefront GraphQL client
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Storefront GraphQL client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:    fmt.Sprintf("https://%s/api/%s/graphql.json", normalizeDomain(cfg.ShopDomain), cfg.StorefrontAPIVersion),
		accessToken: cfg.StorefrontToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// normalizeDomain removes https://, http://, and trailing slashes
func normalizeDomain(domain string) string {
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimSuffix(domain, "/")
}

// graphQLRequest represents a GraphQL request
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse represents a GraphQL response
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// graphQLError represents a GraphQL error
type graphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute executes a GraphQL query/mutation and returns the raw data object.
// One network round-trip per call; failures are never retried.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	reqBody := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Message: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ErrUpstream{Status: resp.StatusCode, Message: string(body)}
	}

	var graphQLResp graphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, &apperrors.ErrUpstream{Message: "failed to unmarshal response: " + err.Error()}
	}

	if len(graphQLResp.Errors) > 0 {
		errorMessages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			errorMessages[i] = gqlErr.Message
		}
		return nil, &apperrors.ErrUpstream{Message: "graphQL errors: " + strings.Join(errorMessages, "; ")}
	}

	return graphQLResp.Data, nil
}
