package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/config"
	apperrors "github.com/lalitbansal40/shopify-backend/pkg/errors"
)

// AdminClient calls the Shopify Admin REST API with the admin access token.
// Only customer creation is needed here; catalog reads go through the
// Storefront GraphQL client.
type AdminClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewAdminClient creates a new Admin REST client
func NewAdminClient(cfg config.ShopifyConfig, logger *zap.Logger) *AdminClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminClient{
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s", normalizeDomain(cfg.ShopDomain), cfg.AdminAPIVersion),
		accessToken: cfg.AdminToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewCustomer is the Admin REST customer creation payload
type NewCustomer struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	VerifiedEmail bool   `json:"verified_email"`
	Password      string `json:"password"`
	PasswordConf  string `json:"password_confirmation"`
}

// CreateCustomer creates a customer via POST /customers.json and returns the
// raw customer object from the response.
func (c *AdminClient) CreateCustomer(ctx context.Context, customer NewCustomer) (json.RawMessage, error) {
	reqBody := map[string]interface{}{"customer": customer}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/customers.json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Message: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ErrUpstream{Status: resp.StatusCode, Message: string(body)}
	}

	var result struct {
		Customer json.RawMessage `json:"customer"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &apperrors.ErrUpstream{Message: "failed to unmarshal response: " + err.Error()}
	}
	if len(result.Customer) == 0 {
		return nil, &apperrors.ErrUpstream{Message: "customer missing from response"}
	}

	return result.Customer, nil
}
