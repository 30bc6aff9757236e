package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/auth"
	"github.com/lalitbansal40/shopify-backend/internal/config"
	"github.com/lalitbansal40/shopify-backend/internal/shopify"
	apperrors "github.com/lalitbansal40/shopify-backend/pkg/errors"
)

// adminAPI is the slice of the Admin client the auth service needs
type adminAPI interface {
	CreateCustomer(ctx context.Context, customer shopify.NewCustomer) (json.RawMessage, error)
}

// AuthService exchanges customer credentials with Shopify and re-wraps the
// returned access token in a locally signed JWT.
type AuthService struct {
	storefront storefrontExecutor
	admin      adminAPI
	signer     *auth.Signer
	shopDomain string
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.ShopifyConfig, storefront *shopify.Client, admin *shopify.AdminClient, signer *auth.Signer, logger *zap.Logger) *AuthService {
	domain := strings.TrimPrefix(cfg.ShopDomain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, "/")

	return &AuthService{
		storefront: storefront,
		admin:      admin,
		signer:     signer,
		shopDomain: domain,
		logger:     logger,
	}
}

// Login exchanges credentials for a Shopify customer access token and returns
// it re-signed as a JWT with a fixed one-hour validity. Wrong credentials
// surface as ErrUpstreamUser carrying the raw Shopify error list.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"email":    email,
			"password": password,
		},
	}

	data, err := s.storefront.Execute(ctx, shopify.CustomerAccessTokenCreateMutation, variables)
	if err != nil {
		s.logger.Error("Login exchange failed", zap.Error(err))
		return "", err
	}

	var result struct {
		CustomerAccessTokenCreate struct {
			CustomerAccessToken *struct {
				AccessToken string `json:"accessToken"`
				ExpiresAt   string `json:"expiresAt"`
			} `json:"customerAccessToken"`
			UserErrors []apperrors.UserError `json:"userErrors"`
		} `json:"customerAccessTokenCreate"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &apperrors.ErrUpstream{Message: "failed to parse login response: " + err.Error()}
	}

	exchange := result.CustomerAccessTokenCreate
	if len(exchange.UserErrors) > 0 {
		return "", &apperrors.ErrUpstreamUser{Errors: exchange.UserErrors}
	}
	if exchange.CustomerAccessToken == nil {
		return "", &apperrors.ErrUpstream{Message: "customer access token missing from response"}
	}

	token, err := s.signer.Sign(exchange.CustomerAccessToken.AccessToken, exchange.CustomerAccessToken.ExpiresAt)
	if err != nil {
		s.logger.Error("Failed to sign customer token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// Signup creates a customer through the Admin REST API and returns the raw
// customer object.
func (s *AuthService) Signup(ctx context.Context, customer shopify.NewCustomer) (json.RawMessage, error) {
	created, err := s.admin.CreateCustomer(ctx, customer)
	if err != nil {
		s.logger.Error("Signup failed", zap.Error(err), zap.String("email", customer.Email))
		return nil, err
	}
	return created, nil
}

// RecoveryLink returns the storefront's account recovery page URL
func (s *AuthService) RecoveryLink() string {
	return fmt.Sprintf("https://%s/account/recover", s.shopDomain)
}
