package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/shopify"
	"github.com/lalitbansal40/shopify-backend/internal/validation"
	apperrors "github.com/lalitbansal40/shopify-backend/pkg/errors"
)

// AuthAPI is the auth surface the handlers call
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, customer shopify.NewCustomer) (json.RawMessage, error)
	RecoveryLink() string
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the signup payload. VerifiedEmail is a pointer so a
// missing flag fails validation rather than defaulting to false.
type SignupRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	VerifiedEmail        *bool  `json:"verified_email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// HandleLogin handles POST /api/login
func HandleLogin(svc AuthAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "invalid request body",
			})
			return
		}

		if msg, ok := validation.Login(validation.LoginInput{Email: req.Email, Password: req.Password}); !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": msg,
			})
			return
		}

		token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if userErr, ok := err.(*apperrors.ErrUpstreamUser); ok {
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"errors":  userErr.Errors,
				})
				return
			}
			respondUpstreamError(c, logger, "Failed to authenticate customer", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"token": token},
		})
	}
}

// HandleSignup handles POST /api/signup
func HandleSignup(svc AuthAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  []string{"invalid request body"},
			})
			return
		}

		msgs := validation.Signup(validation.SignupInput{
			FirstName:            req.FirstName,
			LastName:             req.LastName,
			Email:                req.Email,
			Phone:                req.Phone,
			VerifiedEmail:        req.VerifiedEmail,
			Password:             req.Password,
			PasswordConfirmation: req.PasswordConfirmation,
		})
		if len(msgs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  msgs,
			})
			return
		}

		customer, err := svc.Signup(c.Request.Context(), shopify.NewCustomer{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         req.Email,
			Phone:         req.Phone,
			VerifiedEmail: *req.VerifiedEmail,
			Password:      req.Password,
			PasswordConf:  req.PasswordConfirmation,
		})
		if err != nil {
			respondUpstreamError(c, logger, "Failed to create customer", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    gin.H{"customer": customer},
		})
	}
}

// HandleForgotPassword handles GET /api/forgotPassword
func HandleForgotPassword(svc AuthAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"link": svc.RecoveryLink()},
		})
	}
}
