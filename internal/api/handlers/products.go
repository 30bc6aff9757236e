package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/api/middleware"
	"github.com/lalitbansal40/shopify-backend/internal/service"
	apperrors "github.com/lalitbansal40/shopify-backend/pkg/errors"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// CatalogAPI is the catalog surface the product handlers call
type CatalogAPI interface {
	ListProducts(ctx context.Context, search string, page, limit int) (*service.ProductList, error)
	ListCollectionProducts(ctx context.Context, handle, search string, page, limit int) (*service.CollectionProductList, error)
}

// HandleProductList handles GET /api/productList
func HandleProductList(svc CatalogAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		page := positiveIntQuery(c, "page", defaultPage)
		limit := positiveIntQuery(c, "limit", defaultLimit)

		result, err := svc.ListProducts(c.Request.Context(), search, page, limit)
		if err != nil {
			respondUpstreamError(c, logger, "Failed to fetch paginated products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"data":        result.Items,
			"pageInfo":    result.PageInfo,
			"currentPage": result.CurrentPage,
			"limit":       result.Limit,
			"total":       result.Total,
			"hasNextPage": result.HasNextPage,
		})
	}
}

// HandleProductListByCollection handles GET /api/productListByCollection/:collectionHandle
func HandleProductListByCollection(svc CatalogAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := c.Param("collectionHandle")
		search := c.Query("search")
		page := positiveIntQuery(c, "page", defaultPage)
		limit := positiveIntQuery(c, "limit", defaultLimit)

		result, err := svc.ListCollectionProducts(c.Request.Context(), handle, search, page, limit)
		if err != nil {
			respondUpstreamError(c, logger, "Failed to fetch collection products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"data":            result.Items,
			"collectionId":    result.CollectionID,
			"collectionTitle": result.CollectionTitle,
			"currentPage":     result.CurrentPage,
			"limit":           result.Limit,
			"total":           result.Total,
			"hasNextPage":     result.HasNextPage,
		})
	}
}

// positiveIntQuery parses a query param as a positive integer, falling back
// to def on anything missing, non-numeric or < 1.
func positiveIntQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// respondUpstreamError maps upstream failures to a 5xx response. The
// upstream status is forwarded when it was itself a server error; anything
// else upstream-shaped becomes a 502.
func respondUpstreamError(c *gin.Context, logger *zap.Logger, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.GetRequestID(c)),
	)

	status := http.StatusInternalServerError
	if ue, ok := err.(*apperrors.ErrUpstream); ok && ue.Status > 0 {
		if ue.Status >= http.StatusInternalServerError {
			status = ue.Status
		} else {
			status = http.StatusBadGateway
		}
	}
	c.JSON(status, gin.H{"error": message})
}
