package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/catalog"
	"github.com/lalitbansal40/shopify-backend/internal/shopify"
)

// CatalogService serves page-number product listings over the Storefront API
type CatalogService struct {
	client storefrontExecutor
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(client *shopify.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		client: client,
		logger: logger,
	}
}

// ProductList is the flat product listing result
type ProductList struct {
	Items       []json.RawMessage
	PageInfo    catalog.PageInfo
	CurrentPage int
	Limit       int
	Total       int
	HasNextPage bool
}

// CollectionProductList is the collection-scoped listing result
type CollectionProductList struct {
	Items           []json.RawMessage
	CollectionID    string
	CollectionTitle string
	CurrentPage     int
	Limit           int
	Total           int
	HasNextPage     bool
}

// ListProducts returns one page of the flat product list. A non-empty search
// becomes an upstream query expression over title, description and tags, so
// both the page and the total reflect it server-side.
func (s *CatalogService) ListProducts(ctx context.Context, search string, page, limit int) (*ProductList, error) {
	src := &productSource{client: s.client, query: searchExpr(search)}

	env, err := catalog.AssemblePage(ctx, src, catalog.PageRequest{Page: page, Limit: limit}, nil)
	if err != nil {
		s.logger.Error("Failed to list products",
			zap.Error(err),
			zap.String("search", search),
			zap.Int("page", page),
			zap.Int("limit", limit),
		)
		return nil, err
	}

	return &ProductList{
		Items:       rawNodes(env.Items),
		PageInfo:    env.PageInfo,
		CurrentPage: env.CurrentPage,
		Limit:       env.Limit,
		Total:       env.Total,
		HasNextPage: env.HasNextPage,
	}, nil
}

// ListCollectionProducts returns one page of a collection's products. The
// collection endpoint has no upstream filtering, so a non-empty search is a
// client-side predicate over title, descriptionHtml and tags, applied to
// both the fetched page and the total count.
func (s *CatalogService) ListCollectionProducts(ctx context.Context, handle, search string, page, limit int) (*CollectionProductList, error) {
	src := &collectionSource{client: s.client, handle: handle}

	var match catalog.Predicate
	if search != "" {
		match = catalog.MatchesSearch(search)
	}

	env, err := catalog.AssemblePage(ctx, src, catalog.PageRequest{Page: page, Limit: limit}, match)
	if err != nil {
		s.logger.Error("Failed to list collection products",
			zap.Error(err),
			zap.String("collection_handle", handle),
			zap.String("search", search),
			zap.Int("page", page),
			zap.Int("limit", limit),
		)
		return nil, err
	}

	collectionID, collectionTitle := src.Meta()
	return &CollectionProductList{
		Items:           rawNodes(env.Items),
		CollectionID:    collectionID,
		CollectionTitle: collectionTitle,
		CurrentPage:     env.CurrentPage,
		Limit:           env.Limit,
		Total:           env.Total,
		HasNextPage:     env.HasNextPage,
	}, nil
}

// searchExpr builds the Storefront query expression for a free-text search
func searchExpr(search string) string {
	if search == "" {
		return ""
	}
	return fmt.Sprintf("(title:*%s* OR description:*%s* OR tag:*%s*)", search, search, search)
}

func rawNodes(items []catalog.Product) []json.RawMessage {
	nodes := make([]json.RawMessage, len(items))
	for i, item := range items {
		nodes[i] = item.Node
	}
	return nodes
}
