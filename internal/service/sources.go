package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lalitbansal40/shopify-backend/internal/catalog"
	"github.com/lalitbansal40/shopify-backend/internal/shopify"
	apperrors "github.com/lalitbansal40/shopify-backend/pkg/errors"
)

// storefrontExecutor is the slice of the Storefront client the catalog
// sources need.
type storefrontExecutor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
}

// connection is the GraphQL connection shape shared by both list queries
type connection struct {
	PageInfo struct {
		HasNextPage bool    `json:"hasNextPage"`
		EndCursor   *string `json:"endCursor"`
	} `json:"pageInfo"`
	Edges []struct {
		Node json.RawMessage `json:"node"`
	} `json:"edges"`
}

// toPage normalizes a connection into a catalog page, lifting out the fields
// the search predicate inspects. The collection query exposes descriptionHtml
// instead of description; whichever is present becomes the description.
func (c *connection) toPage() (*catalog.Page, error) {
	page := &catalog.Page{HasNextPage: c.PageInfo.HasNextPage}
	if c.PageInfo.EndCursor != nil {
		cursor := catalog.Cursor(*c.PageInfo.EndCursor)
		page.EndCursor = &cursor
	}

	for _, edge := range c.Edges {
		var fields struct {
			Title           string   `json:"title"`
			Description     string   `json:"description"`
			DescriptionHTML string   `json:"descriptionHtml"`
			Tags            []string `json:"tags"`
		}
		if err := json.Unmarshal(edge.Node, &fields); err != nil {
			return nil, &apperrors.ErrUpstream{Message: "failed to parse product node: " + err.Error()}
		}
		description := fields.Description
		if description == "" {
			description = fields.DescriptionHTML
		}
		page.Items = append(page.Items, catalog.Product{
			Node:        edge.Node,
			Title:       fields.Title,
			Description: description,
			Tags:        fields.Tags,
		})
	}

	return page, nil
}

// listVariables builds the shared first/after variables. A nil after and an
// empty query are sent as explicit JSON nulls, which upstream treats as
// "from the beginning" and "unfiltered".
func listVariables(first int, after *catalog.Cursor) map[string]interface{} {
	vars := map[string]interface{}{"first": first}
	if after != nil {
		vars["after"] = string(*after)
	} else {
		vars["after"] = nil
	}
	return vars
}

// productSource pages through the flat product list, optionally narrowed by
// an upstream query expression.
type productSource struct {
	client storefrontExecutor
	query  string
}

func (s *productSource) variables(first int, after *catalog.Cursor) map[string]interface{} {
	vars := listVariables(first, after)
	if s.query != "" {
		vars["query"] = s.query
	} else {
		vars["query"] = nil
	}
	return vars
}

func (s *productSource) FetchPage(ctx context.Context, first int, after *catalog.Cursor) (*catalog.Page, error) {
	return s.fetch(ctx, shopify.ProductListQuery, first, after)
}

func (s *productSource) FetchPageInfo(ctx context.Context, first int, after *catalog.Cursor) (*catalog.Page, error) {
	return s.fetch(ctx, shopify.ProductCursorQuery, first, after)
}

func (s *productSource) fetch(ctx context.Context, query string, first int, after *catalog.Cursor) (*catalog.Page, error) {
	data, err := s.client.Execute(ctx, query, s.variables(first, after))
	if err != nil {
		return nil, err
	}

	var result struct {
		Products connection `json:"products"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &apperrors.ErrUpstream{Message: "failed to parse products response: " + err.Error()}
	}
	return result.Products.toPage()
}

// collectionSource pages through one collection's products. The collection's
// id and title ride along on every full fetch and are captured for the
// response envelope.
type collectionSource struct {
	client storefrontExecutor
	handle string

	mu    sync.Mutex
	id    string
	title string
}

func (s *collectionSource) FetchPage(ctx context.Context, first int, after *catalog.Cursor) (*catalog.Page, error) {
	vars := listVariables(first, after)
	vars["handle"] = s.handle

	data, err := s.client.Execute(ctx, shopify.CollectionProductListQuery, vars)
	if err != nil {
		return nil, err
	}

	var result struct {
		Collection *struct {
			ID       string     `json:"id"`
			Title    string     `json:"title"`
			Products connection `json:"products"`
		} `json:"collectionByHandle"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &apperrors.ErrUpstream{Message: "failed to parse collection response: " + err.Error()}
	}
	if result.Collection == nil {
		return nil, &apperrors.ErrUpstream{Message: "collection not found: " + s.handle}
	}

	s.mu.Lock()
	s.id = result.Collection.ID
	s.title = result.Collection.Title
	s.mu.Unlock()

	return result.Collection.Products.toPage()
}

func (s *collectionSource) FetchPageInfo(ctx context.Context, first int, after *catalog.Cursor) (*catalog.Page, error) {
	vars := listVariables(first, after)
	vars["handle"] = s.handle

	data, err := s.client.Execute(ctx, shopify.CollectionCursorQuery, vars)
	if err != nil {
		return nil, err
	}

	var result struct {
		Collection *struct {
			Products connection `json:"products"`
		} `json:"collectionByHandle"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &apperrors.ErrUpstream{Message: "failed to parse collection response: " + err.Error()}
	}
	if result.Collection == nil {
		return nil, &apperrors.ErrUpstream{Message: "collection not found: " + s.handle}
	}
	return result.Collection.Products.toPage()
}

// Meta returns the collection id and title seen on the most recent full fetch
func (s *collectionSource) Meta() (id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.title
}
