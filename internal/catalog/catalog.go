// Package catalog emulates page-number pagination on top of Shopify's
// forward-only cursor pagination. Upstream lists only support first/after, so
// landing on page N means walking the cursor chain in bounded chunks to the
// right offset, and a total count means walking the whole chain.
package catalog

import (
	"context"
	"encoding/json"
)

// ChunkCeiling caps the page size requested from upstream per round-trip,
// regardless of how deep the client-requested page is.
const ChunkCeiling = 50

// Cursor is an opaque continuation token issued by upstream. It is only ever
// passed back verbatim; never parse or compare beyond identity.
type Cursor string

// Product is one upstream list item. Node is the raw upstream object and is
// returned to clients untouched; Title, Description and Tags are the only
// fields the search predicate inspects.
type Product struct {
	Node        json.RawMessage
	Title       string
	Description string
	Tags        []string
}

// Page is one normalized page of an upstream list. EndCursor is nil only when
// the chain is exhausted.
type Page struct {
	Items       []Product
	EndCursor   *Cursor
	HasNextPage bool
}

// Source is one upstream cursor-paginated list (the flat product list or a
// collection's products). FetchPage returns fully populated items;
// FetchPageInfo advances the cursor without materializing items and is what
// the locator walks.
type Source interface {
	FetchPage(ctx context.Context, first int, after *Cursor) (*Page, error)
	FetchPageInfo(ctx context.Context, first int, after *Cursor) (*Page, error)
}

// Predicate decides whether an item counts as a match for client-side
// filtering.
type Predicate func(Product) bool
