package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PageRequest is a client page-number pagination request
type PageRequest struct {
	Page  int
	Limit int
}

// PageInfo is the raw continuation state of the fetched page
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *Cursor `json:"endCursor"`
}

// Envelope is the assembled page plus pagination metadata. Total may lag
// Items if upstream mutates between the count walk and the page fetch; that
// window is accepted, not fixed.
type Envelope struct {
	Items       []Product
	PageInfo    PageInfo
	CurrentPage int
	Limit       int
	Total       int
	HasNextPage bool
}

// AssemblePage resolves a page-number request against a cursor-only source:
// locate the cursor for the requested offset, fetch one page of Limit items
// there, and count the full (optionally filtered) chain for Total. The match
// predicate, when given, also filters the fetched page client-side.
//
// The page fetch and the count are independent, so they run concurrently
// once the cursor is located. A page past the end of the chain yields an
// empty envelope with an accurate Total rather than wrapping around to the
// start.
func AssemblePage(ctx context.Context, src Source, req PageRequest, match Predicate) (*Envelope, error) {
	skip := (req.Page - 1) * req.Limit

	after, inRange, err := LocateCursor(ctx, src, skip, ChunkCeiling)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Items:       []Product{},
		CurrentPage: req.Page,
		Limit:       req.Limit,
	}

	var page *Page
	g, gctx := errgroup.WithContext(ctx)
	if inRange {
		g.Go(func() error {
			var fetchErr error
			page, fetchErr = src.FetchPage(gctx, req.Limit, after)
			return fetchErr
		})
	}
	g.Go(func() error {
		total, countErr := CountMatching(gctx, src, match, ChunkCeiling)
		if countErr != nil {
			return countErr
		}
		env.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if page == nil {
		return env, nil
	}

	if match == nil {
		env.Items = append(env.Items, page.Items...)
	} else {
		for _, item := range page.Items {
			if match(item) {
				env.Items = append(env.Items, item)
			}
		}
	}
	env.PageInfo = PageInfo{HasNextPage: page.HasNextPage, EndCursor: page.EndCursor}
	env.HasNextPage = page.HasNextPage

	return env, nil
}
