package catalog

import "context"

// LocateCursor walks the chain in chunks of at most ceiling to find the
// cursor immediately preceding the item at offset skip. A nil cursor with
// ok=true means "start from the beginning" (skip <= 0, no upstream call is
// made). ok=false means the chain ended before the requested offset: the
// page is out of range.
//
// remaining is decremented by the requested chunk size, not by the number of
// items actually returned; a short page with hasNextPage=false ends the walk.
func LocateCursor(ctx context.Context, src Source, skip, ceiling int) (*Cursor, bool, error) {
	if skip <= 0 {
		return nil, true, nil
	}

	var cursor *Cursor
	remaining := skip

	for remaining > 0 {
		chunk := remaining
		if chunk > ceiling {
			chunk = ceiling
		}

		page, err := src.FetchPageInfo(ctx, chunk, cursor)
		if err != nil {
			return nil, false, err
		}

		cursor = page.EndCursor
		remaining -= chunk

		if !page.HasNextPage && remaining > 0 {
			return nil, false, nil
		}
	}

	return cursor, true, nil
}
