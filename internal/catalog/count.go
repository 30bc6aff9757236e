package catalog

import "context"

// CountMatching walks the full chain from the beginning and returns the
// number of items, or the number matching the predicate when one is given.
// Upstream offers no native count for filtered queries, so this is always a
// full scan: O(total items / ceiling) round-trips. For large filtered lists
// this dominates request latency.
func CountMatching(ctx context.Context, src Source, match Predicate, ceiling int) (int, error) {
	count := 0
	var cursor *Cursor

	for {
		page, err := src.FetchPage(ctx, ceiling, cursor)
		if err != nil {
			return 0, err
		}

		if match == nil {
			count += len(page.Items)
		} else {
			for _, item := range page.Items {
				if match(item) {
					count++
				}
			}
		}

		if !page.HasNextPage {
			return count, nil
		}
		cursor = page.EndCursor
	}
}
