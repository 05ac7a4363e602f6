package handler

import (
	"context"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/mkoren/storage-labels/internal/repository"
)

// searchStore issues the two ranked full-text queries. The container
// and item lookups are independent so they can run concurrently.
type searchStore interface {
	SearchContainers(ctx context.Context, match string) ([]repository.SearchResult, error)
	SearchItems(ctx context.Context, match string) ([]repository.SearchResult, error)
}

// SearchHandler implements GET /api/search.
type SearchHandler struct {
	Store searchStore
}

// Search runs a relevance-ranked search across container descriptions
// and item names/descriptions, merging both result sets by score.
func (h *SearchHandler) Search(c echo.Context) error {
	start := time.Now()

	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return errJSON(c, http.StatusBadRequest, "query_required",
			"please provide a search query using ?q=your-search-term")
	}

	match, ok := repository.BooleanMatchQuery(query)
	if !ok {
		// Nothing searchable survived tokenization; skip the backing
		// store entirely.
		return c.JSON(http.StatusOK, repository.SearchResponse{
			Query:           query,
			Results:         []repository.SearchResult{},
			Total:           0,
			ExecutionTimeMS: time.Since(start).Milliseconds(),
		})
	}

	var containerResults, itemResults []repository.SearchResult
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		containerResults, err = h.Store.SearchContainers(ctx, match)
		return err
	})
	g.Go(func() error {
		var err error
		itemResults, err = h.Store.SearchItems(ctx, match)
		return err
	})
	if err := g.Wait(); err != nil {
		// No partial results: either both queries succeed or the whole
		// search fails.
		log.Printf("search %q: %v", query, err)
		return errJSON(c, http.StatusInternalServerError, "search_failed", "search failed")
	}

	merged := make([]repository.SearchResult, 0, len(containerResults)+len(itemResults))
	merged = append(merged, containerResults...)
	merged = append(merged, itemResults...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})

	return c.JSON(http.StatusOK, repository.SearchResponse{
		Query:           query,
		Results:         merged,
		Total:           len(merged),
		ExecutionTimeMS: time.Since(start).Milliseconds(),
	})
}
