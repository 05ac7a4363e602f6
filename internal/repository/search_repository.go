package repository

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
)

// searchLimit caps each ranked query to the top matches by relevance.
const searchLimit = 50

// SearchResult is one ranked match, either a container or an item.
// Container fields are always present; item fields only for type "item".
type SearchResult struct {
	Type      string  `json:"type"` // "container" | "item"
	Relevance float64 `json:"relevance"`

	ContainerID           string  `json:"container_id"`
	ContainerQRCode       string  `json:"container_qr_code"`
	ContainerColor        string  `json:"container_color"`
	ContainerNumber       int     `json:"container_number"`
	ContainerDescription  *string `json:"container_description,omitempty"`
	ContainerLocationText *string `json:"container_location_text,omitempty"`

	ItemID          *string `json:"item_id,omitempty"`
	ItemName        *string `json:"item_name,omitempty"`
	ItemDescription *string `json:"item_description,omitempty"`
	ItemQuantity    *int    `json:"item_quantity,omitempty"`
	ItemPhotoURL    *string `json:"item_photo_url,omitempty"`
}

// SearchResponse is the full search reply.
type SearchResponse struct {
	Query           string         `json:"query"`
	Results         []SearchResult `json:"results"`
	Total           int            `json:"total"`
	ExecutionTimeMS int64          `json:"execution_time_ms"`
}

var nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)

// BooleanMatchQuery turns free-form user input into a MySQL boolean-mode
// MATCH expression requiring every token: special characters are
// stripped, the remaining words are each prefixed with "+" and joined by
// spaces ("lamp!!shade" -> "+lamp +shade"). ok is false when nothing
// searchable survives the transform.
func BooleanMatchQuery(query string) (match string, ok bool) {
	cleaned := nonWordOrSpace.ReplaceAllString(query, " ")
	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return "", false
	}
	for i, tok := range tokens {
		tokens[i] = "+" + tok
	}
	return strings.Join(tokens, " "), true
}

// SearchRepo issues ranked full-text queries against the FULLTEXT
// indexes on containers and items.
type SearchRepo struct {
	db *sql.DB
}

// NewSearchRepo constructs a SearchRepo with the given DB handle.
func NewSearchRepo(db *sql.DB) *SearchRepo {
	return &SearchRepo{db: db}
}

// SearchContainers ranks containers by how well their description
// matches the boolean-mode expression, best first, capped at 50.
func (r *SearchRepo) SearchContainers(ctx context.Context, match string) ([]SearchResult, error) {
	const q = `SELECT c.id, c.qr_code, c.color, c.number, c.description, c.location_text,
	                  MATCH(c.description) AGAINST(? IN BOOLEAN MODE) AS relevance
	           FROM containers c
	           WHERE MATCH(c.description) AGAINST(? IN BOOLEAN MODE)
	           ORDER BY relevance DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, match, match, searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]SearchResult, 0)
	for rows.Next() {
		res := SearchResult{Type: "container"}
		if err := rows.Scan(
			&res.ContainerID, &res.ContainerQRCode, &res.ContainerColor, &res.ContainerNumber,
			&res.ContainerDescription, &res.ContainerLocationText, &res.Relevance,
		); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// SearchItems ranks items by how well their name and description match
// the boolean-mode expression, best first, capped at 50. Each result
// carries the owning container's denormalized fields.
func (r *SearchRepo) SearchItems(ctx context.Context, match string) ([]SearchResult, error) {
	const q = `SELECT i.id, i.name, i.description, i.quantity, i.photo_url,
	                  c.id, c.qr_code, c.color, c.number, c.description, c.location_text,
	                  MATCH(i.name, i.description) AGAINST(? IN BOOLEAN MODE) AS relevance
	           FROM items i
	           JOIN containers c ON c.id = i.container_id
	           WHERE MATCH(i.name, i.description) AGAINST(? IN BOOLEAN MODE)
	           ORDER BY relevance DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, match, match, searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]SearchResult, 0)
	for rows.Next() {
		res := SearchResult{Type: "item"}
		if err := rows.Scan(
			&res.ItemID, &res.ItemName, &res.ItemDescription, &res.ItemQuantity, &res.ItemPhotoURL,
			&res.ContainerID, &res.ContainerQRCode, &res.ContainerColor, &res.ContainerNumber,
			&res.ContainerDescription, &res.ContainerLocationText, &res.Relevance,
		); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
