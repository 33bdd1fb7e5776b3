// Package converters maps items between the domain model and the JSON
// shapes served by `cadence serve` and consumed by the remote client.
package converters

import (
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// ItemDTO is the wire form of an item.
type ItemDTO struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	Bucket    string    `json:"bucket"`
	Position  int       `json:"position"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID lets the CLI quiet mode print the id.
func (d ItemDTO) GetID() string { return d.ID }

// ItemList wraps a list response.
type ItemList struct {
	Items []ItemDTO `json:"items"`
}

// CreateItemBody is the body of POST /api/scopes/:scope/items.
type CreateItemBody struct {
	ID     string `json:"id,omitempty"`
	Bucket string `json:"bucket" binding:"required"`
	Title  string `json:"title"`
	Notes  string `json:"notes,omitempty"`
}

// PositionBody is the body of PATCH /api/items/:id/position.
type PositionBody struct {
	Bucket   string `json:"bucket" binding:"required"`
	Position *int   `json:"position" binding:"required"`
}

// ItemToDTO converts a domain item to its wire form.
func ItemToDTO(it models.Item) ItemDTO {
	return ItemDTO{
		ID:        it.ID.String(),
		Scope:     it.Scope.String(),
		Bucket:    it.Bucket.String(),
		Position:  it.Position,
		Title:     it.Payload.Title,
		Notes:     it.Payload.Notes,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// ItemsToDTOs converts a slice, never returning nil so the JSON is always a list.
func ItemsToDTOs(items []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ItemToDTO(it))
	}
	return out
}

// ItemFromDTO converts a wire item back into the domain model.
// Ids and buckets must be non-empty and positions non-negative.
func ItemFromDTO(d ItemDTO) (models.Item, error) {
	if strings.TrimSpace(d.ID) == "" {
		return models.Item{}, fmt.Errorf("item without id")
	}
	if strings.TrimSpace(d.Bucket) == "" {
		return models.Item{}, fmt.Errorf("item %s without bucket", d.ID)
	}
	if d.Position < 0 {
		return models.Item{}, fmt.Errorf("item %s has negative position %d", d.ID, d.Position)
	}
	return models.Item{
		ID:        types.ItemID(d.ID),
		Scope:     types.Scope(d.Scope),
		Bucket:    types.Bucket(d.Bucket),
		Position:  d.Position,
		Payload:   models.Payload{Title: d.Title, Notes: d.Notes},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// ItemsFromDTOs converts every element, failing on the first invalid one.
func ItemsFromDTOs(ds []ItemDTO) ([]models.Item, error) {
	out := make([]models.Item, 0, len(ds))
	for _, d := range ds {
		it, err := ItemFromDTO(d)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}
