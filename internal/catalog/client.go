package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"posdesk/internal/transport"

	"github.com/shopspring/decimal"
)

type categoryWire struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BgColor     string `json:"bgColor"`
	ImageURL    string `json:"imgUrl"`
	Items       int    `json:"items"`
}

type itemWire struct {
	ItemID      string  `json:"itemId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId"`
	ImageURL    string  `json:"imgUrl"`
}

// Client reads the category and item catalog from the backend. The catalog
// is the data source for building cart lines; presentation stays elsewhere.
type Client struct {
	http *transport.Client
}

func NewClient(http *transport.Client) *Client {
	return &Client{http: http}
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	res, err := c.http.Do(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, fmt.Errorf("list categories: status %d: %s", res.Status, string(res.Body))
	}

	var wire []categoryWire
	if err := res.Decode(&wire); err != nil {
		return nil, err
	}

	out := make([]Category, 0, len(wire))
	for _, w := range wire {
		out = append(out, Category{
			CategoryID:  w.CategoryID,
			Name:        w.Name,
			Description: w.Description,
			BgColor:     w.BgColor,
			ImageURL:    w.ImageURL,
			Items:       w.Items,
		})
	}
	return out, nil
}

func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	res, err := c.http.Do(ctx, http.MethodGet, "/items", nil)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, fmt.Errorf("list items: status %d: %s", res.Status, string(res.Body))
	}

	var wire []itemWire
	if err := res.Decode(&wire); err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(wire))
	for _, w := range wire {
		out = append(out, Item{
			ItemID:      w.ItemID,
			Name:        w.Name,
			Description: w.Description,
			Price:       decimal.NewFromFloat(w.Price),
			CategoryID:  w.CategoryID,
			ImageURL:    w.ImageURL,
		})
	}
	return out, nil
}

// FilterItems narrows a fetched item list by case-insensitive name match
// and optional category. Empty term and category match everything.
func FilterItems(items []Item, term, categoryID string) []Item {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if categoryID != "" && it.CategoryID != categoryID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		out = append(out, it)
	}
	return out
}
