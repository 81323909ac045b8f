package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jellydator/ttlcache/v3"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/validate"
)

// PizzaFilter narrows catalog listings.
type PizzaFilter struct {
	Vegetarian *bool
	Search     string
}

func (f PizzaFilter) query() url.Values {
	q := url.Values{}
	if f.Vegetarian != nil {
		q.Set("vegetarian", strconv.FormatBool(*f.Vegetarian))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

func (f PizzaFilter) cacheKey() string {
	return "pizzas?" + f.query().Encode()
}

// ListPizzas fetches the catalog, serving repeated identical listings from
// the in-memory menu cache until the TTL lapses. Admin catalog writes
// invalidate the cache.
func (c *Client) ListPizzas(ctx context.Context, f PizzaFilter) ([]domain.Pizza, error) {
	if item := c.menu.Get(f.cacheKey()); item != nil {
		return item.Value(), nil
	}
	var pizzas []domain.Pizza
	if err := c.do(ctx, http.MethodGet, "/pizzas", f.query(), nil, &pizzas); err != nil {
		return nil, err
	}
	c.menu.Set(f.cacheKey(), pizzas, ttlcache.DefaultTTL)
	return pizzas, nil
}

// GetPizza fetches one catalog product.
func (c *Client) GetPizza(ctx context.Context, id string) (domain.Pizza, error) {
	if err := validate.Required("id", id); err != nil {
		return domain.Pizza{}, err
	}
	var p domain.Pizza
	if err := c.do(ctx, http.MethodGet, "/pizzas/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return domain.Pizza{}, err
	}
	return p, nil
}

// CreatePizza adds a product to the catalog. Admin only.
func (c *Client) CreatePizza(ctx context.Context, p domain.Pizza) (domain.Pizza, error) {
	if err := validate.Required("name", p.Name); err != nil {
		return domain.Pizza{}, err
	}
	if !p.Price.IsPositive() {
		return domain.Pizza{}, serrors.NewValidation("price", "must be greater than zero")
	}
	if p.Size != "" && !domain.ValidSize(p.Size) {
		return domain.Pizza{}, serrors.NewValidation("size", "must be small, medium or large")
	}

	var created domain.Pizza
	if err := c.do(ctx, http.MethodPost, "/pizzas", nil, p, &created); err != nil {
		return domain.Pizza{}, err
	}
	c.menu.DeleteAll()
	return created, nil
}

// UpdatePizza replaces a catalog product. Admin only.
func (c *Client) UpdatePizza(ctx context.Context, p domain.Pizza) (domain.Pizza, error) {
	if err := validate.Required("id", p.ID); err != nil {
		return domain.Pizza{}, err
	}
	var updated domain.Pizza
	if err := c.do(ctx, http.MethodPut, "/pizzas/"+url.PathEscape(p.ID), nil, p, &updated); err != nil {
		return domain.Pizza{}, err
	}
	c.menu.DeleteAll()
	return updated, nil
}

// DeletePizza removes a product from the catalog. Admin only.
func (c *Client) DeletePizza(ctx context.Context, id string) error {
	if err := validate.Required("id", id); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodDelete, "/pizzas/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	c.menu.DeleteAll()
	return nil
}
