package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sliceworks/pizzactl/domain"
	"github.com/sliceworks/pizzactl/validate"
)

// ListIngredients fetches all ingredients.
func (c *Client) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	if err := c.do(ctx, http.MethodGet, "/ingredients", nil, nil, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient adds an ingredient. Admin only.
func (c *Client) CreateIngredient(ctx context.Context, ing domain.Ingredient) (domain.Ingredient, error) {
	if err := validate.Required("name", ing.Name); err != nil {
		return domain.Ingredient{}, err
	}
	var created domain.Ingredient
	if err := c.do(ctx, http.MethodPost, "/ingredients", nil, ing, &created); err != nil {
		return domain.Ingredient{}, err
	}
	return created, nil
}

// UpdateIngredient replaces an ingredient. Admin only.
func (c *Client) UpdateIngredient(ctx context.Context, ing domain.Ingredient) (domain.Ingredient, error) {
	if err := validate.Required("id", ing.ID); err != nil {
		return domain.Ingredient{}, err
	}
	if err := validate.Required("name", ing.Name); err != nil {
		return domain.Ingredient{}, err
	}
	var updated domain.Ingredient
	if err := c.do(ctx, http.MethodPut, "/ingredients/"+url.PathEscape(ing.ID), nil, ing, &updated); err != nil {
		return domain.Ingredient{}, err
	}
	return updated, nil
}

// DeleteIngredient removes an ingredient. Admin only.
func (c *Client) DeleteIngredient(ctx context.Context, id string) error {
	if err := validate.Required("id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/ingredients/"+url.PathEscape(id), nil, nil, nil)
}
