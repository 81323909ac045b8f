// Package prefs persists small user preferences: UI theme and favorite
// pizzas.
package prefs

import (
	"errors"

	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/store"
)

// Themes supported by the storefront.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs reads and writes preferences through the persistence port.
type Prefs struct {
	kv store.Store
}

// New wraps kv with the preferences accessors.
func New(kv store.Store) *Prefs {
	return &Prefs{kv: kv}
}

// Theme returns the stored theme, defaulting to light.
func (p *Prefs) Theme() string {
	var theme string
	if err := p.kv.Get(store.KeyTheme, &theme); err != nil || theme == "" {
		return ThemeLight
	}
	return theme
}

// SetTheme stores the theme. Only light and dark are accepted.
func (p *Prefs) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return serrors.NewValidation("theme", "must be light or dark")
	}
	return p.kv.Set(store.KeyTheme, theme)
}

// Favorites returns the stored favorite pizza IDs. Unreadable state reads
// as no favorites.
func (p *Prefs) Favorites() []string {
	var ids []string
	if err := p.kv.Get(store.KeyFavorites, &ids); err != nil {
		return nil
	}
	return ids
}

// IsFavorite reports whether pizzaID is marked as a favorite.
func (p *Prefs) IsFavorite(pizzaID string) bool {
	for _, id := range p.Favorites() {
		if id == pizzaID {
			return true
		}
	}
	return false
}

// ToggleFavorite flips pizzaID's favorite status and reports whether it is
// now a favorite.
func (p *Prefs) ToggleFavorite(pizzaID string) (bool, error) {
	if pizzaID == "" {
		return false, errors.New("pizza id is required")
	}
	ids := p.Favorites()
	for i, id := range ids {
		if id == pizzaID {
			ids = append(ids[:i], ids[i+1:]...)
			return false, p.kv.Set(store.KeyFavorites, ids)
		}
	}
	ids = append(ids, pizzaID)
	return true, p.kv.Set(store.KeyFavorites, ids)
}
