package cart

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceworks/pizzactl/domain"
	"github.com/sliceworks/pizzactl/store"
)

func pizza(id, name string, price string) domain.Pizza {
	return domain.Pizza{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), zerolog.Nop())

	s.Add(pizza("p1", "Margherita", "10"), domain.SizeMedium)
	s.Add(pizza("p1", "Margherita", "10"), domain.SizeMedium)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddIgnoresMissingID(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), zerolog.Nop())
	s.Add(domain.Pizza{Name: "ghost"}, domain.SizeSmall)
	assert.Empty(t, s.Lines())
}

func TestRemove(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), zerolog.Nop())
	s.Add(pizza("p1", "Margherita", "10"), domain.SizeMedium)
	s.Add(pizza("p2", "Diavola", "12"), domain.SizeLarge)

	s.Remove("p1")

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
}

func TestSetQuantityGuards(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), zerolog.Nop())
	s.Add(pizza("p1", "Margherita", "10"), domain.SizeMedium)

	s.SetQuantity("p1", "abc")
	s.SetQuantity("p1", "0")
	s.SetQuantity("p1", "-2")
	assert.Equal(t, 1, s.Lines()[0].Quantity)

	s.SetQuantity("p1", "3")
	assert.Equal(t, 3, s.Lines()[0].Quantity)
}

func TestTotalAndCount(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), zerolog.Nop())
	s.Add(pizza("p1", "Margherita", "10"), domain.SizeMedium)
	s.SetQuantity("p1", "2")
	s.Add(pizza("p2", "Diavola", "5"), domain.SizeSmall)

	assert.True(t, s.Total().Equal(decimal.RequireFromString("25")),
		"total = %s", s.Total())
	assert.Equal(t, 3, s.Count())
}

func TestClear(t *testing.T) {
	kv := store.NewMemoryStore()
	s := NewStore(kv, zerolog.Nop())
	s.Add(pizza("p1", "Margherita", "10"), domain.SizeMedium)

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.True(t, s.Total().IsZero())

	var persisted []domain.CartLine
	require.NoError(t, kv.Get(store.KeyCart, &persisted))
	assert.Empty(t, persisted)
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := store.NewMemoryStore()

	s := NewStore(kv, zerolog.Nop())
	s.Add(pizza("p1", "Margherita", "10.50"), domain.SizeMedium)
	s.Add(pizza("p2", "Diavola", "12"), domain.SizeLarge)
	s.SetQuantity("p2", "4")

	// A fresh store over the same backend must see the same lines.
	restored := NewStore(kv, zerolog.Nop())
	want := s.Lines()
	got := restored.Lines()
	require.Len(t, got, len(want))
	byID := map[string]domain.CartLine{}
	for _, l := range got {
		byID[l.ProductID] = l
	}
	for _, l := range want {
		r, ok := byID[l.ProductID]
		require.True(t, ok, "missing line %s", l.ProductID)
		assert.Equal(t, l.Quantity, r.Quantity)
		assert.True(t, l.UnitPrice.Equal(r.UnitPrice))
	}
}

func TestCorruptPersistedCartDefaultsEmpty(t *testing.T) {
	kv := store.NewMemoryStore()
	kv.SetRaw(store.KeyCart, []byte("[{broken"))

	s := NewStore(kv, zerolog.Nop())
	assert.Empty(t, s.Lines())
}
