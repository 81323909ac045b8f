package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/sliceworks/pizzactl/errors"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"ada@example.com", true},
		{"Ada.Lovelace+orders@sub.example.co", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		err := Email(tt.value)
		if tt.ok {
			assert.NoError(t, err, tt.value)
		} else {
			assert.Error(t, err, tt.value)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		strength int
		ok       bool
	}{
		{"empty", "", 0, false},
		{"too short", "Ab1!", 4, false},
		{"long but weak", "aaaaaaaa", 2, false},
		{"acceptable", "abcdefg1", 3, true},
		{"strong", "Abcdef1!", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strength, err := Password(tt.value)
			assert.Equal(t, tt.strength, strength)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var ve *serrors.ValidationError
				assert.ErrorAs(t, err, &ve)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone("+1234567890"))
	assert.NoError(t, Phone("(123) 456-7890"))
	assert.Error(t, Phone(""))
	assert.Error(t, Phone("12"))
}

func TestPrice(t *testing.T) {
	d, err := Price("12.50")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = Price("abc")
	assert.Error(t, err)
	_, err = Price("0")
	assert.Error(t, err)
	_, err = Price("-3")
	assert.Error(t, err)
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("name", "Margherita"))
	assert.Error(t, Required("name", "   "))
}
