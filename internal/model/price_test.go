package model_test

import (
	"encoding/json"
	"testing"

	"wellness-events/internal/model"
	apperrors "wellness-events/pkg/app_errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		free  bool
		label string
	}{
		{"free", "free", true, "Free event"},
		{"FREE", "free", true, "Free event"},
		{" 25 ", "25", false, "Price: €25"},
		{"12.5", "12.50", false, "Price: €12.50"},
		{"0", "0", false, "Price: €0"},
		{"12.500", "12.50", false, "Price: €12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := model.ParsePrice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
			assert.Equal(t, tt.free, p.IsFree())
			assert.Equal(t, tt.label, p.Label())
			assert.NoError(t, p.Validate())
		})
	}

	for _, bad := range []string{"", "-5", "ten", "€25", "12.345", "0.001"} {
		t.Run("Failed - "+bad, func(t *testing.T) {
			_, err := model.ParsePrice(bad)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)
		})
	}
}

func TestPrice_ZeroValueIsUnset(t *testing.T) {
	var p model.Price
	assert.ErrorIs(t, p.Validate(), apperrors.ErrInvalidPrice)
	assert.False(t, p.IsFree())
}

func TestNewPrice(t *testing.T) {
	_, err := model.NewPrice(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)

	_, err = model.NewPrice(decimal.RequireFromString("9.999"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)

	p, err := model.NewPrice(decimal.RequireFromString("40"))
	require.NoError(t, err)
	assert.True(t, p.Amount().Equal(decimal.NewFromInt(40)))
}

func TestPrice_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Price model.Price `json:"price"`
	}{model.Free})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"free"}`, string(out))

	var fromNumber model.Price
	require.NoError(t, json.Unmarshal([]byte(`25`), &fromNumber))
	assert.Equal(t, "25", fromNumber.String())

	var fromString model.Price
	require.NoError(t, json.Unmarshal([]byte(`"Free"`), &fromString))
	assert.True(t, fromString.IsFree())

	var bad model.Price
	assert.ErrorIs(t, json.Unmarshal([]byte(`true`), &bad), apperrors.ErrInvalidPrice)
}
