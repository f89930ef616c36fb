package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice_RoundsHalfUp(t *testing.T) {
	tests := map[string]string{
		"3.005":  "3.01",
		"9.995":  "10.00",
		"2.5":    "2.50",
		"1.004":  "1.00",
		"0.005":  "0.01",
		"10":     "10.00",
		"12.345": "12.35",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			p := NewPrice(decimal.RequireFromString(in))
			assert.Equal(t, want, p.String())
		})
	}
}

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice("19.999")
	require.NoError(t, err)
	assert.Equal(t, "20.00", p.String())

	_, err = ParsePrice("abc")
	assert.Error(t, err)
}

func TestPrice_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Price `json:"price"`
	}{MustParsePrice("3")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":3.00}`, string(b))
	assert.Contains(t, string(b), "3.00")

	var in struct {
		Price Price `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":3.005}`), &in))
	assert.Equal(t, "3.005", in.Price.Decimal.String())
	assert.Equal(t, "3.01", in.Price.Normalized().String())

	require.NoError(t, json.Unmarshal([]byte(`{"price":"4.5"}`), &in))
	assert.Equal(t, "4.50", in.Price.String())

	assert.Error(t, json.Unmarshal([]byte(`{"price":"x"}`), &in))
}

func TestPrice_ScanValue(t *testing.T) {
	var p Price
	require.NoError(t, p.Scan("12.30"))
	assert.Equal(t, "12.30", p.String())

	require.NoError(t, p.Scan(7.5))
	assert.Equal(t, "7.50", p.String())

	v, err := MustParsePrice("12.3").Value()
	require.NoError(t, err)
	assert.Equal(t, "12.3", v)
}

func TestProductPatch_Apply(t *testing.T) {
	desc := "old"
	p := &Product{Name: "Coffee", Description: &desc, Price: MustParsePrice("4"), CategoryID: 1, Stock: 3, Active: true}

	name := "Tea"
	price := MustParsePrice("2.5")
	ProductPatch{Name: &name, Price: &price}.Apply(p)

	assert.Equal(t, "Tea", p.Name)
	assert.Equal(t, "2.50", p.Price.String())
	assert.Equal(t, "old", *p.Description)
	assert.Equal(t, int64(1), p.CategoryID)
	assert.Equal(t, 3, p.Stock)
	assert.True(t, p.Active)
}

func TestInputs_Normalize(t *testing.T) {
	in := ProductInput{Name: "  Tea ", Description: strPtrForTest("  leaf "), Price: Price{decimal.RequireFromString("1.005")}}
	in.Normalize()
	assert.Equal(t, "Tea", in.Name)
	assert.Equal(t, "leaf", *in.Description)
	assert.Equal(t, "1.01", in.Price.String())

	patch := ProductPatch{}
	assert.True(t, patch.Empty())
	patch.Name = strPtrForTest("  x  ")
	patch.Normalize()
	assert.False(t, patch.Empty())
	assert.Equal(t, "x", *patch.Name)

	cat := CategoryPatch{}
	assert.True(t, cat.Empty())
}

func strPtrForTest(s string) *string { return &s }
