package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	legal := map[[2]OrderStatus]bool{
		{OrderStatusPending, OrderStatusConfirmed}:   true,
		{OrderStatusPending, OrderStatusCancelled}:   true,
		{OrderStatusConfirmed, OrderStatusShipped}:   true,
		{OrderStatusConfirmed, OrderStatusCancelled}: true,
		{OrderStatusShipped, OrderStatusDelivered}:   true,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, legal[[2]OrderStatus{from, to}], from.CanTransitionTo(to))
			})
		}
	}
}

func TestDeliveredAndCancelledAreTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		for _, to := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
			assert.False(t, s.CanTransitionTo(to), "%s -> %s", s, to)
		}
	}
}

func TestOptionJSON(t *testing.T) {
	v := Variant{Size: Some("M"), Price: 500, Stock: 3}

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":"M","color":null,"price":500,"stock":3}`, string(data))

	var back Variant
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Size.Equal(Some("M")))
	assert.False(t, back.Color.IsSome())
	assert.Equal(t, "none", back.Color.OrElse("none"))
}

func TestOptionScan(t *testing.T) {
	var o Option[string]
	require.NoError(t, o.Scan([]byte("red")))
	assert.True(t, o.Equal(Some("red")))

	require.NoError(t, o.Scan(nil))
	assert.False(t, o.IsSome())

	v, err := Some("blue").Value()
	require.NoError(t, err)
	assert.Equal(t, "blue", v)

	v, err = None[string]().Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFindVariant(t *testing.T) {
	p := &Product{Variants: []Variant{
		{Size: Some("S"), Color: Some("red")},
		{Size: Some("S")},
		{Color: Some("red")},
	}}

	idx, ok := p.FindVariant(Some("S"), None[string]())
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = p.FindVariant(None[string](), Some("red"))
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = p.FindVariant(Some("XL"), None[string]())
	assert.False(t, ok)
}

func TestProductCloneIsDeep(t *testing.T) {
	p := &Product{Variants: []Variant{{Stock: 5}}, Images: ImageRefs{{Key: "a"}}}
	c := p.Clone()
	c.Variants[0].Stock = 0
	c.Images[0].Key = "b"

	assert.EqualValues(t, 5, p.Variants[0].Stock)
	assert.Equal(t, "a", p.Images[0].Key)
}

func TestSumItemsAndHasSeller(t *testing.T) {
	items := []OrderItem{
		{Seller: "s1", Price: 250, Quantity: 2},
		{Seller: "s2", Price: 1000, Quantity: 1},
	}
	o := &Order{Items: items}

	assert.EqualValues(t, 1500, SumItems(items))
	assert.True(t, o.HasSeller("s2"))
	assert.False(t, o.HasSeller("buyer"))
}

func TestImageRefsScan(t *testing.T) {
	var refs ImageRefs
	require.NoError(t, refs.Scan([]byte(`[{"key":"k1","url":"https://cdn/k1"}]`)))
	require.Len(t, refs, 1)
	assert.Equal(t, "https://cdn/k1", refs[0].URL)

	v, err := ImageRefs(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestCheckedArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(a, b int64) (int64, bool)
		a, b   int64
		want   int64
		wantOK bool
	}{
		{"add", CheckedAdd, 2, 3, 5, true},
		{"add negative", CheckedAdd, 2, -3, -1, true},
		{"add overflow", CheckedAdd, math.MaxInt64, 1, 0, false},
		{"add underflow", CheckedAdd, math.MinInt64, -1, 0, false},
		{"mul", CheckedMul, 1200, 3, 3600, true},
		{"mul zero", CheckedMul, math.MaxInt64, 0, 0, true},
		{"mul overflow", CheckedMul, math.MaxInt64/2 + 1, 2, 0, false},
		{"mul min by minus one", CheckedMul, math.MinInt64, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
