package conversion

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func products(items ...ProductLineItem) []ProductLineItem {
	return items
}

func item(id string, quantity int, price float64) ProductLineItem {
	return ProductLineItem{ID: id, Quantity: quantity, UnitPrice: decimal.NewFromFloat(price)}
}

func TestClassify_EligibleEvent(t *testing.T) {
	catalogID := uuid.New()
	c := Classify(Purchase, products(item("p1", 2, 10), item("p2", 1, 5)), "USD", catalogID)

	require.True(t, c.IsCatalogEvent)
	require.Equal(t, catalogID, c.CatalogID)
	require.Equal(t, []string{"p1", "p2"}, c.ContentIDs)
	require.Len(t, c.Contents, 2)
	require.True(t, c.TotalValue.Equal(decimal.NewFromInt(25)), "got %s", c.TotalValue)
	require.Equal(t, "USD", c.Currency)
	require.Empty(t, c.Reason)
}

func TestClassify_IneligibleName(t *testing.T) {
	c := Classify(PageView, products(item("p1", 1, 10)), "USD", uuid.New())
	require.False(t, c.IsCatalogEvent)
	require.Equal(t, "event name not catalog-eligible", c.Reason)
}

func TestClassify_NoProducts(t *testing.T) {
	c := Classify(ViewContent, nil, "USD", uuid.New())
	require.False(t, c.IsCatalogEvent)
	require.Equal(t, "no products in payload", c.Reason)
	require.Equal(t, "USD", c.Currency)
}

func TestClassify_NoCatalog(t *testing.T) {
	c := Classify(Purchase, products(item("p1", 1, 10)), "USD", uuid.Nil)
	require.False(t, c.IsCatalogEvent)
	require.Equal(t, "no catalog mapping resolved", c.Reason)
}

func TestClassify_NoCurrency(t *testing.T) {
	c := Classify(Purchase, products(item("p1", 1, 10)), "", uuid.New())
	require.False(t, c.IsCatalogEvent)
	require.Equal(t, "currency missing", c.Reason)
}

func TestClassify_SentinelIDsFiltered(t *testing.T) {
	c := Classify(AddToCart, products(
		item("undefined", 1, 10),
		item("null", 1, 10),
		item("  ", 1, 10),
		item("p1", 1, 10),
	), "USD", uuid.New())

	require.True(t, c.IsCatalogEvent)
	require.Equal(t, []string{"p1"}, c.ContentIDs)
	require.True(t, c.TotalValue.Equal(decimal.NewFromInt(10)))
}

func TestClassify_AllIDsInvalid(t *testing.T) {
	c := Classify(AddToCart, products(item("undefined", 1, 10), item("", 1, 5)), "USD", uuid.New())
	require.False(t, c.IsCatalogEvent)
	require.Equal(t, "no valid product ids", c.Reason)
}

func TestClassify_QuantityAndPriceDefaults(t *testing.T) {
	c := Classify(Purchase, products(
		ProductLineItem{ID: "p1"},
		item("p2", -3, -5),
	), "EUR", uuid.New())

	require.True(t, c.IsCatalogEvent)
	require.Equal(t, 1, c.Contents[0].Quantity)
	require.True(t, c.Contents[0].ItemPrice.IsZero())
	require.Equal(t, 1, c.Contents[1].Quantity)
	require.True(t, c.Contents[1].ItemPrice.IsZero())
	require.True(t, c.TotalValue.IsZero())
}

func TestClassify_TrimsContentIDs(t *testing.T) {
	c := Classify(Purchase, products(item(" p1 ", 1, 100)), "USD", uuid.New())
	require.True(t, c.IsCatalogEvent)
	require.Equal(t, []string{"p1"}, c.ContentIDs)
	require.True(t, c.TotalValue.Equal(decimal.NewFromInt(100)))
}

func TestValidContentID(t *testing.T) {
	cases := map[string]bool{
		"p1":        true,
		"123":       true,
		"":          false,
		"   ":       false,
		"undefined": false,
		"UNDEFINED": false,
		"null":      false,
		"Null":      false,
	}
	for id, want := range cases {
		require.Equal(t, want, ValidContentID(id), "id %q", id)
	}
}
