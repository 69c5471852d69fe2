package conversion

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidContentID rejects empty ids and the sentinel values the storefront
// script emits when a product id is missing on the page.
func ValidContentID(id string) bool {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return false
	}
	switch strings.ToLower(trimmed) {
	case "undefined", "null":
		return false
	}
	return true
}

// Classify decides whether an event qualifies for catalog enrichment. It is
// total: every input yields exactly one Classification, there is no error path.
func Classify(name CanonicalEvent, products []ProductLineItem, currency string, catalogID uuid.UUID) Classification {
	if !name.CatalogEligible() {
		return Classification{Reason: "event name not catalog-eligible", Currency: currency}
	}
	if len(products) == 0 {
		return Classification{Reason: "no products in payload", Currency: currency}
	}
	if catalogID == uuid.Nil {
		return Classification{Reason: "no catalog mapping resolved", Currency: currency}
	}
	if currency == "" {
		return Classification{Reason: "currency missing"}
	}

	contentIDs := make([]string, 0, len(products))
	contents := make([]Content, 0, len(products))
	total := decimal.Zero
	for _, p := range products {
		if !ValidContentID(p.ID) {
			continue
		}
		quantity := p.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		price := p.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		id := strings.TrimSpace(p.ID)
		contentIDs = append(contentIDs, id)
		contents = append(contents, Content{
			ID:        id,
			Quantity:  quantity,
			ItemPrice: price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
	}
	if len(contentIDs) == 0 {
		return Classification{Reason: "no valid product ids", Currency: currency}
	}

	return Classification{
		IsCatalogEvent: true,
		CatalogID:      catalogID,
		ContentIDs:     contentIDs,
		Contents:       contents,
		TotalValue:     total,
		Currency:       currency,
	}
}
