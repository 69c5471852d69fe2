package conversion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawEvent is the immutable input produced by a storefront tracking call.
type RawEvent struct {
	StoreID    uuid.UUID
	PixelID    string
	EventName  string
	Products   []ProductLineItem
	Currency   string
	OrderID    string
	Timestamp  time.Time
	CustomData map[string]interface{}
}

// ProductLineItem is one cart/order line as reported by the storefront.
type ProductLineItem struct {
	ID        string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Content is one enriched catalog line in the outbound payload.
type Content struct {
	ID        string          `json:"id"`
	Quantity  int             `json:"quantity"`
	ItemPrice decimal.Decimal `json:"item_price"`
}

// Classification is the classifier's verdict for a single event. It is built
// once and never mutated afterwards.
type Classification struct {
	IsCatalogEvent bool
	CatalogID      uuid.UUID
	ContentIDs     []string
	Contents       []Content
	TotalValue     decimal.Decimal
	Currency       string

	// Reason explains a non-catalog verdict; empty when eligible.
	Reason string
}
