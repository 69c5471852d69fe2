package models

import "time"

type AuditLog struct {
	ID             string
	StoreID        string
	EventID        string
	EventName      string
	IsCatalogEvent bool
	Outcome        string
	Response       []byte
	Error          string
	CreatedAt      time.Time
}

type CatalogMapping struct {
	PixelExternalID string
	CatalogID       *string
	CatalogEnabled  *bool
	AccessToken     string
	StoreEnabled    bool
}
