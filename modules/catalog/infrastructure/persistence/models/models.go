package models

import "time"

type Store struct {
	ID          string
	Domain      string
	AccessToken string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Pixel struct {
	ID         string
	StoreID    string
	ExternalID string
	CatalogID  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Catalog struct {
	ID         string
	StoreID    string
	ExternalID string
	Name       string
	Enabled    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
