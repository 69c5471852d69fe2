package dtos

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/conversion"
	"github.com/pixelport/pixelport/pkg/constants"
	"github.com/pixelport/pixelport/pkg/serrors"
)

// TrackProductDTO accepts product ids in whatever type the storefront script
// managed to scrape; they are coerced to strings before classification.
type TrackProductDTO struct {
	ID       interface{} `json:"id"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
}

type TrackEventDTO struct {
	StoreID    string                 `json:"store_id" validate:"required,uuid"`
	PixelID    string                 `json:"pixel_id" validate:"required"`
	EventName  string                 `json:"event_name" validate:"required"`
	Products   []TrackProductDTO      `json:"products"`
	Currency   string                 `json:"currency" validate:"omitempty,len=3"`
	OrderID    string                 `json:"order_id"`
	Timestamp  int64                  `json:"timestamp"`
	CustomData map[string]interface{} `json:"custom_data"`
}

func (d *TrackEventDTO) Normalize() {
	d.StoreID = strings.TrimSpace(d.StoreID)
	d.PixelID = strings.TrimSpace(d.PixelID)
	d.EventName = strings.TrimSpace(d.EventName)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	d.OrderID = strings.TrimSpace(d.OrderID)
}

func (d *TrackEventDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	for _, err := range errs.(validator.ValidationErrors) {
		if err.Tag() == "required" {
			validationErrors[err.Field()] = serrors.NewFieldRequiredError(err.Field())
		} else {
			validationErrors[err.Field()] = serrors.NewInvalidFieldError(err.Field(), err.Tag())
		}
	}
	return validationErrors, false
}

func (d *TrackEventDTO) ToRawEvent() (*conversion.RawEvent, error) {
	storeID, err := uuid.Parse(d.StoreID)
	if err != nil {
		return nil, err
	}

	products := make([]conversion.ProductLineItem, 0, len(d.Products))
	for _, p := range d.Products {
		products = append(products, conversion.ProductLineItem{
			ID:        coerceID(p.ID),
			Quantity:  p.Quantity,
			UnitPrice: decimal.NewFromFloat(p.Price),
		})
	}

	var ts time.Time
	if d.Timestamp > 0 {
		ts = time.Unix(d.Timestamp, 0)
	}

	return &conversion.RawEvent{
		StoreID:    storeID,
		PixelID:    d.PixelID,
		EventName:  d.EventName,
		Products:   products,
		Currency:   d.Currency,
		OrderID:    d.OrderID,
		Timestamp:  ts,
		CustomData: d.CustomData,
	}, nil
}

func coerceID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		b, err := json.Marshal(id)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
