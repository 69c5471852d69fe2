package dtos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validTrackDTO() *TrackEventDTO {
	return &TrackEventDTO{
		StoreID:   uuid.NewString(),
		PixelID:   "px-1",
		EventName: "Purchase",
		Currency:  "usd",
		OrderID:   " 1001 ",
		Timestamp: 1717243200,
	}
}

func TestTrackEventDTO_Ok(t *testing.T) {
	dto := validTrackDTO()
	errs, ok := dto.Ok()
	require.True(t, ok)
	require.Empty(t, errs)
	require.Equal(t, "USD", dto.Currency)
	require.Equal(t, "1001", dto.OrderID)
}

func TestTrackEventDTO_RequiredFields(t *testing.T) {
	dto := &TrackEventDTO{}
	errs, ok := dto.Ok()
	require.False(t, ok)
	require.Contains(t, errs, "StoreID")
	require.Contains(t, errs, "PixelID")
	require.Contains(t, errs, "EventName")
}

func TestTrackEventDTO_RejectsMalformedStoreID(t *testing.T) {
	dto := validTrackDTO()
	dto.StoreID = "not-a-uuid"
	_, ok := dto.Ok()
	require.False(t, ok)
}

func TestTrackEventDTO_RejectsBadCurrency(t *testing.T) {
	dto := validTrackDTO()
	dto.Currency = "DOLLARS"
	_, ok := dto.Ok()
	require.False(t, ok)
}

func TestTrackEventDTO_CurrencyOptional(t *testing.T) {
	dto := validTrackDTO()
	dto.Currency = ""
	_, ok := dto.Ok()
	require.True(t, ok)
}

func TestTrackEventDTO_ToRawEvent(t *testing.T) {
	dto := validTrackDTO()
	dto.Products = []TrackProductDTO{
		{ID: "p1", Quantity: 2, Price: 19.99},
	}
	_, ok := dto.Ok()
	require.True(t, ok)

	event, err := dto.ToRawEvent()
	require.NoError(t, err)
	require.Equal(t, dto.StoreID, event.StoreID.String())
	require.Equal(t, "px-1", event.PixelID)
	require.Equal(t, time.Unix(1717243200, 0), event.Timestamp)
	require.Len(t, event.Products, 1)
	require.Equal(t, "p1", event.Products[0].ID)
	require.Equal(t, 2, event.Products[0].Quantity)
	require.Equal(t, "19.99", event.Products[0].UnitPrice.String())
}

func TestTrackEventDTO_ZeroTimestampStaysZero(t *testing.T) {
	dto := validTrackDTO()
	dto.Timestamp = 0
	event, err := dto.ToRawEvent()
	require.NoError(t, err)
	require.True(t, event.Timestamp.IsZero())
}

func TestCoerceID(t *testing.T) {
	// Storefront scripts send product ids as strings, raw numbers, or
	// whatever JSON type the theme happened to emit.
	cases := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string", "gid-123", "gid-123"},
		{"float", float64(42), "42"},
		{"float with fraction", 42.5, "42.5"},
		{"int", 7, "7"},
		{"int64", int64(9000000001), "9000000001"},
		{"json number", json.Number("123456789012345"), "123456789012345"},
		{"nil", nil, ""},
		{"bool falls back to json", true, "true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, coerceID(tc.in))
		})
	}
}
