package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/catalogmapping"
	"github.com/pixelport/pixelport/modules/tracking/domain/entities/conversion"
	"github.com/pixelport/pixelport/modules/tracking/infrastructure/capi"
	"github.com/pixelport/pixelport/pkg/composables"
	"github.com/pixelport/pixelport/pkg/eventbus"
	"github.com/pixelport/pixelport/pkg/metrics"
)

// TrackResult is what the route layer hands back to the storefront. It is
// well-formed on every path, including total failure of every collaborator.
type TrackResult struct {
	IsCatalogEvent bool
	CustomData     map[string]interface{}
	EventID        string
	CatalogID      *uuid.UUID
	Outcome        conversion.DeliveryOutcome
}

// ProcessedEvent is published on the event bus after each pipeline run; the
// audit handler persists one entry per event.
type ProcessedEvent struct {
	StoreID        uuid.UUID
	EventID        string
	EventName      string
	IsCatalogEvent bool
	Outcome        conversion.DeliveryOutcome
	Response       []byte
	Error          string
	Reason         string
	OccurredAt     time.Time
}

type PipelineService struct {
	mappings   catalogmapping.Repository
	validator  *OwnershipValidator
	dispatcher capi.Dispatcher
	publisher  eventbus.EventBus
}

func NewPipelineService(
	mappings catalogmapping.Repository,
	validator *OwnershipValidator,
	dispatcher capi.Dispatcher,
	publisher eventbus.EventBus,
) *PipelineService {
	return &PipelineService{
		mappings:   mappings,
		validator:  validator,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// ProcessEvent runs one raw commerce event through the full pipeline:
// resolve mapping, classify, validate ownership, build payload, derive the
// dedup id, dispatch, classify the outcome, and record an audit entry.
// It is total: every failure degrades to a plain conversion event and the
// caller always receives a usable result. The conversion signal is never
// dropped here.
func (s *PipelineService) ProcessEvent(ctx context.Context, event *conversion.RawEvent) *TrackResult {
	name := conversion.Normalize(event.EventName)
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	logger := composables.UseLogger(ctx).WithField("store_id", event.StoreID).
		WithField("pixel_id", event.PixelID).
		WithField("event_name", name.String())

	var mapping *catalogmapping.CatalogMapping
	if m, err := s.mappings.ResolveByPixel(ctx, event.StoreID, event.PixelID); err != nil {
		// Lookup failures are never fatal: the event still goes out as a
		// plain conversion.
		logger.WithError(err).Warn("catalog mapping lookup failed, continuing without catalog")
	} else {
		mapping = m
	}

	catalogID := uuid.Nil
	credential := ""
	if mapping != nil {
		catalogID = mapping.CatalogID
		credential = mapping.Credential
	}

	classification := conversion.Classify(name, event.Products, event.Currency, catalogID)

	if classification.IsCatalogEvent {
		result := s.validator.Validate(ctx, event.StoreID, classification.CatalogID, classification.ContentIDs)
		if !result.Valid {
			logger.WithField("reason", result.Reason).Info("catalog enrichment rejected, falling back to plain conversion")
			classification.IsCatalogEvent = false
			classification.CatalogID = uuid.Nil
			classification.Reason = result.Reason
		}
	}

	var customData map[string]interface{}
	if classification.IsCatalogEvent {
		customData = conversion.BuildCatalogPayload(classification, event.CustomData)
		metrics.EventsProcessed.WithLabelValues("catalog").Inc()
	} else {
		if classification.Reason != "" {
			logger.WithField("reason", classification.Reason).Debug("sending fallback conversion payload")
		}
		customData = conversion.BuildFallbackPayload(classification, event.CustomData)
		metrics.EventsProcessed.WithLabelValues("fallback").Inc()
	}

	eventID := conversion.EventID(event.StoreID, event.OrderID, name, ts)

	if credential == "" {
		if cred, err := s.mappings.DispatchCredential(ctx, event.StoreID); err != nil {
			logger.WithError(err).Warn("dispatch credential lookup failed")
		} else {
			credential = cred
		}
	}

	outcome := conversion.DeliveryOutcome{Action: conversion.ActionLog, Reason: "no dispatch credential"}
	var response []byte
	dispatchErr := ""
	if credential != "" {
		resp, err := s.dispatcher.Dispatch(ctx, capi.DispatchRequest{
			PixelID:    event.PixelID,
			EventName:  name.String(),
			EventID:    eventID,
			EventTime:  ts.Unix(),
			CustomData: customData,
		}, credential)
		if err != nil {
			// Timeouts and transport errors map to a synthetic 5xx so the
			// dispatch collaborator retries with the same event id.
			outcome = conversion.ClassifyOutcome(http.StatusGatewayTimeout, nil)
			dispatchErr = err.Error()
			logger.WithError(err).Warn("dispatch failed")
		} else {
			outcome = conversion.ClassifyOutcome(resp.StatusCode, resp.Body)
			response = resp.Body
		}
	}
	metrics.DispatchOutcomes.WithLabelValues(string(outcome.Action)).Inc()

	s.publisher.Publish(&ProcessedEvent{
		StoreID:        event.StoreID,
		EventID:        eventID,
		EventName:      name.String(),
		IsCatalogEvent: classification.IsCatalogEvent,
		Outcome:        outcome,
		Response:       response,
		Error:          dispatchErr,
		Reason:         classification.Reason,
		OccurredAt:     ts,
	})

	result := &TrackResult{
		IsCatalogEvent: classification.IsCatalogEvent,
		CustomData:     customData,
		EventID:        eventID,
		Outcome:        outcome,
	}
	if classification.IsCatalogEvent {
		id := classification.CatalogID
		result.CatalogID = &id
	}
	return result
}
