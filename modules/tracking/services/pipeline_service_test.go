package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
	"github.com/pixelport/pixelport/modules/tracking/domain/entities/catalogmapping"
	"github.com/pixelport/pixelport/modules/tracking/domain/entities/conversion"
	"github.com/pixelport/pixelport/modules/tracking/infrastructure/capi"
	"github.com/pixelport/pixelport/pkg/eventbus"
)

type mockMappingRepo struct {
	mapping    *catalogmapping.CatalogMapping
	resolveErr error
	credential string
	credErr    error
}

func (m *mockMappingRepo) ResolveByPixel(ctx context.Context, storeID uuid.UUID, pixelID string) (*catalogmapping.CatalogMapping, error) {
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	return m.mapping, nil
}

func (m *mockMappingRepo) DispatchCredential(ctx context.Context, storeID uuid.UUID) (string, error) {
	if m.credErr != nil {
		return "", m.credErr
	}
	return m.credential, nil
}

type mockDispatcher struct {
	lastRequest    *capi.DispatchRequest
	lastCredential string
	calls          int
	response       *capi.Response
	err            error
}

func (m *mockDispatcher) Dispatch(ctx context.Context, req capi.DispatchRequest, credential string) (*capi.Response, error) {
	m.calls++
	m.lastRequest = &req
	m.lastCredential = credential
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type pipelineFixture struct {
	service    *PipelineService
	mappings   *mockMappingRepo
	dispatcher *mockDispatcher
	published  *[]*ProcessedEvent
}

func newPipelineFixture(t *testing.T, mappings *mockMappingRepo, catalogs *mockCatalogRepo, dispatcher *mockDispatcher) pipelineFixture {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	bus := eventbus.NewEventPublisher(log)

	published := []*ProcessedEvent{}
	bus.Subscribe(func(e *ProcessedEvent) {
		published = append(published, e)
	})

	return pipelineFixture{
		service:    NewPipelineService(mappings, NewOwnershipValidator(catalogs), dispatcher, bus),
		mappings:   mappings,
		dispatcher: dispatcher,
		published:  &published,
	}
}

func okResponse() *capi.Response {
	return &capi.Response{StatusCode: http.StatusOK, Body: []byte(`{"events_received":1}`)}
}

func purchaseEvent(storeID uuid.UUID) *conversion.RawEvent {
	return &conversion.RawEvent{
		StoreID:   storeID,
		PixelID:   "px-1",
		EventName: "Purchase",
		Products: []conversion.ProductLineItem{
			{ID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
		Currency:   "USD",
		OrderID:    "1001",
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CustomData: map[string]interface{}{},
	}
}

func TestPipeline_CatalogHappyPath(t *testing.T) {
	storeID := uuid.New()
	c := validCatalog(storeID)
	mappings := &mockMappingRepo{mapping: &catalogmapping.CatalogMapping{
		PixelID:    "px-1",
		CatalogID:  c.ID,
		Credential: "token-1",
	}}
	catalogs := &mockCatalogRepo{byID: map[uuid.UUID]*catalog.Catalog{c.ID: c}}
	dispatcher := &mockDispatcher{response: okResponse()}
	fx := newPipelineFixture(t, mappings, catalogs, dispatcher)

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(storeID))

	require.True(t, result.IsCatalogEvent)
	require.NotNil(t, result.CatalogID)
	require.Equal(t, c.ID, *result.CatalogID)
	require.Equal(t, "product", result.CustomData["content_type"])
	require.Equal(t, []string{"p1"}, result.CustomData["content_ids"])
	require.Equal(t, 100.0, result.CustomData["value"])
	require.Equal(t, "USD", result.CustomData["currency"])
	require.Equal(t, 1, result.CustomData["num_items"])
	require.NotContains(t, result.CustomData, "catalog_id")

	require.Equal(t, 1, dispatcher.calls)
	require.Equal(t, "token-1", dispatcher.lastCredential)
	require.Equal(t, result.EventID, dispatcher.lastRequest.EventID)
	require.Equal(t, "Purchase", dispatcher.lastRequest.EventName)

	require.Equal(t, conversion.ActionLog, result.Outcome.Action)
	require.Equal(t, "delivered", result.Outcome.Reason)

	require.Len(t, *fx.published, 1)
	audit := (*fx.published)[0]
	require.True(t, audit.IsCatalogEvent)
	require.Equal(t, result.EventID, audit.EventID)
}

func TestPipeline_RoundTripValues(t *testing.T) {
	storeID := uuid.New()
	c := validCatalog(storeID)
	mappings := &mockMappingRepo{mapping: &catalogmapping.CatalogMapping{
		PixelID: "px-1", CatalogID: c.ID, Credential: "token-1",
	}}
	catalogs := &mockCatalogRepo{byID: map[uuid.UUID]*catalog.Catalog{c.ID: c}}
	fx := newPipelineFixture(t, mappings, catalogs, &mockDispatcher{response: okResponse()})

	event := purchaseEvent(storeID)
	event.Products = []conversion.ProductLineItem{
		{ID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		{ID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}
	result := fx.service.ProcessEvent(context.Background(), event)

	require.True(t, result.IsCatalogEvent)
	require.Equal(t, 25.0, result.CustomData["value"])
	require.Equal(t, 2, result.CustomData["num_items"])
}

func TestPipeline_NoProductsFallsBack(t *testing.T) {
	storeID := uuid.New()
	c := validCatalog(storeID)
	mappings := &mockMappingRepo{mapping: &catalogmapping.CatalogMapping{
		PixelID: "px-1", CatalogID: c.ID, Credential: "token-1",
	}}
	catalogs := &mockCatalogRepo{byID: map[uuid.UUID]*catalog.Catalog{c.ID: c}}
	dispatcher := &mockDispatcher{response: okResponse()}
	fx := newPipelineFixture(t, mappings, catalogs, dispatcher)

	event := purchaseEvent(storeID)
	event.EventName = "ViewContent"
	event.Products = nil
	result := fx.service.ProcessEvent(context.Background(), event)

	require.False(t, result.IsCatalogEvent)
	require.Nil(t, result.CatalogID)
	for _, field := range []string{"content_type", "content_ids", "contents", "num_items"} {
		require.NotContains(t, result.CustomData, field)
	}
	// The conversion still goes out as a plain event.
	require.Equal(t, 1, dispatcher.calls)
}

func TestPipeline_OwnershipMismatchFallsBack(t *testing.T) {
	storeA := uuid.New()
	foreign := validCatalog(uuid.New())
	mappings := &mockMappingRepo{mapping: &catalogmapping.CatalogMapping{
		PixelID: "px-1", CatalogID: foreign.ID, Credential: "token-1",
	}}
	catalogs := &mockCatalogRepo{byID: map[uuid.UUID]*catalog.Catalog{foreign.ID: foreign}}
	dispatcher := &mockDispatcher{response: okResponse()}
	fx := newPipelineFixture(t, mappings, catalogs, dispatcher)

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(storeA))

	require.False(t, result.IsCatalogEvent)
	require.Nil(t, result.CatalogID)
	require.Equal(t, 100.0, result.CustomData["value"])
	require.Equal(t, "USD", result.CustomData["currency"])
	require.NotContains(t, result.CustomData, "content_ids")

	require.Len(t, *fx.published, 1)
	require.Equal(t, "catalog belongs to a different store", (*fx.published)[0].Reason)
}

func TestPipeline_ResolverErrorStillDelivers(t *testing.T) {
	mappings := &mockMappingRepo{resolveErr: errors.New("connection refused"), credential: "store-token"}
	dispatcher := &mockDispatcher{response: okResponse()}
	fx := newPipelineFixture(t, mappings, &mockCatalogRepo{}, dispatcher)

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(uuid.New()))

	require.False(t, result.IsCatalogEvent)
	require.NotEmpty(t, result.EventID)
	require.Equal(t, 1, dispatcher.calls)
	require.Equal(t, "store-token", dispatcher.lastCredential)
}

func TestPipeline_NoCredentialSkipsDispatch(t *testing.T) {
	mappings := &mockMappingRepo{}
	dispatcher := &mockDispatcher{response: okResponse()}
	fx := newPipelineFixture(t, mappings, &mockCatalogRepo{}, dispatcher)

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(uuid.New()))

	require.Equal(t, 0, dispatcher.calls)
	require.Equal(t, conversion.ActionLog, result.Outcome.Action)
	require.Equal(t, "no dispatch credential", result.Outcome.Reason)
	require.Len(t, *fx.published, 1)
}

func TestPipeline_ServerErrorRetries(t *testing.T) {
	mappings := &mockMappingRepo{credential: "store-token"}
	dispatcher := &mockDispatcher{response: &capi.Response{StatusCode: http.StatusInternalServerError}}
	fx := newPipelineFixture(t, mappings, &mockCatalogRepo{}, dispatcher)

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(uuid.New()))

	require.Equal(t, conversion.ActionRetry, result.Outcome.Action)
	require.True(t, result.Outcome.ShouldRetry)
}

func TestPipeline_DispatchErrorMapsToRetry(t *testing.T) {
	mappings := &mockMappingRepo{credential: "store-token"}
	dispatcher := &mockDispatcher{err: errors.New("context deadline exceeded")}
	fx := newPipelineFixture(t, mappings, &mockCatalogRepo{}, dispatcher)

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(uuid.New()))

	require.Equal(t, conversion.ActionRetry, result.Outcome.Action)
	require.True(t, result.Outcome.ShouldRetry)

	require.Len(t, *fx.published, 1)
	require.Contains(t, (*fx.published)[0].Error, "deadline")
}

func TestPipeline_DuplicateDeliveryDropped(t *testing.T) {
	mappings := &mockMappingRepo{credential: "store-token"}
	dispatcher := &mockDispatcher{response: &capi.Response{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"error":{"code":2804,"message":"Duplicate event detected"}}`),
	}}
	fx := newPipelineFixture(t, mappings, &mockCatalogRepo{}, dispatcher)

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(uuid.New()))

	require.Equal(t, conversion.ActionDrop, result.Outcome.Action)
	require.False(t, result.Outcome.ShouldRetry)
}

func TestPipeline_EventIDIdempotent(t *testing.T) {
	storeID := uuid.New()
	mappings := &mockMappingRepo{credential: "store-token"}
	fx := newPipelineFixture(t, mappings, &mockCatalogRepo{}, &mockDispatcher{response: okResponse()})

	first := fx.service.ProcessEvent(context.Background(), purchaseEvent(storeID))
	second := fx.service.ProcessEvent(context.Background(), purchaseEvent(storeID))

	require.Equal(t, first.EventID, second.EventID)
}

func TestPipeline_StoreIsolation(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()
	catalogB := validCatalog(storeB)
	// Store A's pixel somehow resolves to store B's catalog; validation must
	// reject it regardless of how the mapping got there.
	mappings := &mockMappingRepo{mapping: &catalogmapping.CatalogMapping{
		PixelID: "px-1", CatalogID: catalogB.ID, Credential: "token-1",
	}}
	catalogs := &mockCatalogRepo{byID: map[uuid.UUID]*catalog.Catalog{catalogB.ID: catalogB}}
	fx := newPipelineFixture(t, mappings, catalogs, &mockDispatcher{response: okResponse()})

	result := fx.service.ProcessEvent(context.Background(), purchaseEvent(storeA))

	require.False(t, result.IsCatalogEvent)
	require.Nil(t, result.CatalogID)

	eventA := fx.service.ProcessEvent(context.Background(), purchaseEvent(storeA))
	eventB := fx.service.ProcessEvent(context.Background(), purchaseEvent(storeB))
	require.NotEqual(t, eventA.EventID, eventB.EventID)
}

func TestPipeline_SynonymNormalization(t *testing.T) {
	storeID := uuid.New()
	c := validCatalog(storeID)
	mappings := &mockMappingRepo{mapping: &catalogmapping.CatalogMapping{
		PixelID: "px-1", CatalogID: c.ID, Credential: "token-1",
	}}
	catalogs := &mockCatalogRepo{byID: map[uuid.UUID]*catalog.Catalog{c.ID: c}}
	dispatcher := &mockDispatcher{response: okResponse()}
	fx := newPipelineFixture(t, mappings, catalogs, dispatcher)

	event := purchaseEvent(storeID)
	event.EventName = "order_completed"
	result := fx.service.ProcessEvent(context.Background(), event)

	require.True(t, result.IsCatalogEvent)
	require.Equal(t, "Purchase", dispatcher.lastRequest.EventName)

	// Normalized and raw spellings of the same conversion share an event id.
	raw := purchaseEvent(storeID)
	require.Equal(t, result.EventID, fx.service.ProcessEvent(context.Background(), raw).EventID)
}
