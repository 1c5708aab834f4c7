package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	courierhttp "courier/internal/adapters/in/http"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubParcelRepository struct{ mock.Mock }

func (m *stubParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *stubParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *stubParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *stubParcelRepository) GetByTrackingNumber(ctx context.Context, tn parcel.TrackingNumber) (*parcel.Parcel, error) {
	args := m.Called(ctx, tn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type stubUoW struct {
	repo *stubParcelRepository
}

func (m *stubUoW) Begin(_ context.Context) error    { return nil }
func (m *stubUoW) Commit(_ context.Context) error   { return nil }
func (m *stubUoW) Rollback(_ context.Context) error { return nil }
func (m *stubUoW) ParcelRepository() ports.ParcelRepository {
	return m.repo
}

type stubUoWFactory struct{ uow *stubUoW }

func (f *stubUoWFactory) Create() commands.ParcelUoW { return f.uow }

func newTestServer(factory commands.ParcelUoWFactory) *courierhttp.Server {
	return courierhttp.NewServer(
		commands.NewCreateParcelCommandHandler(factory),
		commands.NewUpdateParcelStatusCommandHandler(factory, services.NewTransitionPolicy()),
		commands.NewAssignAgentCommandHandler(factory),
		commands.NewUnassignAgentCommandHandler(factory),
		commands.NewUpdateLocationCommandHandler(factory),
		queries.TrackParcelQueryHandler{},
		queries.GetParcelsQueryHandler{},
		queries.GetCustomerParcelsQueryHandler{},
		queries.GetCurrentLocationQueryHandler{},
		queries.GetDistanceQueryHandler{},
		queries.GetDailyMetricsQueryHandler{},
	)
}

func setupEcho(factory commands.ParcelUoWFactory) *echo.Echo {
	e := echo.New()
	newTestServer(factory).RegisterRoutes(e)
	return e
}

func TestCreateParcel_Success(t *testing.T) {
	repo := new(stubParcelRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()
	factory := &stubUoWFactory{uow: &stubUoW{repo: repo}}
	e := setupEcho(factory)

	body := `{
		"pickupAddress": "12 Mirpur Rd, Dhaka",
		"deliveryAddress": "7 Agrabad Ave, Chattogram",
		"parcelType": "Documents",
		"paymentType": "COD",
		"parcelSize": "Small",
		"pickupPoint": {"lat": 23.8103, "lng": 90.4125}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parcels", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(courierhttp.HeaderActorID, kernel.NewUUID().String())
	req.Header.Set(courierhttp.HeaderActorRole, "customer")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp courierhttp.ParcelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.TrackingNumber, "EXCEL-COURIER-"))
	assert.Equal(t, "Booked", resp.Status)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Booked", resp.Events[0].Status)
	repo.AssertExpectations(t)
}

func TestCreateParcel_MissingActorHeader(t *testing.T) {
	e := setupEcho(&stubUoWFactory{uow: &stubUoW{repo: new(stubParcelRepository)}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parcels", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_AgentForbiddenStatus(t *testing.T) {
	e := setupEcho(&stubUoWFactory{uow: &stubUoW{repo: new(stubParcelRepository)}})

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/parcels/"+kernel.NewUUID().String()+"/status",
		strings.NewReader(`{"status": "In Transit"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(courierhttp.HeaderActorID, kernel.NewUUID().String())
	req.Header.Set(courierhttp.HeaderActorRole, "agent")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	e := setupEcho(&stubUoWFactory{uow: &stubUoW{repo: new(stubParcelRepository)}})

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/parcels/"+kernel.NewUUID().String()+"/status",
		strings.NewReader(`{"status": "Teleported"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(courierhttp.HeaderActorID, kernel.NewUUID().String())
	req.Header.Set(courierhttp.HeaderActorRole, "admin")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetParcels_NonAdminForbidden(t *testing.T) {
	e := setupEcho(&stubUoWFactory{uow: &stubUoW{repo: new(stubParcelRepository)}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels", nil)
	req.Header.Set(courierhttp.HeaderActorID, kernel.NewUUID().String())
	req.Header.Set(courierhttp.HeaderActorRole, "customer")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAssignAgent_AdminOnly(t *testing.T) {
	e := setupEcho(&stubUoWFactory{uow: &stubUoW{repo: new(stubParcelRepository)}})

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/parcels/"+kernel.NewUUID().String()+"/assign",
		strings.NewReader(`{"agentId": "`+kernel.NewUUID().String()+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(courierhttp.HeaderActorID, kernel.NewUUID().String())
	req.Header.Set(courierhttp.HeaderActorRole, "agent")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTrackParcel_MalformedTrackingNumber(t *testing.T) {
	e := setupEcho(&stubUoWFactory{uow: &stubUoW{repo: new(stubParcelRepository)}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/track/NOT-A-NUMBER", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
