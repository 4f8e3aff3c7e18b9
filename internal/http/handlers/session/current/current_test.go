package current

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lpxlsl/plasma-services/internal/entitlement"
	"github.com/lpxlsl/plasma-services/internal/http/response"
	"github.com/lpxlsl/plasma-services/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Restore(ctx context.Context) (*models.Profile, error) {
	args := m.Called(ctx)
	var profile *models.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*models.Profile)
	}
	return profile, args.Error(1)
}

func (m *ServiceMock) Badge(profile *models.Profile) *entitlement.Badge {
	args := m.Called(profile)
	var badge *entitlement.Badge
	if args.Get(0) != nil {
		badge = args.Get(0).(*entitlement.Badge)
	}
	return badge
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCurrentHandler_ActiveSession(t *testing.T) {
	serviceMock := new(ServiceMock)
	profile := &models.Profile{UID: "uid-1", Username: "alice", SubscriptionTier: models.TierGold}
	serviceMock.On("Restore", mock.Anything).Return(profile, nil)
	serviceMock.On("Badge", profile).Return(&entitlement.Badge{Text: "GOLD"})

	handler := New(newNoopLogger(), serviceMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["signedIn"])
	assert.Contains(t, data, "profile")
	assert.Contains(t, data, "badge")
}

func TestCurrentHandler_NoSession(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("Restore", mock.Anything).Return(nil, nil)

	handler := New(newNoopLogger(), serviceMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, false, data["signedIn"])
	assert.NotContains(t, data, "profile")
	serviceMock.AssertNotCalled(t, "Badge", mock.Anything)
}

func TestCurrentHandler_NoBadgeForFreeTier(t *testing.T) {
	serviceMock := new(ServiceMock)
	profile := &models.Profile{UID: "uid-1", Username: "alice", SubscriptionTier: models.TierNone}
	serviceMock.On("Restore", mock.Anything).Return(profile, nil)
	serviceMock.On("Badge", profile).Return(nil)

	handler := New(newNoopLogger(), serviceMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.NotContains(t, data, "badge")
}

func TestCurrentHandler_StorageFailure(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("Restore", mock.Anything).Return(nil, assert.AnError)

	handler := New(newNoopLogger(), serviceMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
