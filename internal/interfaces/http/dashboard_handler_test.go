package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/kpilab/saasmetrics/internal/application/analytics"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

// fakeAnalyticsRepo implementación en memoria para los tests de handlers.
type fakeAnalyticsRepo struct {
	summary *repository.DashboardSummary
	err     error

	lastLimit int
}

func (f *fakeAnalyticsRepo) GetDashboardSummary(context.Context) (*repository.DashboardSummary, error) {
	return f.summary, f.err
}

func (f *fakeAnalyticsRepo) ListSegments(context.Context) ([]entity.SegmentEconomics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []entity.SegmentEconomics{
		{Industry: "SaaS", CompanySize: "Small (11-50)", InitialPlan: "Starter",
			InitialBilling: entity.BillingMonthly, CustomerCount: 3},
	}, nil
}

func (f *fakeAnalyticsRepo) ListMonthlyUsage(context.Context) ([]entity.MonthlyUsageSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []entity.MonthlyUsageSummary{
		{Month: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), TotalEvents: 10, UniqueCustomers: 2, AvgSeatsUsed: 1.5},
	}, nil
}

func (f *fakeAnalyticsRepo) ListTopFeatures(_ context.Context, limit int) ([]entity.FeatureUsage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastLimit = limit
	return []entity.FeatureUsage{{Feature: "api_access", Count: 7}}, nil
}

func (f *fakeAnalyticsRepo) ListMonthlyRevenue(context.Context) ([]repository.MonthlyRevenuePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []repository.MonthlyRevenuePoint{
		{Month: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Revenue: decimal.NewFromInt(1500), PaymentCount: 20},
	}, nil
}

func newTestApp(repo repository.AnalyticsRepository) *fiber.App {
	app := fiber.New()
	Router(app, RouterDeps{DashboardUC: appanalytics.NewDashboardUseCase(repo)})
	return app
}

func decodeBody(t *testing.T, r io.Reader, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(out))
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	repo := &fakeAnalyticsRepo{summary: &repository.DashboardSummary{
		CustomerCount:  10,
		ChurnedCount:   4,
		ChurnRate:      0.4,
		TotalRevenue:   decimal.NewFromInt(5000),
		AvgCAC:         decimal.NewFromInt(700),
		AvgLTV:         decimal.NewFromInt(500),
		AvgHealthScore: 0.62,
	}}
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard/summary", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp.Body, &body)
	assert.EqualValues(t, 10, body["customers"])
	assert.EqualValues(t, 0.4, body["churn_rate"])
	assert.Equal(t, "5000", body["total_revenue"])
}

func TestDashboardHandler_GetSummaryError(t *testing.T) {
	app := newTestApp(&fakeAnalyticsRepo{err: errors.New("db caída")})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard/summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, "INTERNAL", body["code"])
}

func TestDashboardHandler_GetSegments(t *testing.T) {
	app := newTestApp(&fakeAnalyticsRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard/segments", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeBody(t, resp.Body, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "SaaS", body[0]["industry"])
	assert.EqualValues(t, 3, body[0]["customers"])
}

func TestUsageHandler_GetMonthly(t *testing.T) {
	app := newTestApp(&fakeAnalyticsRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/usage/monthly", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeBody(t, resp.Body, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "2023-01", body[0]["month"])
	assert.EqualValues(t, 10, body[0]["total_events"])
}

func TestUsageHandler_GetTopFeaturesLimit(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	app := newTestApp(repo)

	// Sin limit: usa el default 10.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/usage/features", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, repo.lastLimit)

	// limit explícito.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/usage/features?limit=5", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, repo.lastLimit)

	// Por encima del máximo se recorta a 50.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/usage/features?limit=5000", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 50, repo.lastLimit)
}

func TestDashboardHandler_GetMonthlyRevenue(t *testing.T) {
	app := newTestApp(&fakeAnalyticsRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/revenue/monthly", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeBody(t, resp.Body, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "2023-01", body[0]["month"])
	assert.EqualValues(t, 20, body[0]["payments"])
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(&fakeAnalyticsRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
