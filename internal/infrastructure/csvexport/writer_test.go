package csvexport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func sampleSnapshot() *repository.DatasetSnapshot {
	start := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)
	hours := 3.5

	acquired := time.Date(2022, 2, 15, 0, 0, 0, 0, time.UTC)
	trialEnd := acquired.AddDate(0, 0, 14)

	return &repository.DatasetSnapshot{
		Customers: []entity.Customer{{
			ID: "c1", CompanyName: "Acme", ContactEmail: "ops@acme.example",
			Industry: "SaaS", CompanySize: "Small (11-50)",
			AcquisitionDate: acquired, AcquisitionChannel: "Referral",
			AcquisitionCost: decimal.NewFromInt(500), Geography: "Europe",
			HasTrial: true, TrialStart: &acquired, TrialEnd: &trialEnd,
		}},
		Subscriptions: []entity.Subscription{
			{ID: "s1", CustomerID: "c1", PlanName: "Professional",
				Billing: entity.BillingMonthly, MonthlyPrice: decimal.NewFromInt(79),
				Seats: 3, StartDate: start, EndDate: &end,
				Kind: entity.SubscriptionInitial, ChurnReason: "budget_cuts"},
			{ID: "s2", CustomerID: "c1", PlanName: "Professional",
				Billing: entity.BillingMonthly, MonthlyPrice: decimal.NewFromInt(94),
				Seats: 4, StartDate: start.AddDate(0, 2, 0),
				Kind: entity.SubscriptionSeatExpansion},
		},
		Payments: []entity.Payment{
			{ID: "p1", SubscriptionID: "s1", CustomerID: "c1", Date: start,
				Amount: decimal.NewFromInt(79), Status: entity.PaymentSuccessful,
				Method: "Credit Card", Kind: entity.SubscriptionInitial},
		},
		UsageEvents: []entity.UsageEvent{
			{ID: "u1", CustomerID: "c1", SubscriptionID: "s1",
				Date: start.Add(9 * time.Hour), EventType: "feature_used",
				Feature: "integrations", SeatsUsed: 2},
		},
		Support: []entity.SupportInteraction{
			{ID: "t1", CustomerID: "c1", Date: start, IssueCategory: "Technical Issue",
				Status: entity.SupportResolved, ResolutionHours: &hours,
				Sentiment: entity.SentimentPositive, SentimentScore: 0.9},
		},
		UnitEconomics: []entity.UnitEconomics{
			{CustomerID: "c1", TotalRevenue: decimal.NewFromInt(79),
				CAC: decimal.NewFromInt(500), LTV: decimal.NewFromInt(79),
				ActiveMonths: 1, MonthlyRevenue: decimal.NewFromInt(79),
				InitialPlan: "Professional", InitialBilling: entity.BillingMonthly},
		},
		Segments: []entity.SegmentEconomics{
			{Industry: "SaaS", CompanySize: "Small (11-50)",
				InitialPlan: "Professional", InitialBilling: entity.BillingMonthly,
				AvgCAC: decimal.NewFromInt(500), AvgLTV: decimal.NewFromInt(79),
				CustomerCount: 1},
		},
	}
}

func TestExport_EscribeTodosLosArchivos(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)

	snap := sampleSnapshot()
	monthly := []entity.MonthlyUsageSummary{
		{Month: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), TotalEvents: 1, UniqueCustomers: 1, AvgSeatsUsed: 2},
	}
	features := []entity.FeatureUsage{{Feature: "integrations", Count: 1}}
	perCustomer := []entity.CustomerUsageSummary{
		{CustomerID: "c1", TotalEvents: 1, ActiveDays: 1, AvgDailyEvents: 1, AvgSeatsPerEvent: 2},
	}

	require.NoError(t, exporter.Export(snap, monthly, features, perCustomer))

	expected := []string{
		"customers.csv", "subscriptions.csv", "payments.csv", "usage_events.csv",
		"support_interactions.csv", "unit_economics.csv",
		"unit_economics_by_segment.csv", "monthly_usage_summary.csv",
		"top_features_summary.csv", "customer_usage_summary.csv",
	}
	for _, name := range expected {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "falta %s", name)
	}
}

func TestExport_SubscriptionsFormato(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)
	require.NoError(t, exporter.Export(sampleSnapshot(), nil, nil, nil))

	rows := readCSV(t, filepath.Join(dir, "subscriptions.csv"))
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"subscription_id", "customer_id", "plan_name", "billing_frequency",
		"monthly_price", "seats", "start_date", "end_date", "subscription_type",
		"churn_reason",
	}, rows[0])

	assert.Equal(t, []string{
		"s1", "c1", "Professional", "monthly", "79.00", "3",
		"2022-03-01", "2023-06-30", "initial", "budget_cuts",
	}, rows[1])

	// EndDate nil se serializa como celda vacía.
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "", rows[2][9])
}

func TestExport_PaymentsYUsoFormato(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)
	require.NoError(t, exporter.Export(sampleSnapshot(), nil, nil, nil))

	payments := readCSV(t, filepath.Join(dir, "payments.csv"))
	require.Len(t, payments, 2)
	assert.Equal(t, []string{
		"p1", "s1", "c1", "2022-03-01", "79.00", "successful", "Credit Card", "initial",
	}, payments[1])

	usage := readCSV(t, filepath.Join(dir, "usage_events.csv"))
	require.Len(t, usage, 2)
	assert.Equal(t, "2022-03-01 09:00:00", usage[1][3], "los eventos de uso llevan timestamp")
}

func TestExport_CustomersFormato(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)
	require.NoError(t, exporter.Export(sampleSnapshot(), nil, nil, nil))

	rows := readCSV(t, filepath.Join(dir, "customers.csv"))
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"customer_id", "company_name", "contact_email", "industry",
		"company_size", "acquisition_date", "acquisition_channel",
		"acquisition_cost", "geography", "has_trial", "trial_start",
		"trial_end", "referred_by",
	}, rows[0])

	assert.Equal(t, []string{
		"c1", "Acme", "ops@acme.example", "SaaS", "Small (11-50)",
		"2022-02-15", "Referral", "500.00", "Europe", "true",
		"2022-02-15", "2022-03-01", "",
	}, rows[1])
}

// El dashboard lee unit_economics.csv como tabla de clientes, así que cada
// fila debe llevar los atributos del cliente además de sus métricas.
func TestExport_UnitEconomicsIncluyeColumnasDeCliente(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)
	require.NoError(t, exporter.Export(sampleSnapshot(), nil, nil, nil))

	rows := readCSV(t, filepath.Join(dir, "unit_economics.csv"))
	require.Len(t, rows, 2)

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, name := range []string{
		"company_name", "contact_email", "industry", "company_size",
		"acquisition_date", "acquisition_channel", "geography",
		"has_trial", "trial_start", "trial_end", "referred_by",
	} {
		require.Contains(t, col, name, "columna %s ausente en unit_economics.csv", name)
	}

	row := rows[1]
	assert.Equal(t, "c1", row[col["customer_id"]])
	assert.Equal(t, "Acme", row[col["company_name"]])
	assert.Equal(t, "SaaS", row[col["industry"]])
	assert.Equal(t, "Small (11-50)", row[col["company_size"]])
	assert.Equal(t, "2022-02-15", row[col["acquisition_date"]])
	assert.Equal(t, "Referral", row[col["acquisition_channel"]])
	assert.Equal(t, "Europe", row[col["geography"]])
	assert.Equal(t, "true", row[col["has_trial"]])
	assert.Equal(t, "79.00", row[col["total_revenue"]])
	assert.Equal(t, "Professional", row[col["initial_plan"]])
}

func TestExport_ArchivosVaciosSoloEncabezado(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)

	require.NoError(t, exporter.Export(&repository.DatasetSnapshot{}, nil, nil, nil))

	rows := readCSV(t, filepath.Join(dir, "unit_economics.csv"))
	require.Len(t, rows, 1, "dataset vacío: solo el encabezado")
}
