// Package csvexport escribe el dataset generado y sus agregaciones como
// archivos CSV, un archivo por stream, con encabezado fijo.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Exporter escribe un DatasetSnapshot como CSVs en un directorio.
type Exporter struct {
	dir string
}

// NewExporter construye el exportador; crea el directorio si no existe.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csvexport: crear directorio %s: %w", dir, err)
	}
	return &Exporter{dir: dir}, nil
}

// Export escribe todos los archivos del snapshot. Se detiene en el primer error.
func (e *Exporter) Export(snap *repository.DatasetSnapshot, monthly []entity.MonthlyUsageSummary, features []entity.FeatureUsage, perCustomer []entity.CustomerUsageSummary) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"customers.csv", func() error { return e.writeCustomers(snap.Customers) }},
		{"subscriptions.csv", func() error { return e.writeSubscriptions(snap.Subscriptions) }},
		{"payments.csv", func() error { return e.writePayments(snap.Payments) }},
		{"usage_events.csv", func() error { return e.writeUsageEvents(snap.UsageEvents) }},
		{"support_interactions.csv", func() error { return e.writeSupport(snap.Support) }},
		{"unit_economics.csv", func() error { return e.writeUnitEconomics(snap.UnitEconomics, snap.Customers) }},
		{"unit_economics_by_segment.csv", func() error { return e.writeSegments(snap.Segments) }},
		{"monthly_usage_summary.csv", func() error { return e.writeMonthlyUsage(monthly) }},
		{"top_features_summary.csv", func() error { return e.writeTopFeatures(features) }},
		{"customer_usage_summary.csv", func() error { return e.writeCustomerUsage(perCustomer) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("csvexport: %s: %w", s.name, err)
		}
	}
	return nil
}

// writeFile abre el archivo, escribe encabezado + filas y hace flush.
func (e *Exporter) writeFile(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(e.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (e *Exporter) writeCustomers(customers []entity.Customer) error {
	header := []string{
		"customer_id", "company_name", "contact_email", "industry",
		"company_size", "acquisition_date", "acquisition_channel",
		"acquisition_cost", "geography", "has_trial", "trial_start",
		"trial_end", "referred_by",
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.ID, c.CompanyName, c.ContactEmail, c.Industry,
			c.CompanySize, c.AcquisitionDate.Format(dateLayout),
			c.AcquisitionChannel, c.AcquisitionCost.StringFixed(2),
			c.Geography, strconv.FormatBool(c.HasTrial),
			formatDatePtr(c.TrialStart), formatDatePtr(c.TrialEnd),
			c.ReferredBy,
		})
	}
	return e.writeFile("customers.csv", header, rows)
}

func (e *Exporter) writeSubscriptions(subs []entity.Subscription) error {
	header := []string{
		"subscription_id", "customer_id", "plan_name", "billing_frequency",
		"monthly_price", "seats", "start_date", "end_date", "subscription_type",
		"churn_reason",
	}
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{
			s.ID, s.CustomerID, s.PlanName, s.Billing,
			s.MonthlyPrice.StringFixed(2), strconv.Itoa(s.Seats),
			s.StartDate.Format(dateLayout), formatDatePtr(s.EndDate),
			s.Kind, s.ChurnReason,
		})
	}
	return e.writeFile("subscriptions.csv", header, rows)
}

func (e *Exporter) writePayments(payments []entity.Payment) error {
	header := []string{
		"payment_id", "subscription_id", "customer_id", "payment_date",
		"amount", "status", "payment_method", "subscription_type",
	}
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			p.ID, p.SubscriptionID, p.CustomerID,
			p.Date.Format(dateLayout), p.Amount.StringFixed(2),
			p.Status, p.Method, p.Kind,
		})
	}
	return e.writeFile("payments.csv", header, rows)
}

func (e *Exporter) writeUsageEvents(events []entity.UsageEvent) error {
	header := []string{
		"event_id", "customer_id", "subscription_id", "event_date",
		"event_type", "feature", "seats_used",
	}
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			ev.ID, ev.CustomerID, ev.SubscriptionID,
			ev.Date.Format(timestampLayout), ev.EventType,
			ev.Feature, strconv.Itoa(ev.SeatsUsed),
		})
	}
	return e.writeFile("usage_events.csv", header, rows)
}

func (e *Exporter) writeSupport(tickets []entity.SupportInteraction) error {
	header := []string{
		"interaction_id", "customer_id", "interaction_date", "issue_category",
		"resolution_status", "resolution_time_hours", "sentiment", "sentiment_score",
	}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		hours := ""
		if t.ResolutionHours != nil {
			hours = strconv.FormatFloat(*t.ResolutionHours, 'f', 2, 64)
		}
		rows = append(rows, []string{
			t.ID, t.CustomerID, t.Date.Format(dateLayout), t.IssueCategory,
			t.Status, hours, t.Sentiment, formatFloat(t.SentimentScore),
		})
	}
	return e.writeFile("support_interactions.csv", header, rows)
}

// writeUnitEconomics mezcla los atributos del cliente con sus métricas
// derivadas, para que el archivo sirva como tabla de clientes del dashboard
// (filtros por canal, tamaño y fecha de adquisición) sin joins.
func (e *Exporter) writeUnitEconomics(econ []entity.UnitEconomics, customers []entity.Customer) error {
	byID := make(map[string]entity.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	header := []string{
		"customer_id", "company_name", "contact_email", "industry",
		"company_size", "acquisition_date", "acquisition_channel",
		"geography", "has_trial", "trial_start", "trial_end", "referred_by",
		"total_revenue", "cac", "ltv", "ltv_cac_ratio",
		"active_months", "monthly_revenue", "cac_payback_months", "churned",
		"active_days", "total_usage_events", "usage_score", "avg_sentiment",
		"health_score", "initial_plan", "initial_billing",
	}
	rows := make([][]string, 0, len(econ))
	for _, ue := range econ {
		c := byID[ue.CustomerID]
		rows = append(rows, []string{
			ue.CustomerID,
			c.CompanyName,
			c.ContactEmail,
			c.Industry,
			c.CompanySize,
			c.AcquisitionDate.Format(dateLayout),
			c.AcquisitionChannel,
			c.Geography,
			strconv.FormatBool(c.HasTrial),
			formatDatePtr(c.TrialStart),
			formatDatePtr(c.TrialEnd),
			c.ReferredBy,
			ue.TotalRevenue.StringFixed(2),
			ue.CAC.StringFixed(2),
			ue.LTV.StringFixed(2),
			formatFloat(ue.LTVCACRatio),
			formatFloat(ue.ActiveMonths),
			ue.MonthlyRevenue.StringFixed(2),
			formatFloat(ue.CACPaybackMonths),
			strconv.FormatBool(ue.Churned),
			strconv.Itoa(ue.ActiveDays),
			strconv.Itoa(ue.TotalUsageEvents),
			formatFloat(ue.UsageScore),
			formatFloat(ue.AvgSentiment),
			formatFloat(ue.HealthScore),
			ue.InitialPlan,
			ue.InitialBilling,
		})
	}
	return e.writeFile("unit_economics.csv", header, rows)
}

func (e *Exporter) writeSegments(segments []entity.SegmentEconomics) error {
	header := []string{
		"industry", "company_size", "initial_plan", "initial_billing",
		"avg_cac", "avg_ltv", "avg_ltv_cac_ratio", "avg_payback_months",
		"avg_health_score", "customer_count",
	}
	rows := make([][]string, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, []string{
			s.Industry, s.CompanySize, s.InitialPlan, s.InitialBilling,
			s.AvgCAC.StringFixed(2), s.AvgLTV.StringFixed(2),
			formatFloat(s.AvgLTVCAC), formatFloat(s.AvgPaybackMonths),
			formatFloat(s.AvgHealthScore), strconv.Itoa(s.CustomerCount),
		})
	}
	return e.writeFile("unit_economics_by_segment.csv", header, rows)
}

func (e *Exporter) writeMonthlyUsage(rows []entity.MonthlyUsageSummary) error {
	header := []string{"month", "total_events", "unique_customers", "avg_seats_used"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Month.Format("2006-01"),
			strconv.Itoa(r.TotalEvents),
			strconv.Itoa(r.UniqueCustomers),
			formatFloat(r.AvgSeatsUsed),
		})
	}
	return e.writeFile("monthly_usage_summary.csv", header, out)
}

func (e *Exporter) writeTopFeatures(rows []entity.FeatureUsage) error {
	header := []string{"feature", "event_count"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Feature, strconv.Itoa(r.Count)})
	}
	return e.writeFile("top_features_summary.csv", header, out)
}

func (e *Exporter) writeCustomerUsage(rows []entity.CustomerUsageSummary) error {
	header := []string{
		"customer_id", "total_events", "active_days",
		"avg_daily_events", "avg_seats_per_event",
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.CustomerID,
			strconv.Itoa(r.TotalEvents),
			strconv.Itoa(r.ActiveDays),
			formatFloat(r.AvgDailyEvents),
			formatFloat(r.AvgSeatsPerEvent),
		})
	}
	return e.writeFile("customer_usage_summary.csv", header, out)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
