package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kpilab/saasmetrics/internal/domain"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
)

var _ repository.DatasetRepository = (*DatasetRepo)(nil)

// DatasetRepo sink de carga del dataset generado. ReplaceDataset trunca y
// recarga todas las tablas en una sola transacción con COPY.
type DatasetRepo struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository construye el adaptador de carga.
func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepo {
	return &DatasetRepo{pool: pool}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id         TEXT PRIMARY KEY,
    company_name        TEXT NOT NULL,
    contact_email       TEXT NOT NULL,
    industry            TEXT NOT NULL,
    company_size        TEXT NOT NULL,
    acquisition_date    DATE NOT NULL,
    acquisition_channel TEXT NOT NULL,
    acquisition_cost    NUMERIC(12,2) NOT NULL,
    geography           TEXT NOT NULL,
    has_trial           BOOLEAN NOT NULL,
    trial_start         DATE,
    trial_end           DATE,
    referred_by         TEXT
);

CREATE TABLE IF NOT EXISTS subscriptions (
    subscription_id   TEXT PRIMARY KEY,
    customer_id       TEXT NOT NULL REFERENCES customers(customer_id),
    plan_name         TEXT NOT NULL,
    billing_frequency TEXT NOT NULL,
    monthly_price     NUMERIC(12,2) NOT NULL,
    seats             INT NOT NULL,
    start_date        DATE NOT NULL,
    end_date          DATE,
    subscription_type TEXT NOT NULL,
    churn_reason      TEXT
);

CREATE TABLE IF NOT EXISTS payments (
    payment_id        TEXT PRIMARY KEY,
    subscription_id   TEXT NOT NULL REFERENCES subscriptions(subscription_id),
    customer_id       TEXT NOT NULL REFERENCES customers(customer_id),
    payment_date      DATE NOT NULL,
    amount            NUMERIC(12,2) NOT NULL,
    status            TEXT NOT NULL,
    payment_method    TEXT NOT NULL,
    subscription_type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS usage_events (
    event_id        TEXT PRIMARY KEY,
    customer_id     TEXT NOT NULL REFERENCES customers(customer_id),
    subscription_id TEXT NOT NULL REFERENCES subscriptions(subscription_id),
    event_date      TIMESTAMP NOT NULL,
    event_type      TEXT NOT NULL,
    feature         TEXT NOT NULL,
    seats_used      INT NOT NULL
);

CREATE TABLE IF NOT EXISTS support_interactions (
    interaction_id        TEXT PRIMARY KEY,
    customer_id           TEXT NOT NULL REFERENCES customers(customer_id),
    interaction_date      DATE NOT NULL,
    issue_category        TEXT NOT NULL,
    resolution_status     TEXT NOT NULL,
    resolution_time_hours DOUBLE PRECISION,
    sentiment             TEXT NOT NULL,
    sentiment_score       DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS unit_economics (
    customer_id        TEXT PRIMARY KEY REFERENCES customers(customer_id),
    total_revenue      NUMERIC(14,2) NOT NULL,
    cac                NUMERIC(12,2) NOT NULL,
    ltv                NUMERIC(14,2) NOT NULL,
    ltv_cac_ratio      DOUBLE PRECISION NOT NULL,
    active_months      DOUBLE PRECISION NOT NULL,
    monthly_revenue    NUMERIC(12,2) NOT NULL,
    cac_payback_months DOUBLE PRECISION NOT NULL,
    churned            BOOLEAN NOT NULL,
    active_days        INT NOT NULL,
    total_usage_events INT NOT NULL,
    usage_score        DOUBLE PRECISION NOT NULL,
    avg_sentiment      DOUBLE PRECISION NOT NULL,
    health_score       DOUBLE PRECISION NOT NULL,
    initial_plan       TEXT NOT NULL,
    initial_billing    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS unit_economics_by_segment (
    industry           TEXT NOT NULL,
    company_size       TEXT NOT NULL,
    initial_plan       TEXT NOT NULL,
    initial_billing    TEXT NOT NULL,
    avg_cac            NUMERIC(12,2) NOT NULL,
    avg_ltv            NUMERIC(14,2) NOT NULL,
    avg_ltv_cac_ratio  DOUBLE PRECISION NOT NULL,
    avg_payback_months DOUBLE PRECISION NOT NULL,
    avg_health_score   DOUBLE PRECISION NOT NULL,
    customer_count     INT NOT NULL,
    PRIMARY KEY (industry, company_size, initial_plan, initial_billing)
);

CREATE INDEX IF NOT EXISTS idx_payments_date       ON payments (payment_date);
CREATE INDEX IF NOT EXISTS idx_usage_events_date   ON usage_events (event_date);
CREATE INDEX IF NOT EXISTS idx_usage_events_feat   ON usage_events (feature);
CREATE INDEX IF NOT EXISTS idx_subs_customer       ON subscriptions (customer_id);
`

// InitSchema crea las tablas e índices si no existen.
func (r *DatasetRepo) InitSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("dataset.InitSchema: %w", err)
	}
	return nil
}

// ReplaceDataset trunca todas las tablas y carga el snapshot completo con COPY.
// Todo corre en una transacción: o se reemplaza el dataset entero o nada.
// Un snapshot sin clientes se rechaza con domain.ErrEmptyDataset.
func (r *DatasetRepo) ReplaceDataset(ctx context.Context, snap *repository.DatasetSnapshot) error {
	if len(snap.Customers) == 0 {
		return domain.ErrEmptyDataset
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `TRUNCATE customers, subscriptions, payments,
		usage_events, support_interactions, unit_economics,
		unit_economics_by_segment CASCADE`)
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset truncate: %w", err)
	}

	if err := r.copyCustomers(ctx, tx, snap); err != nil {
		return err
	}
	if err := r.copySubscriptions(ctx, tx, snap); err != nil {
		return err
	}
	if err := r.copyPayments(ctx, tx, snap); err != nil {
		return err
	}
	if err := r.copyUsageEvents(ctx, tx, snap); err != nil {
		return err
	}
	if err := r.copySupport(ctx, tx, snap); err != nil {
		return err
	}
	if err := r.copyUnitEconomics(ctx, tx, snap); err != nil {
		return err
	}
	if err := r.copySegments(ctx, tx, snap); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("dataset.ReplaceDataset commit: %w", err)
	}
	return nil
}

func (r *DatasetRepo) copyCustomers(ctx context.Context, tx pgx.Tx, snap *repository.DatasetSnapshot) error {
	cols := []string{
		"customer_id", "company_name", "contact_email", "industry",
		"company_size", "acquisition_date", "acquisition_channel",
		"acquisition_cost", "geography", "has_trial", "trial_start",
		"trial_end", "referred_by",
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"customers"}, cols,
		pgx.CopyFromSlice(len(snap.Customers), func(i int) ([]any, error) {
			c := snap.Customers[i]
			var referredBy any
			if c.ReferredBy != "" {
				referredBy = c.ReferredBy
			}
			return []any{
				c.ID, c.CompanyName, c.ContactEmail, c.Industry,
				c.CompanySize, c.AcquisitionDate, c.AcquisitionChannel,
				c.AcquisitionCost, c.Geography, c.HasTrial, c.TrialStart,
				c.TrialEnd, referredBy,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset copy customers: %w", err)
	}
	return nil
}

func (r *DatasetRepo) copySubscriptions(ctx context.Context, tx pgx.Tx, snap *repository.DatasetSnapshot) error {
	cols := []string{
		"subscription_id", "customer_id", "plan_name", "billing_frequency",
		"monthly_price", "seats", "start_date", "end_date",
		"subscription_type", "churn_reason",
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"subscriptions"}, cols,
		pgx.CopyFromSlice(len(snap.Subscriptions), func(i int) ([]any, error) {
			s := snap.Subscriptions[i]
			var reason any
			if s.ChurnReason != "" {
				reason = s.ChurnReason
			}
			return []any{
				s.ID, s.CustomerID, s.PlanName, s.Billing,
				s.MonthlyPrice, s.Seats, s.StartDate, s.EndDate,
				s.Kind, reason,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset copy subscriptions: %w", err)
	}
	return nil
}

func (r *DatasetRepo) copyPayments(ctx context.Context, tx pgx.Tx, snap *repository.DatasetSnapshot) error {
	cols := []string{
		"payment_id", "subscription_id", "customer_id", "payment_date",
		"amount", "status", "payment_method", "subscription_type",
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"payments"}, cols,
		pgx.CopyFromSlice(len(snap.Payments), func(i int) ([]any, error) {
			p := snap.Payments[i]
			return []any{
				p.ID, p.SubscriptionID, p.CustomerID, p.Date,
				p.Amount, p.Status, p.Method, p.Kind,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset copy payments: %w", err)
	}
	return nil
}

func (r *DatasetRepo) copyUsageEvents(ctx context.Context, tx pgx.Tx, snap *repository.DatasetSnapshot) error {
	cols := []string{
		"event_id", "customer_id", "subscription_id", "event_date",
		"event_type", "feature", "seats_used",
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"usage_events"}, cols,
		pgx.CopyFromSlice(len(snap.UsageEvents), func(i int) ([]any, error) {
			ev := snap.UsageEvents[i]
			return []any{
				ev.ID, ev.CustomerID, ev.SubscriptionID, ev.Date,
				ev.EventType, ev.Feature, ev.SeatsUsed,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset copy usage_events: %w", err)
	}
	return nil
}

func (r *DatasetRepo) copySupport(ctx context.Context, tx pgx.Tx, snap *repository.DatasetSnapshot) error {
	cols := []string{
		"interaction_id", "customer_id", "interaction_date", "issue_category",
		"resolution_status", "resolution_time_hours", "sentiment", "sentiment_score",
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"support_interactions"}, cols,
		pgx.CopyFromSlice(len(snap.Support), func(i int) ([]any, error) {
			t := snap.Support[i]
			return []any{
				t.ID, t.CustomerID, t.Date, t.IssueCategory,
				t.Status, t.ResolutionHours, t.Sentiment, t.SentimentScore,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset copy support_interactions: %w", err)
	}
	return nil
}

func (r *DatasetRepo) copyUnitEconomics(ctx context.Context, tx pgx.Tx, snap *repository.DatasetSnapshot) error {
	cols := []string{
		"customer_id", "total_revenue", "cac", "ltv", "ltv_cac_ratio",
		"active_months", "monthly_revenue", "cac_payback_months", "churned",
		"active_days", "total_usage_events", "usage_score", "avg_sentiment",
		"health_score", "initial_plan", "initial_billing",
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"unit_economics"}, cols,
		pgx.CopyFromSlice(len(snap.UnitEconomics), func(i int) ([]any, error) {
			ue := snap.UnitEconomics[i]
			return []any{
				ue.CustomerID, ue.TotalRevenue, ue.CAC, ue.LTV, ue.LTVCACRatio,
				ue.ActiveMonths, ue.MonthlyRevenue, ue.CACPaybackMonths, ue.Churned,
				ue.ActiveDays, ue.TotalUsageEvents, ue.UsageScore, ue.AvgSentiment,
				ue.HealthScore, ue.InitialPlan, ue.InitialBilling,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset copy unit_economics: %w", err)
	}
	return nil
}

func (r *DatasetRepo) copySegments(ctx context.Context, tx pgx.Tx, snap *repository.DatasetSnapshot) error {
	cols := []string{
		"industry", "company_size", "initial_plan", "initial_billing",
		"avg_cac", "avg_ltv", "avg_ltv_cac_ratio", "avg_payback_months",
		"avg_health_score", "customer_count",
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"unit_economics_by_segment"}, cols,
		pgx.CopyFromSlice(len(snap.Segments), func(i int) ([]any, error) {
			s := snap.Segments[i]
			return []any{
				s.Industry, s.CompanySize, s.InitialPlan, s.InitialBilling,
				s.AvgCAC, s.AvgLTV, s.AvgLTVCAC, s.AvgPaybackMonths,
				s.AvgHealthScore, s.CustomerCount,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("dataset.ReplaceDataset copy unit_economics_by_segment: %w", err)
	}
	return nil
}
