package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/kpilab/saasmetrics/internal/application/analytics"
	"github.com/kpilab/saasmetrics/internal/application/synth"
	"github.com/kpilab/saasmetrics/internal/domain/entity"
	"github.com/kpilab/saasmetrics/internal/domain/repository"
	"github.com/kpilab/saasmetrics/internal/infrastructure/csvexport"
	infrapdf "github.com/kpilab/saasmetrics/internal/infrastructure/pdf"
	"github.com/kpilab/saasmetrics/internal/infrastructure/postgres"
	"github.com/kpilab/saasmetrics/pkg/config"
	"github.com/kpilab/saasmetrics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	start, end, err := cfg.Gen.Horizon()
	if err != nil {
		log.Fatal().Err(err).Msg("horizonte de simulación")
	}

	log.Info().
		Int64("seed", cfg.Gen.Seed).
		Time("start", start).
		Time("end", end).
		Int("customers", cfg.Gen.NumCustomers).
		Msg("iniciando generación del dataset")

	began := time.Now()
	ds := synth.New(synth.Params{
		Seed:          cfg.Gen.Seed,
		Start:         start,
		End:           end,
		NumCustomers:  cfg.Gen.NumCustomers,
		BaseUsageRate: cfg.Gen.BaseUsageRate,
	}).Generate()

	log.Info().
		Int("customers", len(ds.Customers)).
		Int("subscriptions", len(ds.Subscriptions)).
		Int("payments", len(ds.Payments)).
		Int("usage_events", len(ds.UsageEvents)).
		Int("support", len(ds.Support)).
		Dur("elapsed", time.Since(began)).
		Msg("dataset generado")

	// Post-proceso: unit economics + agregaciones de uso.
	econ := analytics.NewAggregator(end).UnitEconomics(
		ds.Customers, ds.Subscriptions, ds.Payments, ds.UsageEvents, ds.Support,
	)
	segments := analytics.SegmentRollup(ds.Customers, econ)
	monthly := analytics.MonthlyUsage(ds.UsageEvents)
	features := analytics.TopFeatures(ds.UsageEvents)
	perCustomer := analytics.CustomerUsage(ds.UsageEvents)

	snap := &repository.DatasetSnapshot{
		Customers:     ds.Customers,
		Subscriptions: ds.Subscriptions,
		Payments:      ds.Payments,
		UsageEvents:   ds.UsageEvents,
		Support:       ds.Support,
		UnitEconomics: econ,
		Segments:      segments,
	}

	exporter, err := csvexport.NewExporter(cfg.Gen.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar directorio de salida")
	}
	if err := exporter.Export(snap, monthly, features, perCustomer); err != nil {
		log.Fatal().Err(err).Msg("exportar CSVs")
	}
	log.Info().Str("dir", cfg.Gen.OutputDir).Msg("CSVs escritos")

	if cfg.Gen.Sink == "postgres" {
		loadPostgres(cfg, log, snap)
	}

	if cfg.Report.Path != "" {
		writeReport(cfg, log, econ, segments, ds)
	}
}

// loadPostgres carga el snapshot en la base (reemplazo total).
func loadPostgres(cfg *config.Config, log *logger.Logger, snap *repository.DatasetSnapshot) {
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewDatasetRepository(pool)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	if err := repo.ReplaceDataset(ctx, snap); err != nil {
		log.Fatal().Err(err).Msg("cargar dataset")
	}
	log.Info().Msg("dataset cargado en PostgreSQL")
}

// writeReport genera el reporte ejecutivo en PDF.
func writeReport(cfg *config.Config, log *logger.Logger, econ []entity.UnitEconomics, segments []entity.SegmentEconomics, ds *synth.Dataset) {
	summary := analytics.Summarize(econ)
	revenue := analytics.MonthlyRevenue(ds.Payments)

	doc, err := infrapdf.NewReportGenerator().GenerateKPIReport(summary, segments, revenue, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("generar reporte PDF")
	}

	if dir := filepath.Dir(cfg.Report.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("preparar directorio del reporte")
		}
	}
	if err := os.WriteFile(cfg.Report.Path, doc, 0o644); err != nil {
		log.Fatal().Err(err).Msg("escribir reporte PDF")
	}
	log.Info().Str("path", cfg.Report.Path).Msg("reporte PDF escrito")
}
