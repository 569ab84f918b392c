package persistence

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// InstrumentationName nombre de instrumentación para trazas y métricas.
const InstrumentationName = "github.com/jhoicas/catalog-api/persistence"

const (
	gormSpanKey  = "catalog:gorm:span"
	gormStartKey = "catalog:gorm:start"
)

// Metrics contadores de la capa de persistencia.
type Metrics struct {
	conflicts     metric.Int64Counter
	queryDuration metric.Float64Histogram
}

// NewMetrics crea las métricas sobre el MeterProvider dado.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(InstrumentationName)
	conflicts, err := meter.Int64Counter("catalog.persistence.conflicts",
		metric.WithDescription("Actualizaciones rechazadas por versión desactualizada"))
	if err != nil {
		return nil, err
	}
	queryDuration, err := meter.Float64Histogram("catalog.persistence.query.duration",
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &Metrics{conflicts: conflicts, queryDuration: queryDuration}, nil
}

// NewNoopMetrics métricas que no registran nada.
func NewNoopMetrics() *Metrics {
	m, _ := NewMetrics(metricnoop.NewMeterProvider()) //nolint:errcheck
	return m
}

// RecordConflict cuenta un conflicto de concurrencia optimista.
func (m *Metrics) RecordConflict(ctx context.Context, entityName string) {
	m.conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entityName)))
}

func (m *Metrics) recordQuery(ctx context.Context, operation string, d time.Duration) {
	m.queryDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("db.operation", operation)))
}

// RegisterTracing registra callbacks de GORM que abren un span por operación de base de datos
// y registran su duración.
func RegisterTracing(db *gorm.DB, tp trace.TracerProvider, m *Metrics) error {
	if m == nil {
		m = NewNoopMetrics()
	}
	tracer := tp.Tracer(InstrumentationName)
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("catalog:before_query", startSpan(tracer, "db.query")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("catalog:after_query", endSpan(m, "SELECT")); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("catalog:before_create", startSpan(tracer, "db.create")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("catalog:after_create", endSpan(m, "INSERT")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("catalog:before_update", startSpan(tracer, "db.update")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("catalog:after_update", endSpan(m, "UPDATE")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("catalog:before_delete", startSpan(tracer, "db.delete")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("catalog:after_delete", endSpan(m, "DELETE")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("catalog:before_row", startSpan(tracer, "db.row")); err != nil {
		return err
	}
	return cb.Row().After("gorm:row").Register("catalog:after_row", endSpan(m, "ROW"))
}

func startSpan(tracer trace.Tracer, name string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attribute.String("db.system", db.Dialector.Name())))
		db.Statement.Context = ctx
		db.InstanceSet(gormSpanKey, span)
		db.InstanceSet(gormStartKey, time.Now())
	}
}

func endSpan(m *Metrics, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(gormSpanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.RecordError(db.Error)
			span.SetStatus(codes.Error, db.Error.Error())
		}
		if start, ok := db.InstanceGet(gormStartKey); ok {
			if t, ok := start.(time.Time); ok {
				m.recordQuery(db.Statement.Context, operation, time.Since(t))
			}
		}
	}
}
