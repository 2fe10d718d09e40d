package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	salesdomain "github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	salesports "github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
)

const tracerName = "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/observability/service"

// Service decorates the sales service with tracing, logging, and metrics.
type Service struct {
	inner   salesports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core sales service.
func New(inner salesports.Service, opts ...Option) salesports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Purchase(ctx context.Context, input salesports.PurchaseInput) (*salesports.PurchaseReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.Purchase",
		trace.WithAttributes(
			attribute.Int64("purchase.customer_id", input.CustomerID),
			attribute.Int64("purchase.goods_id", input.GoodsID),
			attribute.Int("purchase.quantity", int(input.Quantity)),
		))
	defer span.End()

	s.logInfo(ctx, "processing purchase",
		slog.Int64("customer.id", input.CustomerID),
		slog.Int64("goods.id", input.GoodsID),
		slog.Int("quantity", int(input.Quantity)))
	receipt, err := s.inner.Purchase(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "purchase failed",
			slog.Int64("customer.id", input.CustomerID), slog.Int64("goods.id", input.GoodsID))
	}
	s.metrics.recordCompleted(ctx)
	s.logInfo(ctx, "purchase completed",
		slog.Int64("purchase.id", receipt.PurchaseID),
		slog.String("total_price", receipt.TotalPrice.String()))
	return receipt, nil
}

func (s *Service) PurchaseHistory(ctx context.Context, customerID int64) ([]*salesdomain.Purchase, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.PurchaseHistory",
		trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	result, err := s.inner.PurchaseHistory(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load purchase history",
			slog.Int64("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("purchase.count", len(result)))
	return result, nil
}

func (s *Service) Recommend(ctx context.Context, customerID int64, limit int) ([]*salesdomain.RecommendedGoods, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.Recommend",
		trace.WithAttributes(attribute.Int64("customer.id", customerID), attribute.Int("limit", limit)))
	defer span.End()

	result, err := s.inner.Recommend(ctx, customerID, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute recommendations",
			slog.Int64("customer.id", customerID))
	}
	s.metrics.recordRecommendation(ctx, len(result))
	span.SetAttributes(attribute.Int("recommendation.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	purchasesCompleted metric.Int64Counter
	purchasesRejected  metric.Int64Counter
	recommendations    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	completed, _ := m.Int64Counter("sales.service.purchases_completed",
		metric.WithDescription("Number of purchases committed"))
	rejected, _ := m.Int64Counter("sales.service.purchases_rejected",
		metric.WithDescription("Number of purchases rejected or failed"))
	recommendations, _ := m.Int64Counter("sales.service.recommendations_served",
		metric.WithDescription("Number of recommendation requests served"))
	return serviceMetrics{purchasesCompleted: completed, purchasesRejected: rejected, recommendations: recommendations}
}

func (m serviceMetrics) recordCompleted(ctx context.Context) {
	if m.purchasesCompleted != nil {
		m.purchasesCompleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.purchasesRejected != nil {
		m.purchasesRejected.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRecommendation(ctx context.Context, count int) {
	if m.recommendations != nil {
		m.recommendations.Add(ctx, 1, metric.WithAttributes(attribute.Int("recommendation.count", count)))
	}
}

var _ salesports.Service = (*Service)(nil)
