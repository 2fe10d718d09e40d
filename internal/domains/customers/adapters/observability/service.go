package observability

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	customerdomain "github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

const tracerName = "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/observability/service"

// Service decorates the customer service with tracing, logging, and metrics.
// Token values and passwords never reach logs or span attributes.
type Service struct {
	inner   customerports.Service
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

// New wraps the core customer service.
func New(inner customerports.Service, opts ...Option) customerports.Service {
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

func (s *Service) Register(ctx context.Context, input customerports.RegisterInput) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Register",
		trace.WithAttributes(attribute.String("customer.username", input.Username)))
	defer span.End()

	s.logInfo(ctx, "registering customer", slog.String("username", input.Username))
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register customer",
			slog.String("username", input.Username))
	}
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "customer registered", slog.Int64("customer.id", result.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Login",
		trace.WithAttributes(attribute.String("customer.username", username)))
	defer span.End()

	token, err := s.inner.Login(ctx, username, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return "", s.handleError(ctx, span, err, "login failed", slog.String("username", username))
	}
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "customer logged in", slog.String("username", username))
	return token, nil
}

func (s *Service) Logout(ctx context.Context, username string) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Logout",
		trace.WithAttributes(attribute.String("customer.username", username)))
	defer span.End()

	s.inner.Logout(ctx, username)
	s.logInfo(ctx, "customer logged out", slog.String("username", username))
}

func (s *Service) ResolveToken(ctx context.Context, token string) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.ResolveToken")
	defer span.End()

	result, err := s.inner.ResolveToken(ctx, token)
	if err != nil {
		if span != nil {
			span.SetStatus(codes.Error, "token rejected")
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("customer.username", result.Username))
	return result, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetByUsername",
		trace.WithAttributes(attribute.String("customer.username", username)))
	defer span.End()

	result, err := s.inner.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer",
			slog.String("username", username))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, username string, input customerports.UpdateProfileInput) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Update",
		trace.WithAttributes(attribute.String("customer.username", username)))
	defer span.End()

	s.logInfo(ctx, "updating customer", slog.String("username", username))
	result, err := s.inner.Update(ctx, username, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update customer",
			slog.String("username", username))
	}
	s.logInfo(ctx, "customer updated", slog.Int64("customer.id", result.ID))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, username string) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Delete",
		trace.WithAttributes(attribute.String("customer.username", username)))
	defer span.End()

	s.logInfo(ctx, "deleting customer", slog.String("username", username))
	if err := s.inner.Delete(ctx, username); err != nil {
		return s.handleError(ctx, span, err, "failed to delete customer",
			slog.String("username", username))
	}
	s.logInfo(ctx, "customer deleted", slog.String("username", username))
	return nil
}

func (s *Service) List(ctx context.Context) ([]*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("customer.count", len(result)))
	return result, nil
}

func (s *Service) ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.ChargeWallet",
		trace.WithAttributes(attribute.String("customer.username", username)))
	defer span.End()

	s.logInfo(ctx, "charging wallet", slog.String("username", username), slog.String("amount", amount.String()))
	result, err := s.inner.ChargeWallet(ctx, username, amount)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to charge wallet",
			slog.String("username", username))
	}
	s.metrics.recordWalletCharge(ctx)
	return result, nil
}

func (s *Service) DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.DeductWallet",
		trace.WithAttributes(attribute.String("customer.username", username)))
	defer span.End()

	s.logInfo(ctx, "deducting wallet", slog.String("username", username), slog.String("amount", amount.String()))
	result, err := s.inner.DeductWallet(ctx, username, amount)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to deduct wallet",
			slog.String("username", username))
	}
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
	registered    metric.Int64Counter
	logins        metric.Int64Counter
	walletCharges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("customers.service.registered",
		metric.WithDescription("Number of customers registered"))
	logins, _ := m.Int64Counter("customers.service.logins",
		metric.WithDescription("Number of login attempts"))
	walletCharges, _ := m.Int64Counter("customers.service.wallet_charges",
		metric.WithDescription("Number of wallet top-ups"))
	return serviceMetrics{registered: registered, logins: logins, walletCharges: walletCharges}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, success bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", success)))
	}
}

func (m serviceMetrics) recordWalletCharge(ctx context.Context) {
	if m.walletCharges != nil {
		m.walletCharges.Add(ctx, 1)
	}
}

var _ customerports.Service = (*Service)(nil)
