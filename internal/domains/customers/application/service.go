package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

// Service exposes customer bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

// Register hashes the credential and persists a new customer with a zero wallet.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.Customer, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByUsername(ctx, input.Username); err == nil {
		return nil, mapError(ports.ErrDuplicateUsername)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(input.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer, err := domain.NewCustomer(0, input.FullName, input.Username, string(hash), input.Age)
	if err != nil {
		return nil, mapError(err)
	}
	customer.UpdateProfile(input.Address, input.Gender, input.MaritalStatus)
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Login verifies the credential and issues an opaque session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return "", mapError(ports.ErrInvalidCredentials)
	}
	customer, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", mapError(ports.ErrInvalidCredentials)
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return "", mapError(ports.ErrInvalidCredentials)
	}
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, username, token); err != nil {
		return "", err
	}
	return token, nil
}

// Logout drops any sessions held for the username.
func (s *Service) Logout(ctx context.Context, username string) {
	if strings.TrimSpace(username) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, username)
}

// ResolveToken maps a bearer token back to the customer it was issued for.
func (s *Service) ResolveToken(ctx context.Context, token string) (*domain.Customer, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, mapError(ports.ErrSessionNotFound)
	}
	username, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	customer, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapError(err)
	}
	return customer, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	customer, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapError(err)
	}
	return customer, nil
}

// Update applies a partial profile mutation to an existing customer.
func (s *Service) Update(ctx context.Context, username string, input ports.UpdateProfileInput) (*domain.Customer, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapError(err)
	}
	if input.FullName != nil {
		if err := existing.SetFullName(*input.FullName); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Age != nil {
		if err := existing.SetAge(*input.Age); err != nil {
			return nil, mapError(err)
		}
	}
	address, gender, marital := existing.Address, existing.Gender, existing.MaritalStatus
	if input.Address != nil {
		address = *input.Address
	}
	if input.Gender != nil {
		gender = *input.Gender
	}
	if input.MaritalStatus != nil {
		marital = *input.MaritalStatus
	}
	existing.UpdateProfile(address, gender, marital)
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes the account and all of its sessions.
func (s *Service) Delete(ctx context.Context, username string) error {
	_ = s.sessions.Delete(ctx, username)
	if err := s.repo.Delete(ctx, username); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

// ChargeWallet adds funds to the named customer's wallet. The adjustment is a
// single relative write so a racing purchase debit is never overwritten.
func (s *Service) ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (*domain.Customer, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, mapError(domain.ErrInvalidAmount)
	}
	updated, err := s.repo.AdjustWalletBalance(ctx, username, amount)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeductWallet removes funds, refusing to overdraw the balance.
func (s *Service) DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (*domain.Customer, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, mapError(domain.ErrInvalidAmount)
	}
	updated, err := s.repo.AdjustWalletBalance(ctx, username, amount.Neg())
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

var _ ports.Service = (*Service)(nil)
