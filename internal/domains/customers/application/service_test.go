package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/memory"
	"github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

func newCustomerService() *Service {
	return NewService(memory.NewRepository(), memory.NewSessionStore(0))
}

func registerAlice(t *testing.T, svc *Service) *domain.Customer {
	t.Helper()
	customer, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Alice Example",
		Username: "alice",
		Password: "s3cret!",
		Age:      30,
		Address:  "12 Main St",
	})
	require.NoError(t, err)
	return customer
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newCustomerService()
	customer := registerAlice(t, svc)
	require.Equal(t, "alice", customer.Username)
	require.True(t, customer.WalletBalance.IsZero())
	require.False(t, customer.IsAdmin)
	// The raw password must never be stored.
	require.NotEqual(t, "s3cret!", customer.PasswordHash)

	token, err := svc.Login(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, customer.ID, resolved.ID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Other Alice",
		Username: "alice",
		Password: "another-pass",
		Age:      25,
	})
	require.ErrorIs(t, err, ports.ErrDuplicateUsername)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newCustomerService()
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Alice Example",
		Username: "alice",
		Password: "abc",
		Age:      30,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)

	_, err := svc.Login(context.Background(), "alice", "wrong-pass")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)
	token, err := svc.Login(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)

	svc.Logout(context.Background(), "alice")

	_, err = svc.ResolveToken(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestUpdate_PartialProfileChange(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)

	newAddress := "99 Elm St"
	updated, err := svc.Update(context.Background(), "alice", ports.UpdateProfileInput{Address: &newAddress})
	require.NoError(t, err)
	require.Equal(t, "99 Elm St", updated.Address)
	// Untouched fields survive the update.
	require.Equal(t, "Alice Example", updated.FullName)
	require.Equal(t, int32(30), updated.Age)
}

func TestDelete_DropsSessions(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)
	token, err := svc.Login(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "alice"))

	_, err = svc.ResolveToken(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthentication)
	_, err = svc.GetByUsername(context.Background(), "alice")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestWallet_ChargeAndDeduct(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)

	charged, err := svc.ChargeWallet(context.Background(), "alice", decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	require.Equal(t, "100.00", charged.WalletBalance.StringFixed(2))

	debited, err := svc.DeductWallet(context.Background(), "alice", decimal.RequireFromString("59.98"))
	require.NoError(t, err)
	require.Equal(t, "40.02", debited.WalletBalance.StringFixed(2))
}

func TestWallet_CannotOverdraw(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)

	_, err := svc.DeductWallet(context.Background(), "alice", decimal.RequireFromString("0.01"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestWallet_ConcurrentChargesDoNotLoseUpdates(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ChargeWallet(context.Background(), "alice", decimal.RequireFromString("10.00"))
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	customer, err := svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "80.00", customer.WalletBalance.StringFixed(2))
}

func TestWallet_RejectsNonPositiveAmounts(t *testing.T) {
	svc := newCustomerService()
	registerAlice(t, svc)

	_, err := svc.ChargeWallet(context.Background(), "alice", decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.DeductWallet(context.Background(), "alice", decimal.RequireFromString("-5"))
	require.ErrorIs(t, err, ErrInvalidInput)
}
