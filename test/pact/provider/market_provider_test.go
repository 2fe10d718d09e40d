//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	pacttest "github.com/marketcore/go-gin-market-server/test/pact"

	marketserver "github.com/marketcore/go-gin-market-server/go"
	catalogmemory "github.com/marketcore/go-gin-market-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/marketcore/go-gin-market-server/internal/domains/catalog/application"
	catalogdomain "github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	customermemory "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/memory"
	customerobs "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/observability"
	customerapp "github.com/marketcore/go-gin-market-server/internal/domains/customers/application"
	reviewcatalog "github.com/marketcore/go-gin-market-server/internal/domains/reviews/adapters/catalog"
	reviewmemory "github.com/marketcore/go-gin-market-server/internal/domains/reviews/adapters/memory"
	reviewapp "github.com/marketcore/go-gin-market-server/internal/domains/reviews/application"
	salescatalog "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/catalog"
	salesmemory "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/memory"
	salesobs "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/observability"
	salesapp "github.com/marketcore/go-gin-market-server/internal/domains/sales/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestMarketProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateGoodsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetGoods(t)
			return nil, nil
		},
		pacttest.StateGoodsExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetGoods(t)
			if setup {
				app.seedGoods(t, pacttest.ExistingGoodsID)
			}
			return nil, nil
		},
		pacttest.StateGoodsMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetGoods(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetGoods(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	catalog *catalogmemory.Repository
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	customerRepo := customermemory.NewRepository()
	catalogRepo := catalogmemory.NewRepository()

	customerService := customerobs.New(customerapp.NewService(customerRepo, customermemory.NewSessionStore(0)))
	catalogService := catalogapp.NewService(catalogRepo)
	salesService := salesobs.New(salesapp.NewService(
		salesmemory.NewLedger(customerRepo, catalogRepo),
		salescatalog.NewReader(catalogService),
	))
	reviewService := reviewapp.NewService(reviewmemory.NewRepository(), reviewcatalog.NewChecker(catalogService))

	handlers := marketserver.ApiHandleFunctions{
		CustomerAPI: marketserver.NewCustomerAPI(customerService),
		GoodsAPI:    marketserver.NewGoodsAPI(catalogService),
		SalesAPI:    marketserver.NewSalesAPI(salesService, customerService),
		ReviewAPI:   marketserver.NewReviewAPI(reviewService, customerService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = marketserver.NewRouterWithGinEngine(router, handlers, customerService)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		catalog: catalogRepo,
		server:  server,
	}
}

func (a *contractProviderApp) resetGoods(t testing.TB) {
	t.Helper()
	goods, err := a.catalog.List(context.Background())
	require.NoError(t, err)
	for _, item := range goods {
		_ = a.catalog.Delete(context.Background(), item.ID)
	}
}

func (a *contractProviderApp) seedGoods(t testing.TB, id int64) {
	t.Helper()
	goods, err := catalogdomain.NewGoods(id, "Pact Mechanical Keyboard", "electronics", decimal.RequireFromString("29.99"), 50)
	require.NoError(t, err)
	goods.Description = "87-key mechanical"
	goods.ReplaceImages([]string{"https://example.pact/goods/keyboard.png"})
	_, err = a.catalog.Save(context.Background(), goods)
	require.NoError(t, err)
}
