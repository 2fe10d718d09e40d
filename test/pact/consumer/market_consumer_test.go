//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/marketcore/go-gin-market-server/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type goodsPayload struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	PricePerItem string   `json:"price_per_item"`
	Description  string   `json:"description"`
	ImageURLs    []string `json:"image_urls"`
	CountInStock int32    `json:"count_in_stock"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleGoodsPayload()
	goodsBodyMatcher := matchers.Map{
		"id":             matchers.Like(example["id"]),
		"name":           matchers.Like(example["name"]),
		"category":       matchers.Like(example["category"]),
		"price_per_item": matchers.Regex("29.99", `^\d+(\.\d+)?$`),
		"count_in_stock": matchers.Like(example["count_in_stock"]),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateGoodsExists).
		UponReceiving("a request to fetch existing goods").
		WithRequest("GET", fmt.Sprintf("/goods/%d", pacttest.ExistingGoodsID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(goodsBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateGoodsExists).
		UponReceiving("a request to list the catalog").
		WithRequest("GET", "/goods").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(goodsBodyMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateGoodsMissing).
		UponReceiving("a request for missing goods").
		WithRequest("GET", fmt.Sprintf("/goods/%d", pacttest.MissingGoodsID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newGoodsClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fetched, err := client.GetGoods(ctx, pacttest.ExistingGoodsID)
		if err != nil {
			return fmt.Errorf("get goods: %w", err)
		}
		if fetched == nil || fetched.ID != pacttest.ExistingGoodsID {
			return fmt.Errorf("expected goods id %d, got %+v", pacttest.ExistingGoodsID, fetched)
		}

		listed, err := client.ListGoods(ctx)
		if err != nil {
			return fmt.Errorf("list goods: %w", err)
		}
		if len(listed) == 0 {
			return fmt.Errorf("expected at least one goods entry")
		}

		if _, err := client.GetGoods(ctx, pacttest.MissingGoodsID); err == nil {
			return fmt.Errorf("expected 404 for goods %d", pacttest.MissingGoodsID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type goodsClient struct {
	baseURL    string
	httpClient *http.Client
}

func newGoodsClient(config pactconsumer.MockServerConfig) *goodsClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &goodsClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *goodsClient) GetGoods(ctx context.Context, id int64) (*goodsPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/goods/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload goodsPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *goodsClient) ListGoods(ctx context.Context) ([]goodsPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/goods", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload []goodsPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
