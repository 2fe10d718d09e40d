//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "market-api"
	ConsumerName = "storefront-web"

	StateGoodsBaseline = "goods baseline"
	StateGoodsExists   = "goods with id 101 exists"
	StateGoodsMissing  = "no goods with id 404"
)

const (
	ExistingGoodsID int64 = 101
	MissingGoodsID  int64 = 404
)

const (
	exampleGoodsName  = "Pact Mechanical Keyboard"
	exampleGoodsImage = "https://example.pact/goods/keyboard.png"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleGoodsPayload provides stable test data for pact interactions.
func ExampleGoodsPayload() map[string]any {
	return map[string]any{
		"id":             ExistingGoodsID,
		"name":           exampleGoodsName,
		"category":       "electronics",
		"price_per_item": "29.99",
		"description":    "87-key mechanical",
		"image_urls":     []string{exampleGoodsImage},
		"count_in_stock": 50,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
