package pricecharting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/logger"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = (*mockLogger)(nil)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL:            server.URL,
		APIKey:             "test-key",
		MinRequestInterval: time.Second,
	}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestClient_FetchPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("t"); got != "test-key" {
			t.Errorf("api key param = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("q"); got != "pokemon Miriam 205" {
			t.Errorf("search param = %q, want the full term with spaces intact", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":       "success",
			"id":           "12345",
			"product-name": "Miriam #205",
			"loose-price":  4250,
		})
	})

	card := domain.NewCard("SV1a", "205", "SAR", "Miriam")
	price, err := client.FetchPrice(context.Background(), card)
	if err != nil {
		t.Fatalf("FetchPrice: %v", err)
	}
	if price == nil {
		t.Fatal("expected a market price")
	}
	if want := decimal.RequireFromString("42.5"); !price.Price.Equal(want) {
		t.Errorf("Price = %s, want %s (cents converted to dollars)", price.Price, want)
	}
}

func TestClient_FetchPrice_NoResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "error"})
	})

	price, err := client.FetchPrice(context.Background(), domain.NewCard("SV1a", "205", "SAR", "Miriam"))
	if err != nil {
		t.Fatalf("lookup miss must not be an error: %v", err)
	}
	if price != nil {
		t.Errorf("price = %+v, want nil for a lookup miss", price)
	}
}

func TestClient_FetchPrice_ZeroPriceTreatedAsMissing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":      "success",
			"id":          "12345",
			"loose-price": 0,
		})
	})

	price, err := client.FetchPrice(context.Background(), domain.NewCard("SV1a", "205", "SAR", "Miriam"))
	if err != nil {
		t.Fatalf("FetchPrice: %v", err)
	}
	if price != nil {
		t.Errorf("price = %+v, want nil when the API has no usable price", price)
	}
}

func TestClient_FetchPrice_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.FetchPrice(context.Background(), domain.NewCard("SV1a", "205", "SAR", "Miriam")); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
