package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"moving-dispatch-service/internal/adapters/market"
	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
	"moving-dispatch-service/internal/services"
)

// capturingQuoteRepo records SaveQuote calls for assertions.
type capturingQuoteRepo struct {
	saved []ports.QuoteRecord
}

func (r *capturingQuoteRepo) SaveQuote(ctx context.Context, rec ports.QuoteRecord) error {
	r.saved = append(r.saved, rec)
	return nil
}

func (r *capturingQuoteRepo) ListRecentQuotes(ctx context.Context, limit int) ([]ports.QuoteRecord, error) {
	return r.saved, nil
}

func TestQuoteAuditStampsServerTime(t *testing.T) {
	serverNow := time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC)
	clientAt := serverNow.Add(-48 * time.Hour)

	provider := &market.FixedMarketProvider{Conditions: ports.MarketConditions{
		DemandLevel:  1.0,
		SupplyLevel:  1.0,
		Weather:      domain.WeatherClear,
		TrafficLevel: 0.3,
		ObservedAt:   clientAt,
	}}
	repo := &capturingQuoteRepo{}
	h := &QuoteHandler{
		Engine: services.NewPricingEngine(services.DefaultPricingConfig(), provider),
		Repo:   repo,
		Now:    func() time.Time { return serverNow },
	}

	body := `{
		"distance_km": 100,
		"pickup": {"lat": 6.5, "lng": 3.4},
		"at": "` + clientAt.Format(time.RFC3339) + `",
		"urgency": "low"
	}`
	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Quotes(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(repo.saved))
	}

	rec := repo.saved[0]
	// The client-supplied quote time must not drive the audit trail's recency
	// ordering; it is kept separately for billing.
	if !rec.CreatedAt.Equal(serverNow) {
		t.Errorf("created_at = %v, want server time %v", rec.CreatedAt, serverNow)
	}
	if !rec.QuotedAt.Equal(clientAt) {
		t.Errorf("quoted_at = %v, want client time %v", rec.QuotedAt, clientAt)
	}
	if rec.DistanceKm != 100 {
		t.Errorf("distance_km = %v, want 100", rec.DistanceKm)
	}
}
