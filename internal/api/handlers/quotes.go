package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"moving-dispatch-service/internal/api/dto"
	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
	"moving-dispatch-service/internal/services"
)

// QuoteHandler exposes dynamic pricing over HTTP. Repo is optional: when nil,
// quotes are still issued but the audit endpoints are unavailable.
type QuoteHandler struct {
	Engine *services.PricingEngine
	Repo   ports.QuoteRepository
	Now    func() time.Time
}

func (h *QuoteHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Quotes dispatches /quotes by method: POST issues a quote, GET lists the
// audit trail.
func (h *QuoteHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *QuoteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	at := h.now()
	if req.At != nil {
		at = *req.At
	}

	factors := domain.PricingFactors{
		DistanceKm:     req.DistanceKm,
		Pickup:         domain.GeoPoint{Lat: req.Pickup.Lat, Lng: req.Pickup.Lng},
		At:             at,
		Urgency:        domain.Urgency(req.Urgency),
		LocationClass:  req.LocationClass,
		ItemComplexity: req.ItemComplexity,
	}

	result, err := h.Engine.CalculateDynamicPrice(r.Context(), factors)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	// Audit persistence is best effort: a storage hiccup must not block the
	// quote the customer is waiting on. CreatedAt is server time; the
	// client-supplied quote time goes into QuotedAt so the recency ordering
	// of the audit trail cannot be skewed by the request payload.
	if h.Repo != nil {
		rec := ports.QuoteRecord{
			DistanceKm:        factors.DistanceKm,
			BasePrice:         result.BasePrice,
			DynamicMultiplier: result.DynamicMultiplier,
			FinalPrice:        result.FinalPrice,
			Confidence:        result.Confidence,
			Explanation:       result.Explanation,
			QuotedAt:          result.QuotedAt,
			CreatedAt:         h.now(),
		}
		if err := h.Repo.SaveQuote(r.Context(), rec); err != nil {
			log.Printf("save quote failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.QuoteResponse{
		BasePriceNGN:      result.BasePrice,
		DynamicMultiplier: result.DynamicMultiplier,
		FinalPriceNGN:     result.FinalPrice,
		Breakdown:         result.Breakdown,
		Confidence:        result.Confidence,
		PriceRangeMinNGN:  result.PriceRange.Min,
		PriceRangeMaxNGN:  result.PriceRange.Max,
		Explanation:       result.Explanation,
		QuotedAt:          result.QuotedAt,
	})
}

func (h *QuoteHandler) list(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "quote audit storage is not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	records, err := h.Repo.ListRecentQuotes(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListQuotesResponse{Quotes: make([]dto.QuoteAuditResponse, 0, len(records))}
	for _, rec := range records {
		res.Quotes = append(res.Quotes, dto.QuoteAuditResponse{
			ID:                rec.ID,
			DistanceKm:        rec.DistanceKm,
			BasePriceNGN:      rec.BasePrice,
			DynamicMultiplier: rec.DynamicMultiplier,
			FinalPriceNGN:     rec.FinalPrice,
			Confidence:        rec.Confidence,
			Explanation:       rec.Explanation,
			QuotedAt:          rec.QuotedAt,
			CreatedAt:         rec.CreatedAt,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}
