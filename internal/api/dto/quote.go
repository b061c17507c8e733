package dto

import "time"

type QuoteRequest struct {
	DistanceKm     float64    `json:"distance_km"`
	Pickup         Point      `json:"pickup"`
	At             *time.Time `json:"at"`
	Urgency        string     `json:"urgency"`
	LocationClass  string     `json:"location_class"`
	ItemComplexity float64    `json:"item_complexity"`
}

type QuoteResponse struct {
	BasePriceNGN      float64            `json:"base_price_ngn"`
	DynamicMultiplier float64            `json:"dynamic_multiplier"`
	FinalPriceNGN     float64            `json:"final_price_ngn"`
	Breakdown         map[string]float64 `json:"breakdown"`
	Confidence        float64            `json:"confidence"`
	PriceRangeMinNGN  float64            `json:"price_range_min_ngn"`
	PriceRangeMaxNGN  float64            `json:"price_range_max_ngn"`
	Explanation       string             `json:"explanation"`
	QuotedAt          time.Time          `json:"quoted_at"`
}

type QuoteAuditResponse struct {
	ID                string    `json:"id"`
	DistanceKm        float64   `json:"distance_km"`
	BasePriceNGN      float64   `json:"base_price_ngn"`
	DynamicMultiplier float64   `json:"dynamic_multiplier"`
	FinalPriceNGN     float64   `json:"final_price_ngn"`
	Confidence        float64   `json:"confidence"`
	Explanation       string    `json:"explanation"`
	QuotedAt          time.Time `json:"quoted_at"`
	CreatedAt         time.Time `json:"created_at"`
}

type ListQuotesResponse struct {
	Quotes []QuoteAuditResponse `json:"quotes"`
}
