package usageres

import (
	"visioneer-server/internal/domain/usage"
)

// UsageRecordResponse represents a single ledger entry
type UsageRecordResponse struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	Service   string         `json:"service"`
	Provider  string         `json:"provider"`
	Model     string         `json:"model,omitempty"`
	Quantity  int            `json:"quantity"`
	CostUSD   string         `json:"cost_usd"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt int64          `json:"created_at"`
}

// UsageListResponse represents a paginated list of ledger entries
type UsageListResponse struct {
	Object  string                `json:"object"`
	Data    []UsageRecordResponse `json:"data"`
	HasMore bool                  `json:"has_more"`
	Total   int64                 `json:"total"`
}

// UsageSummaryResponse aggregates the ledger by service kind
type UsageSummaryResponse struct {
	Object string             `json:"object"`
	Data   []UsageSummaryItem `json:"data"`
}

// UsageSummaryItem is one aggregated row of the summary
type UsageSummaryItem struct {
	Service      string `json:"service"`
	RequestCount int64  `json:"request_count"`
	Quantity     int64  `json:"quantity"`
	CostUSD      string `json:"cost_usd"`
}

// NewUsageRecordResponse creates a response from a ledger record
func NewUsageRecordResponse(record *usage.Record) *UsageRecordResponse {
	return &UsageRecordResponse{
		ID:        record.PublicID,
		Object:    "usage_record",
		Service:   string(record.Service),
		Provider:  record.Provider,
		Model:     record.Model,
		Quantity:  record.Quantity,
		CostUSD:   record.CostUSD.StringFixed(6),
		Metadata:  record.Metadata,
		CreatedAt: record.CreatedAt.Unix(),
	}
}

// NewUsageListResponse creates a list response from ledger records
func NewUsageListResponse(records []*usage.Record, hasMore bool, total int64) *UsageListResponse {
	data := make([]UsageRecordResponse, len(records))
	for i, record := range records {
		data[i] = *NewUsageRecordResponse(record)
	}

	return &UsageListResponse{
		Object:  "list",
		Data:    data,
		HasMore: hasMore,
		Total:   total,
	}
}

// NewUsageSummaryResponse creates a summary response
func NewUsageSummaryResponse(summaries []*usage.Summary) *UsageSummaryResponse {
	data := make([]UsageSummaryItem, len(summaries))
	for i, s := range summaries {
		data[i] = UsageSummaryItem{
			Service:      string(s.Service),
			RequestCount: s.RequestCount,
			Quantity:     s.Quantity,
			CostUSD:      s.CostUSD.StringFixed(6),
		}
	}

	return &UsageSummaryResponse{
		Object: "usage_summary",
		Data:   data,
	}
}
