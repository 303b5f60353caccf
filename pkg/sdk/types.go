package sdk

// Item is one search result row keyed by column alias.
type Item map[string]any

// Meta is the pagination summary of a search page.
type Meta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

// Page is one page of search results.
type Page struct {
	Items []Item `json:"items"`
	Meta  Meta   `json:"meta"`
}

// HealthStatus is the aggregate service status.
type HealthStatus string

// Health statuses.
const (
	StatusHealthy   HealthStatus = "ok"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "error"
)

// Health is the service health report.
type Health struct {
	Status HealthStatus      `json:"status"`
	Checks map[string]string `json:"checks"`
}
