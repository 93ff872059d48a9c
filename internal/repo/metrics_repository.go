package repo

type BestSeller struct {
	Name      string `json:"name"`
	UnitsSold int    `json:"units_sold"`
}

type Metrics struct {
	TotalProducts     int        `json:"total_products"`
	TotalSales        int        `json:"total_sales"`
	LowStockCount     int        `json:"low_stock_count"`
	BestSeller        BestSeller `json:"best_seller"`
	OutstandingCredit float64    `json:"outstanding_credit"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
