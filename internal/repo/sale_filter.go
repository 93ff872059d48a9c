package repo

import "time"

type SaleFilter struct {
	ProductID  *int
	CustomerID *int
	Since      *time.Time
	Until      *time.Time
	Offset     *int
	Limit      *int
	// Unlimited disables the page-size cap. Exports set it to stream the
	// whole ledger; paginated listings never do.
	Unlimited bool
}
