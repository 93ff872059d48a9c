package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/pos-register/internal/repo"
)

// fixQueryTimestamp reverses the substitution from + for space in the date
// parameters, otherwise time.Parse will fail with an error. URL query
// parameters replace + with a space, so 2025-07-03T17:44:03+02:00 becomes
// 2025-07-03T17:44:03 02:00 on r.URL.Query().Get().
func fixQueryTimestamp(s string) string {
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		return s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	return s
}

func parseSaleFilter(r *http.Request) (repo.SaleFilter, string) {
	q := r.URL.Query()
	var f repo.SaleFilter

	if s := fixQueryTimestamp(q.Get("since")); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return f, "invalid since date format"
		}
		f.Since = &ts
	}
	if s := fixQueryTimestamp(q.Get("until")); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return f, "invalid until date format"
		}
		f.Until = &ts
	}

	if s := q.Get("product_id"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return f, "invalid product_id format"
		}
		f.ProductID = &v
	}
	if s := q.Get("customer_id"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return f, "invalid customer_id format"
		}
		f.CustomerID = &v
	}

	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return f, "invalid limit format"
		}
		if v <= 0 {
			return f, "limit must be greater than zero"
		}
		f.Limit = &v
	}
	if s := q.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return f, "invalid offset format"
		}
		if v < 0 {
			return f, "offset must be zero or positive"
		}
		f.Offset = &v
	}

	return f, ""
}

// GetSalesHandler godoc
// @Summary Query the sales ledger
// @Tags sales
// @Produce json
// @Param since query string false "Filter sales from this timestamp (RFC3339)"
// @Param until query string false "Filter sales until this timestamp (RFC3339)"
// @Param product_id query int false "Filter by product"
// @Param customer_id query int false "Filter by customer"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} SalesSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	filter, badInput := parseSaleFilter(r)
	if badInput != "" {
		http.Error(w, badInput, http.StatusBadRequest)
		return
	}

	sales, total, err := saleRepo.List(filter)
	if err != nil {
		log.Printf("could not retrieve sales: %v", err)
		http.Error(w, "could not retrieve sales", http.StatusInternalServerError)
		return
	}

	response := SalesSearchResult{
		Data: make([]SaleResponse, len(sales)),
		Meta: Meta{TotalCount: total},
	}
	for i, s := range sales {
		response.Data[i] = SaleResponse{
			ID:           s.ID,
			ProductID:    s.ProductID,
			Quantity:     s.Quantity,
			CustomerID:   s.CustomerID,
			CreditAmount: s.CreditAmount,
			CreatedAt:    s.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ExportSalesHandler godoc
// @Summary Export the sales ledger
// @Tags sales
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /sales/export [get]
func ExportSalesHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	filter, badInput := parseSaleFilter(r)
	if badInput != "" {
		http.Error(w, badInput, http.StatusBadRequest)
		return
	}
	filter.Limit = nil
	filter.Offset = nil
	filter.Unlimited = true

	sales, _, err := saleRepo.List(filter)
	if err != nil {
		http.Error(w, "could not retrieve sales", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.json"`)
		json.NewEncoder(w).Encode(sales)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "quantity", "customer_id", "credit_amount", "created_at"})
		for _, s := range sales {
			customerID := ""
			if s.CustomerID != nil {
				customerID = strconv.Itoa(*s.CustomerID)
			}
			_ = csvWriter.Write([]string{
				strconv.Itoa(s.ID),
				strconv.Itoa(s.ProductID),
				strconv.Itoa(s.Quantity),
				customerID,
				strconv.FormatFloat(s.CreditAmount, 'f', 2, 64),
				s.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}
