package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/pos-register/internal/http"
	handler "github.com/rogerio-castellano/pos-register/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Widget", Price: 10.0, Quantity: 20, Threshold: 5})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Widget" {
		t.Errorf("expected name 'Widget', got %v", resp.Name)
	}
	if resp.Price != 10.0 {
		t.Errorf("expected price 10.0, got %v", resp.Price)
	}
	if resp.Quantity != 20 {
		t.Errorf("expected quantity 20, got %v", resp.Quantity)
	}
	if resp.Threshold != 5 {
		t.Errorf("expected threshold 5, got %v", resp.Threshold)
	}
}

func TestCreateProductHandler_DuplicateName(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Widget", Price: 10.0, Quantity: 20})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	w = createProduct(r, handler.ProductRequest{Name: "Widget", Price: 12.0, Quantity: 5})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict for duplicated name, got %d", w.Code)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectCode     int
		expectedErrors []string
	}{
		{
			name:           "Empty name and price",
			payload:        handler.ProductRequest{Name: "", Price: 0.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Name", "Price"},
		},
		{
			name:           "Empty name only",
			payload:        handler.ProductRequest{Name: "", Price: 100.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Name"},
		},
		{
			name:           "Invalid price only",
			payload:        handler.ProductRequest{Name: "Mouse", Price: -5.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Price"},
		},
		{
			name:           "Negative quantity",
			payload:        handler.ProductRequest{Name: "Keyboard", Price: 50.0, Quantity: -1},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Quantity"},
		},
		{
			name:           "Negative threshold",
			payload:        handler.ProductRequest{Name: "Monitor", Price: 50.0, Quantity: 1, Threshold: -1},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Threshold"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}

			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	badJSON := `{Name: "Invalid" Price: 100 "}` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}

	expectedBody := "invalid input\n"
	if w.Body.String() != expectedBody {
		t.Errorf("expected response body %q, got %q", expectedBody, w.Body.String())
	}
}

func TestCreateProductHandler_Unauthorized(t *testing.T) {
	r := api.NewRouter()

	body, _ := json.Marshal(handler.ProductRequest{Name: "Widget", Price: 10.0, Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized without token, got %d", w.Code)
	}
}

func TestGetProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w1 := createProduct(r, handler.ProductRequest{Name: "Widget", Price: 10.0, Quantity: 20})
	if w1.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for product creation, got %d", w1.Code)
	}

	w2 := createProduct(r, handler.ProductRequest{Name: "Gadget", Price: 25.0, Quantity: 8})
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for second product creation, got %d", w2.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/products", nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for product retrieval, got %d", getW.Code)
	}

	var products []handler.ProductResponse
	if err := json.NewDecoder(getW.Body).Decode(&products); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}
	if products[0].Name != "Widget" {
		t.Errorf("expected product name 'Widget', got %v", products[0].Name)
	}
	if products[1].Name != "Gadget" {
		t.Errorf("expected product name 'Gadget', got %v", products[1].Name)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Widget", Price: 10.0, Quantity: 20})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", created.Id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Id != created.Id || resp.Name != "Widget" {
		t.Errorf("unexpected product: %+v", resp)
	}
}

func TestGetProductByIDHandler_NotFound(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/products/999999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestUpdateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Old Name", Price: 100.0, Quantity: 1})

	updateBody := handler.ProductRequest{Name: "New Name", Price: 200.0, Quantity: 2}
	jsonUpdateBody, _ := json.Marshal(updateBody)
	updateReq := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/products/%d", created.Id), bytes.NewReader(jsonUpdateBody))
	updateReq.Header.Set("Authorization", "Bearer "+token)
	updateW := httptest.NewRecorder()
	r.ServeHTTP(updateW, updateReq)

	if updateW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", updateW.Code)
	}

	var updated handler.ProductResponse
	if err := json.NewDecoder(updateW.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding update response: %v", err)
	}

	if updated.Name != "New Name" {
		t.Errorf("expected name 'New Name', got %v", updated.Name)
	}
	if updated.Price != 200.0 {
		t.Errorf("expected price 200.0, got %v", updated.Price)
	}
	if updated.Quantity != 2 {
		t.Errorf("expected quantity 2, got %v", updated.Quantity)
	}
}

func TestUpdateProductHandler_NotFound(t *testing.T) {
	r := api.NewRouter()
	updateBody := handler.ProductRequest{Name: "Ghost", Price: 1.0}
	jsonBody, _ := json.Marshal(updateBody)
	req := httptest.NewRequest(http.MethodPut, "/products/999999", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Disposable", Price: 5.0, Quantity: 1})

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", created.Id), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", created.Id), nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found after deletion, got %d", getW.Code)
	}
}

func TestRestockProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Widget", Price: 10.0, Quantity: 3})

	w := restockProduct(r, created.Id, handler.RestockRequest{Quantity: 7})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Quantity != 10 {
		t.Errorf("expected quantity 10 after restock, got %d", resp.Quantity)
	}
}

func TestRestockProductHandler_InvalidQuantity(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Widget", Price: 10.0, Quantity: 3})

	w := restockProduct(r, created.Id, handler.RestockRequest{Quantity: 0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request for zero quantity, got %d", w.Code)
	}

	w = restockProduct(r, created.Id, handler.RestockRequest{Quantity: -4})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request for negative quantity, got %d", w.Code)
	}
}

func TestRestockProductHandler_NotFound(t *testing.T) {
	r := api.NewRouter()

	w := restockProduct(r, 999999, handler.RestockRequest{Quantity: 5})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestFilterProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	products := []handler.ProductRequest{
		{Name: "Phone", Price: 699.99, Quantity: 10},
		{Name: "Laptop", Price: 1299.99, Quantity: 5},
		{Name: "Mouse", Price: 29.99, Quantity: 50},
		{Name: "Monitor", Price: 199.99, Quantity: 20},
	}

	for _, p := range products {
		w := createProduct(r, p)
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test product: %v", p.Name)
		}
	}

	t.Run("Filter by name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/search?name=phone", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp handler.ProductsSearchResult
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp.Data) != 1 || !strings.Contains(strings.ToLower(resp.Data[0].Name), "phone") {
			t.Errorf("expected one product containing 'phone', got %v", resp.Data)
		}
	})

	t.Run("Filter by price range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/search?minPrice=100&maxPrice=1000", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp handler.ProductsSearchResult
		json.NewDecoder(w.Body).Decode(&resp)
		for _, p := range resp.Data {
			if p.Price < 100 || p.Price > 1000 {
				t.Errorf("product price out of range: %v", p.Price)
			}
		}
	})

	t.Run("Filter by quantity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/search?minQty=5&maxQty=20", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp handler.ProductsSearchResult
		json.NewDecoder(w.Body).Decode(&resp)
		for _, p := range resp.Data {
			if p.Quantity < 5 || p.Quantity > 20 {
				t.Errorf("quantity out of range: %v", p.Quantity)
			}
		}
	})

	t.Run("Filter with no match", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/search?name=xyz", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp handler.ProductsSearchResult
		json.NewDecoder(w.Body).Decode(&resp)
		if got := len(resp.Data); got != 0 {
			t.Errorf("expected empty result, got %d items", got)
		}
	})

	t.Run("Pagination limit and offset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/search?offset=0&limit=2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp handler.ProductsSearchResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if got := len(resp.Data); got != 2 {
			t.Errorf("expected 2 products, got %d", got)
		}
		if resp.Meta.TotalCount != 4 {
			t.Errorf("expected total count 4, got %d", resp.Meta.TotalCount)
		}
	})

	t.Run("Pagination with no products", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/search?offset=999&limit=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp handler.ProductsSearchResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if got := len(resp.Data); got != 0 {
			t.Errorf("expected empty result, got %d items", got)
		}
	})
}
