package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/rogerio-castellano/pos-register/internal/cart"
	"github.com/rogerio-castellano/pos-register/internal/checkout"
	api "github.com/rogerio-castellano/pos-register/internal/http"
	handler "github.com/rogerio-castellano/pos-register/internal/http/handlers"
	"github.com/rogerio-castellano/pos-register/internal/models"
	"github.com/rogerio-castellano/pos-register/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token        string
	productRepo  *repo.InMemoryProductRepository
	customerRepo *repo.InMemoryCustomerRepository
	saleRepo     *repo.InMemorySaleRepository
	paymentRepo  *repo.InMemoryPaymentRepository
	cartStore    *cart.InMemoryStore
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	customerRepo = repo.NewInMemoryCustomerRepository()
	handler.SetCustomerRepo(customerRepo)

	saleRepo = repo.NewInMemorySaleRepository()
	handler.SetSaleRepo(saleRepo)

	paymentRepo = repo.NewInMemoryPaymentRepository()
	handler.SetPaymentRepo(paymentRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(productRepo, customerRepo, saleRepo)

	cartStore = cart.NewInMemoryStore()
	register := repo.NewInMemoryCheckoutRepository(productRepo, customerRepo, saleRepo, paymentRepo)
	handler.SetEngine(checkout.NewEngine(productRepo, customerRepo, register, cartStore))
}

func clearAllProducts() {
	productRepo.Clear()
}

func clearAllCustomers() {
	customerRepo.Clear()
}

func clearAllSales() {
	saleRepo.Clear()
}

func clearRegisterState() {
	productRepo.Clear()
	customerRepo.Clear()
	saleRepo.Clear()
	paymentRepo.Clear()
	cartStore.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createCustomer(r http.Handler, c handler.CustomerRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(c)
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func restockProduct(r http.Handler, productID int, adj handler.RestockRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(adj)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/%d/restock", productID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newCart(r http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/carts", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addItem(r http.Handler, cartID string, item handler.CartItemRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(item)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/carts/%s/items", cartID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func checkoutCart(r http.Handler, cartID string, c handler.CheckoutRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(c)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/carts/%s/checkout", cartID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func recordPayment(r http.Handler, customerID int, p handler.PaymentRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/customers/%d/payments", customerID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func addSale(sale models.Sale) {
	saleRepo.AddSale(sale)
}

// mustCreateProduct decodes the create response so tests can use the ID.
func mustCreateProduct(r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	w := createProduct(r, p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("product creation failed with status %d", w.Code))
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding product response: %v", err))
	}
	return resp
}

func mustCreateCustomer(r http.Handler, c handler.CustomerRequest) handler.CustomerResponse {
	w := createCustomer(r, c)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("customer creation failed with status %d", w.Code))
	}
	var resp handler.CustomerResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding customer response: %v", err))
	}
	return resp
}

func mustNewCart(r http.Handler) handler.CartResponse {
	w := newCart(r)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("cart creation failed with status %d", w.Code))
	}
	var resp handler.CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding cart response: %v", err))
	}
	return resp
}
