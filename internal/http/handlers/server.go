package handlers

import (
	"github.com/rogerio-castellano/pos-register/internal/checkout"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

var (
	productRepo  repo.ProductRepository
	customerRepo repo.CustomerRepository
	saleRepo     repo.SaleRepository
	paymentRepo  repo.PaymentRepository
	metricsRepo  repo.MetricsRepository
	userRepo     repo.UserRepository

	engine *checkout.Engine
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetCustomerRepo(r repo.CustomerRepository) {
	customerRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetPaymentRepo(r repo.PaymentRepository) {
	paymentRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetEngine(e *checkout.Engine) {
	engine = e
}
