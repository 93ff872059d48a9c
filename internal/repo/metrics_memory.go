package repo

type InMemoryMetricsRepository struct {
	products  *InMemoryProductRepository
	customers *InMemoryCustomerRepository
	sales     *InMemorySaleRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (r *InMemoryMetricsRepository) SetRepositories(
	products *InMemoryProductRepository,
	customers *InMemoryCustomerRepository,
	sales *InMemorySaleRepository,
) {
	r.products = products
	r.customers = customers
	r.sales = sales
}

func (r *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	products, err := r.products.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)
	for _, p := range products {
		if p.Quantity < p.Threshold {
			m.LowStockCount++
		}
	}

	customers, err := r.customers.GetAll()
	if err != nil {
		return m, err
	}
	for _, c := range customers {
		m.OutstandingCredit += c.BalanceDue
	}

	unitsByProduct := map[int]int{}
	for _, s := range r.sales.sales {
		m.TotalSales++
		unitsByProduct[s.ProductID] += s.Quantity
	}
	for _, p := range products {
		if units := unitsByProduct[p.ID]; units > m.BestSeller.UnitsSold {
			m.BestSeller = BestSeller{Name: p.Name, UnitsSold: units}
		}
	}

	return m, nil
}
