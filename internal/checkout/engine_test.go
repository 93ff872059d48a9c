package checkout

import (
	"errors"
	"testing"

	"github.com/rogerio-castellano/pos-register/internal/cart"
	"github.com/rogerio-castellano/pos-register/internal/models"
	"github.com/rogerio-castellano/pos-register/internal/repo"
)

type engineFixture struct {
	engine    *Engine
	products  *repo.InMemoryProductRepository
	customers *repo.InMemoryCustomerRepository
	sales     *repo.InMemorySaleRepository
	payments  *repo.InMemoryPaymentRepository
}

func newEngineFixture() engineFixture {
	products := repo.NewInMemoryProductRepository()
	customers := repo.NewInMemoryCustomerRepository()
	sales := repo.NewInMemorySaleRepository()
	payments := repo.NewInMemoryPaymentRepository()
	register := repo.NewInMemoryCheckoutRepository(products, customers, sales, payments)
	carts := cart.NewInMemoryStore()

	return engineFixture{
		engine:    NewEngine(products, customers, register, carts),
		products:  products,
		customers: customers,
		sales:     sales,
		payments:  payments,
	}
}

func (f engineFixture) widget(t *testing.T, stock int) models.Product {
	t.Helper()
	p, err := f.products.Create(models.Product{Name: "Widget", Price: 10.0, Quantity: stock})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return p
}

func (f engineFixture) alice(t *testing.T, limit float64) models.Customer {
	t.Helper()
	c, err := f.customers.Create(models.Customer{Name: "Alice", CreditLimit: limit})
	if err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	return c
}

func (f engineFixture) cartWith(t *testing.T, productID, qty int) cart.Cart {
	t.Helper()
	c, err := f.engine.NewCart()
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	c, err = f.engine.AddLine(c.ID, productID, qty)
	if err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	return c
}

func TestAddLine(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)

	c, err := f.engine.NewCart()
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}

	c, err = f.engine.AddLine(c.ID, p.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err = f.engine.AddLine(c.ID, p.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 5 || c.Total() != 50.0 {
		t.Errorf("expected quantity 5 total 50.0, got quantity %d total %v", c.Lines[0].Quantity, c.Total())
	}
}

func TestAddLineValidation(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 5)

	c, _ := f.engine.NewCart()

	if _, err := f.engine.AddLine(c.ID, p.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for zero, got %v", err)
	}
	if _, err := f.engine.AddLine(c.ID, p.ID, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for negative, got %v", err)
	}
	if _, err := f.engine.AddLine(c.ID, p.ID, 6); !errors.Is(err, repo.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := f.engine.AddLine(c.ID, 999, 1); !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := f.engine.AddLine("no-such-cart", p.ID, 1); !errors.Is(err, cart.ErrCartNotFound) {
		t.Errorf("expected ErrCartNotFound, got %v", err)
	}

	// Merged quantity counts against the snapshot too.
	if _, err := f.engine.AddLine(c.ID, p.ID, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.engine.AddLine(c.ID, p.ID, 2); !errors.Is(err, repo.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock on merge over stock, got %v", err)
	}
}

func TestCheckoutCash(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)
	c := f.cartWith(t, p.ID, 4)

	receipt, err := f.engine.Checkout(c.ID, ModeCash, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Total != 40.0 {
		t.Errorf("expected total 40.0, got %v", receipt.Total)
	}
	if len(receipt.SaleIDs) != 1 {
		t.Errorf("expected one sale row, got %d", len(receipt.SaleIDs))
	}

	got, _ := f.products.GetByID(p.ID)
	if got.Quantity != 16 {
		t.Errorf("expected stock 16, got %d", got.Quantity)
	}

	sales, _, _ := f.sales.List(repo.SaleFilter{})
	if len(sales) != 1 {
		t.Fatalf("expected one sale, got %d", len(sales))
	}
	if sales[0].CreditAmount != 0 || sales[0].CustomerID != nil {
		t.Errorf("expected a plain cash row, got %+v", sales[0])
	}

	if _, err := f.engine.Cart(c.ID); !errors.Is(err, cart.ErrCartNotFound) {
		t.Errorf("expected the cart to be gone after checkout, got %v", err)
	}
}

func TestCheckoutCredit(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)
	alice := f.alice(t, 100)

	c := f.cartWith(t, p.ID, 6)
	receipt, err := f.engine.Checkout(c.ID, ModeCredit, &alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.NewBalance != 60.0 {
		t.Errorf("expected new balance 60.0, got %v", receipt.NewBalance)
	}

	got, _ := f.customers.GetByID(alice.ID)
	if got.BalanceDue != 60.0 {
		t.Errorf("expected balance 60.0, got %v", got.BalanceDue)
	}

	sales, _, _ := f.sales.List(repo.SaleFilter{})
	if len(sales) != 1 {
		t.Fatalf("expected one sale, got %d", len(sales))
	}
	if sales[0].CreditAmount != 60.0 {
		t.Errorf("expected credit 60.0 on the sale row, got %v", sales[0].CreditAmount)
	}
}

func TestCheckoutCreditDeniedMutatesNothing(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)
	alice := f.alice(t, 100)

	c1 := f.cartWith(t, p.ID, 6)
	if _, err := f.engine.Checkout(c1.ID, ModeCredit, &alice.ID); err != nil {
		t.Fatalf("unexpected error on first checkout: %v", err)
	}

	// 60 on the books; another 50 would pass the limit.
	c2 := f.cartWith(t, p.ID, 5)
	_, err := f.engine.Checkout(c2.ID, ModeCredit, &alice.ID)
	if !errors.Is(err, ErrCreditDenied) {
		t.Fatalf("expected ErrCreditDenied, got %v", err)
	}

	got, _ := f.customers.GetByID(alice.ID)
	if got.BalanceDue != 60.0 {
		t.Errorf("expected balance unchanged at 60.0, got %v", got.BalanceDue)
	}
	stock, _ := f.products.GetByID(p.ID)
	if stock.Quantity != 14 {
		t.Errorf("expected stock unchanged at 14, got %d", stock.Quantity)
	}
	sales, _, _ := f.sales.List(repo.SaleFilter{})
	if len(sales) != 1 {
		t.Errorf("expected one sale after denial, got %d", len(sales))
	}

	// The denied cart stays open.
	if _, err := f.engine.Cart(c2.ID); err != nil {
		t.Errorf("expected the denied cart to stay open, got %v", err)
	}
}

func TestCheckoutCreditExactLimit(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)
	alice := f.alice(t, 100)

	c := f.cartWith(t, p.ID, 10)
	receipt, err := f.engine.Checkout(c.ID, ModeCredit, &alice.ID)
	if err != nil {
		t.Fatalf("expected checkout at the exact limit to pass, got %v", err)
	}
	if receipt.NewBalance != 100.0 {
		t.Errorf("expected new balance 100.0, got %v", receipt.NewBalance)
	}
}

func TestCheckoutFirstLineCreditConvention(t *testing.T) {
	f := newEngineFixture()
	widget := f.widget(t, 20)
	gadget, err := f.products.Create(models.Product{Name: "Gadget", Price: 25.0, Quantity: 4})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	alice := f.alice(t, 100)

	c := f.cartWith(t, widget.ID, 2)
	if _, err := f.engine.AddLine(c.ID, gadget.ID, 3); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}

	receipt, err := f.engine.Checkout(c.ID, ModeCredit, &alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Total != 95.0 {
		t.Errorf("expected total 95.0, got %v", receipt.Total)
	}

	// Summing rows with credit > 0 recovers per-transaction totals.
	sales, _, _ := f.sales.List(repo.SaleFilter{})
	if len(sales) != 2 {
		t.Fatalf("expected two sale rows, got %d", len(sales))
	}
	var creditSum float64
	var rowsWithCredit int
	for _, s := range sales {
		creditSum += s.CreditAmount
		if s.CreditAmount > 0 {
			rowsWithCredit++
		}
	}
	if rowsWithCredit != 1 {
		t.Errorf("expected exactly one row carrying the credit, got %d", rowsWithCredit)
	}
	if creditSum != 95.0 {
		t.Errorf("expected credit sum 95.0, got %v", creditSum)
	}
}

func TestCheckoutValidation(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)

	t.Run("Unknown mode", func(t *testing.T) {
		c := f.cartWith(t, p.ID, 1)
		if _, err := f.engine.Checkout(c.ID, Mode("barter"), nil); !errors.Is(err, ErrUnknownMode) {
			t.Errorf("expected ErrUnknownMode, got %v", err)
		}
	})

	t.Run("Empty cart", func(t *testing.T) {
		c, _ := f.engine.NewCart()
		if _, err := f.engine.Checkout(c.ID, ModeCash, nil); !errors.Is(err, ErrCartEmpty) {
			t.Errorf("expected ErrCartEmpty, got %v", err)
		}
	})

	t.Run("Credit without customer", func(t *testing.T) {
		c := f.cartWith(t, p.ID, 1)
		if _, err := f.engine.Checkout(c.ID, ModeCredit, nil); !errors.Is(err, ErrCustomerRequired) {
			t.Errorf("expected ErrCustomerRequired, got %v", err)
		}
	})

	t.Run("Credit with unknown customer", func(t *testing.T) {
		c := f.cartWith(t, p.ID, 1)
		ghost := 999
		if _, err := f.engine.Checkout(c.ID, ModeCredit, &ghost); !errors.Is(err, repo.ErrCustomerNotFound) {
			t.Errorf("expected ErrCustomerNotFound, got %v", err)
		}
	})

	t.Run("Cash with unknown customer", func(t *testing.T) {
		c := f.cartWith(t, p.ID, 1)
		ghost := 999
		if _, err := f.engine.Checkout(c.ID, ModeCash, &ghost); !errors.Is(err, repo.ErrCustomerNotFound) {
			t.Errorf("expected ErrCustomerNotFound, got %v", err)
		}
		rows, _, err := f.sales.List(repo.SaleFilter{})
		if err != nil {
			t.Fatalf("unexpected error listing sales: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("expected no sale rows after the rejected checkout, got %d", len(rows))
		}
		got, _ := f.products.GetByID(p.ID)
		if got.Quantity != 20 {
			t.Errorf("expected stock untouched at 20, got %d", got.Quantity)
		}
	})

	t.Run("Cart not found", func(t *testing.T) {
		if _, err := f.engine.Checkout("no-such-cart", ModeCash, nil); !errors.Is(err, cart.ErrCartNotFound) {
			t.Errorf("expected ErrCartNotFound, got %v", err)
		}
	})
}

func TestCheckoutStaleSnapshotLoses(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 5)

	// Two open carts both claim 4 of the 5 units.
	c1 := f.cartWith(t, p.ID, 4)
	c2 := f.cartWith(t, p.ID, 4)

	if _, err := f.engine.Checkout(c1.ID, ModeCash, nil); err != nil {
		t.Fatalf("unexpected error on first checkout: %v", err)
	}

	// The second cart's snapshot is stale; the guarded commit rejects it.
	_, err := f.engine.Checkout(c2.ID, ModeCash, nil)
	if !errors.Is(err, repo.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	stock, _ := f.products.GetByID(p.ID)
	if stock.Quantity != 1 {
		t.Errorf("expected stock 1, got %d", stock.Quantity)
	}
	sales, _, _ := f.sales.List(repo.SaleFilter{})
	if len(sales) != 1 {
		t.Errorf("expected one sale, got %d", len(sales))
	}
}

func TestRecordPayment(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)
	alice := f.alice(t, 100)

	c := f.cartWith(t, p.ID, 6)
	if _, err := f.engine.Checkout(c.ID, ModeCredit, &alice.ID); err != nil {
		t.Fatalf("unexpected error on checkout: %v", err)
	}

	payment, newBalance, err := f.engine.RecordPayment(alice.ID, 25.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Amount != 25.0 {
		t.Errorf("expected payment amount 25.0, got %v", payment.Amount)
	}
	if newBalance != 35.0 {
		t.Errorf("expected new balance 35.0, got %v", newBalance)
	}

	// Paying the rest brings the balance to zero.
	if _, newBalance, err = f.engine.RecordPayment(alice.ID, 35.0); err != nil || newBalance != 0 {
		t.Errorf("expected zero balance, got %v (err %v)", newBalance, err)
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newEngineFixture()
	p := f.widget(t, 20)
	alice := f.alice(t, 100)

	c := f.cartWith(t, p.ID, 6)
	if _, err := f.engine.Checkout(c.ID, ModeCredit, &alice.ID); err != nil {
		t.Fatalf("unexpected error on checkout: %v", err)
	}

	if _, _, err := f.engine.RecordPayment(alice.ID, -1); !errors.Is(err, ErrInvalidPaymentAmount) {
		t.Errorf("expected ErrInvalidPaymentAmount for negative, got %v", err)
	}
	if _, _, err := f.engine.RecordPayment(alice.ID, 60.01); !errors.Is(err, ErrInvalidPaymentAmount) {
		t.Errorf("expected ErrInvalidPaymentAmount over the balance, got %v", err)
	}
	if _, _, err := f.engine.RecordPayment(999, 5); !errors.Is(err, repo.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}

	// Rejections leave the balance alone.
	got, _ := f.customers.GetByID(alice.ID)
	if got.BalanceDue != 60.0 {
		t.Errorf("expected balance 60.0, got %v", got.BalanceDue)
	}
	payments, _ := f.payments.GetByCustomerID(alice.ID)
	if len(payments) != 0 {
		t.Errorf("expected no payment rows, got %d", len(payments))
	}
}
