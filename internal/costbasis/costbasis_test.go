package costbasis

import (
	"testing"

	"financecontroll/internal/models"
	"financecontroll/internal/testutil"

	"github.com/shopspring/decimal"
)

func tx(txType models.TransactionType, quantity string) models.Transaction {
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		panic(err)
	}
	return models.Transaction{Type: txType, Quantity: q}
}

func TestSummarize(t *testing.T) {
	t.Run("empty_ledger", func(t *testing.T) {
		summary := Summarize(nil)

		if summary.CurrentQuantity != "0.00000000" {
			t.Errorf("expected current quantity 0.00000000, got %s", summary.CurrentQuantity)
		}
		if summary.TotalBuys != "0.00000000" {
			t.Errorf("expected total buys 0.00000000, got %s", summary.TotalBuys)
		}
		if summary.TotalSells != "0.00000000" {
			t.Errorf("expected total sells 0.00000000, got %s", summary.TotalSells)
		}
	})

	t.Run("buys_minus_sells", func(t *testing.T) {
		summary := Summarize([]models.Transaction{
			tx(models.TransactionTypeBuy, "10"),
			tx(models.TransactionTypeBuy, "5.5"),
			tx(models.TransactionTypeSell, "3.25"),
		})

		if summary.TotalBuys != "15.50000000" {
			t.Errorf("expected total buys 15.50000000, got %s", summary.TotalBuys)
		}
		if summary.TotalSells != "3.25000000" {
			t.Errorf("expected total sells 3.25000000, got %s", summary.TotalSells)
		}
		if summary.CurrentQuantity != "12.25000000" {
			t.Errorf("expected current quantity 12.25000000, got %s", summary.CurrentQuantity)
		}
	})

	t.Run("order_independent", func(t *testing.T) {
		forward := Summarize([]models.Transaction{
			tx(models.TransactionTypeBuy, "7"),
			tx(models.TransactionTypeSell, "2"),
			tx(models.TransactionTypeBuy, "1"),
		})
		reversed := Summarize([]models.Transaction{
			tx(models.TransactionTypeBuy, "1"),
			tx(models.TransactionTypeSell, "2"),
			tx(models.TransactionTypeBuy, "7"),
		})

		if forward != reversed {
			t.Errorf("summaries differ by order: %+v vs %+v", forward, reversed)
		}
	})

	t.Run("no_float_drift", func(t *testing.T) {
		// 0.1 summed ten times is notorious for drifting in binary floating
		// point. The exact sum must be 1.
		ledger := make([]models.Transaction, 10)
		for i := range ledger {
			ledger[i] = tx(models.TransactionTypeBuy, "0.1")
		}

		summary := Summarize(ledger)
		if summary.CurrentQuantity != "1.00000000" {
			t.Errorf("expected current quantity 1.00000000, got %s", summary.CurrentQuantity)
		}
	})

	t.Run("fully_sold_is_zero", func(t *testing.T) {
		summary := Summarize([]models.Transaction{
			tx(models.TransactionTypeBuy, "8.12345678"),
			tx(models.TransactionTypeSell, "8.12345678"),
		})

		if summary.CurrentQuantity != "0.00000000" {
			t.Errorf("expected current quantity 0.00000000, got %s", summary.CurrentQuantity)
		}
	})
}

func TestCanSell(t *testing.T) {
	holdings := func(s string) *string { return &s }

	t.Run("no_holdings", func(t *testing.T) {
		err := CanSell(nil, decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "INVARIANT_VIOLATION")
		testutil.AssertErrorMessage(t, err, "No holdings to sell. Add buy transactions first.")
	})

	t.Run("empty_holdings_string", func(t *testing.T) {
		err := CanSell(holdings(""), decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "INVARIANT_VIOLATION")
	})

	t.Run("oversell_rejected", func(t *testing.T) {
		err := CanSell(holdings("100.00000000"), decimal.NewFromInt(150))
		testutil.AssertAppError(t, err, "INVARIANT_VIOLATION")
		testutil.AssertErrorMessage(t, err, "Cannot sell 150. Current holdings: 100")
	})

	t.Run("exact_holdings_allowed", func(t *testing.T) {
		if err := CanSell(holdings("100.00000000"), decimal.NewFromInt(100)); err != nil {
			t.Errorf("expected selling the full holding to be allowed, got %v", err)
		}
	})

	t.Run("partial_sell_allowed", func(t *testing.T) {
		if err := CanSell(holdings("100.00000000"), decimal.RequireFromString("0.00000001")); err != nil {
			t.Errorf("expected partial sell to be allowed, got %v", err)
		}
	})
}
