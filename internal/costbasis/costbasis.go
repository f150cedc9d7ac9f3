// Package costbasis computes holdings from a transaction ledger.
//
// All arithmetic is exact decimal arithmetic; quantities are never converted
// through binary floating point, so repeated summation cannot drift. Results
// are emitted as fixed 8-decimal-place strings to match the persisted column
// precision.
package costbasis

import (
	"fmt"

	apperrors "financecontroll/internal/errors"
	"financecontroll/internal/models"

	"github.com/shopspring/decimal"
)

// scale is the fractional precision of the persisted decimal(20,8) columns.
const scale = 8

// Summary reports an asset's holdings derived from its full ledger.
type Summary struct {
	CurrentQuantity string `json:"current_quantity"`
	TotalBuys       string `json:"total_buys"`
	TotalSells      string `json:"total_sells"`
}

// Summarize sums all buy and sell quantities in the ledger. Transaction order
// does not matter. CurrentQuantity is exactly TotalBuys minus TotalSells.
func Summarize(transactions []models.Transaction) Summary {
	var totalBuys, totalSells decimal.Decimal

	for i := range transactions {
		tx := &transactions[i]
		if tx.Type == models.TransactionTypeBuy {
			totalBuys = totalBuys.Add(tx.Quantity)
		} else {
			totalSells = totalSells.Add(tx.Quantity)
		}
	}

	return Summary{
		CurrentQuantity: totalBuys.Sub(totalSells).StringFixed(scale),
		TotalBuys:       totalBuys.StringFixed(scale),
		TotalSells:      totalSells.StringFixed(scale),
	}
}

// CanSell validates that selling requested units does not exceed current
// holdings. currentQuantity is a decimal string as produced by Summarize; nil
// means no holdings exist at all. Selling exactly the full holding is allowed.
func CanSell(currentQuantity *string, requested decimal.Decimal) *apperrors.AppError {
	if currentQuantity == nil || *currentQuantity == "" {
		return apperrors.WithMessage(apperrors.ErrInvariantViolation,
			"No holdings to sell. Add buy transactions first.")
	}

	current, err := decimal.NewFromString(*currentQuantity)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvariantViolation, err)
	}

	if requested.GreaterThan(current) {
		return apperrors.WithMessage(apperrors.ErrInvariantViolation,
			fmt.Sprintf("Cannot sell %s. Current holdings: %s", requested.String(), current.String()))
	}

	return nil
}
