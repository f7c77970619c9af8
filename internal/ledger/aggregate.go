package ledger

import (
	"github.com/duopot/duopot/internal/models"
	"github.com/shopspring/decimal"
)

// Total sums every visible contribution. Decimal arithmetic keeps the sum
// exact regardless of row count or order.
func Total(savings []models.Saving) decimal.Decimal {
	sum := decimal.Zero

	for _, s := range savings {
		sum = sum.Add(s.Amount)
	}

	return sum
}

// TotalFor sums the contributions of a single user. Summing TotalFor over
// the distinct user ids present always equals Total, since each row belongs
// to exactly one user.
func TotalFor(savings []models.Saving, userID uint) decimal.Decimal {
	sum := decimal.Zero

	for _, s := range savings {
		if s.UserID == userID {
			sum = sum.Add(s.Amount)
		}
	}

	return sum
}

// TotalsByUser returns each contributor's subtotal keyed by user id.
func TotalsByUser(savings []models.Saving) map[uint]decimal.Decimal {
	totals := make(map[uint]decimal.Decimal)

	for _, s := range savings {
		totals[s.UserID] = totals[s.UserID].Add(s.Amount)
	}

	return totals
}
