package holdings

import (
	"github.com/shopspring/decimal"
)

// Position tracks the signed exposure held in one instrument. A positive
// amount is long, a negative amount is short. AverageEntryPrice is
// meaningful only while Amount is non-zero
type Position struct {
	Symbol            string          `json:"symbol"`
	Amount            decimal.Decimal `json:"amount"`
	AverageEntryPrice decimal.Decimal `json:"average-entry-price"`
	RealizedPNL       decimal.Decimal `json:"realized-pnl"`
}
