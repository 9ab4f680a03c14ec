package fill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/openquant/backtester/eventtypes/order"
)

func TestCashDelta(t *testing.T) {
	t.Parallel()
	buy := &Fill{
		Side:       order.Buy,
		Amount:     decimal.NewFromInt(10),
		Price:      decimal.NewFromInt(100),
		Commission: decimal.NewFromInt(5),
	}
	assert.True(t, buy.Value().Equal(decimal.NewFromInt(1000)))
	// buys spend notional plus commission
	assert.True(t, buy.CashDelta().Equal(decimal.NewFromInt(-1005)), "received %v", buy.CashDelta())

	sell := &Fill{
		Side:       order.Sell,
		Amount:     decimal.NewFromInt(10),
		Price:      decimal.NewFromInt(100),
		Commission: decimal.NewFromInt(5),
	}
	// sells receive notional less commission
	assert.True(t, sell.CashDelta().Equal(decimal.NewFromInt(995)), "received %v", sell.CashDelta())
}
