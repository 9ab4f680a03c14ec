package slippage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/openquant/backtester/eventtypes/order"
)

func TestNone(t *testing.T) {
	t.Parallel()
	price := decimal.NewFromInt(100)
	assert.True(t, None{}.Adjust(price, order.Buy).Equal(price))
	assert.True(t, None{}.Adjust(price, order.Sell).Equal(price))
}

func TestFixedBasisPoints(t *testing.T) {
	t.Parallel()
	m := FixedBasisPoints{Rate: decimal.NewFromInt(50)}
	price := decimal.NewFromInt(100)
	buy := m.Adjust(price, order.Buy)
	assert.True(t, buy.Equal(decimal.NewFromFloat(100.5)), "received %v", buy)
	sell := m.Adjust(price, order.Sell)
	assert.True(t, sell.Equal(decimal.NewFromFloat(99.5)), "received %v", sell)
}
