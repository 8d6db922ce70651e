// server/internal/payment/razorpay_test.go
package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMockMode(t *testing.T) {
	logger := zap.NewNop()

	assert.True(t, NewClient("", "", logger).MockMode())
	assert.True(t, NewClient("rzp_test_your_key_id_here", "secret", logger).MockMode())
	assert.True(t, NewClient("rzp_live_abc", "", logger).MockMode())
	assert.False(t, NewClient("rzp_live_abc", "secret", logger).MockMode())
}

func TestCreateOrderMock(t *testing.T) {
	client := NewClient("", "", zap.NewNop())

	order, err := client.CreateOrder(context.Background(), 500)
	require.NoError(t, err)

	assert.True(t, order.IsMock)
	assert.Equal(t, int64(50000), order.Amount) // rupees converted to paise
	assert.Equal(t, "INR", order.Currency)
	assert.Contains(t, order.OrderID, "order_mock_")
}
