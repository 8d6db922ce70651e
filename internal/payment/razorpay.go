// server/internal/payment/razorpay.go
package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// Order is the subset of the Razorpay order we relay to the frontend.
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	IsMock   bool   `json:"isMock"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Client creates Razorpay orders for monetary donations. When credentials are
// absent (or still the placeholder) it serves mock orders so the donate flow
// works in local setups.
type Client struct {
	httpClient *resty.Client
	keyID      string
	keySecret  string
	logger     *zap.Logger
}

func NewClient(keyID, keySecret string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(razorpayBaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		keyID:      keyID,
		keySecret:  keySecret,
		logger:     logger,
	}
}

// MockMode reports whether real credentials are missing.
func (c *Client) MockMode() bool {
	return c.keyID == "" || c.keySecret == "" || strings.Contains(c.keyID, "rzp_test_your_key_id")
}

// CreateOrder creates an order for the given INR amount.
func (c *Client) CreateOrder(ctx context.Context, amountINR int64) (*Order, error) {
	paise := amountINR * 100

	if c.MockMode() {
		c.logger.Info("using mock payment mode")
		return &Order{
			OrderID:  "order_mock_" + uuid.New().String()[:12],
			Amount:   paise,
			Currency: "INR",
			IsMock:   true,
		}, nil
	}

	var created razorpayOrderResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBasicAuth(c.keyID, c.keySecret).
		SetBody(map[string]any{
			"amount":   paise,
			"currency": "INR",
			"receipt":  "receipt_" + uuid.New().String()[:12],
		}).
		SetResult(&created).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay order request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay order failed: %s", resp.Status())
	}

	return &Order{
		OrderID:  created.ID,
		Amount:   created.Amount,
		Currency: created.Currency,
		IsMock:   false,
	}, nil
}
