package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного шлюза
// Ядро не проводит реальные платежи: шлюзу лишь отправляются
// подтверждения capture/refund, источником истины остается paymentStatus
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type confirmationRequest struct {
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
}

// ConfirmCapture подтверждает списание по завершенной сессии
func (c *Client) ConfirmCapture(ctx context.Context, bookingID int64, amount float64) error {
	return c.post(ctx, "/internal/payments/capture", confirmationRequest{BookingID: bookingID, Amount: amount})
}

// ConfirmRefund подтверждает возврат по отмененной сессии
func (c *Client) ConfirmRefund(ctx context.Context, bookingID int64, amount float64) error {
	return c.post(ctx, "/internal/payments/refund", confirmationRequest{BookingID: bookingID, Amount: amount})
}

// ConfirmRefundWithGracefulDegradation подтверждает возврат с graceful degradation
// При недоступности шлюза возвращает ErrServiceDegraded: переход статуса
// бронирования уже зафиксирован и не должен блокироваться платежным шлюзом
func (c *Client) ConfirmRefundWithGracefulDegradation(ctx context.Context, bookingID int64, amount float64) error {
	if err := c.ConfirmRefund(ctx, bookingID, amount); err != nil {
		c.log.Error("PaymentService unavailable, applying graceful degradation for booking_id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, bookingID, err)
	}
	return nil
}

// ConfirmCaptureWithGracefulDegradation подтверждает списание с graceful degradation
func (c *Client) ConfirmCaptureWithGracefulDegradation(ctx context.Context, bookingID int64, amount float64) error {
	if err := c.ConfirmCapture(ctx, bookingID, amount); err != nil {
		c.log.Error("PaymentService unavailable, applying graceful degradation for booking_id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, bookingID, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload confirmationRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
