// Package checkout is a client for the Pix payment backend that turns a
// claimed bonus into a payment.
package checkout

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultBaseURL is the backend used when none is configured.
const DefaultBaseURL = "http://localhost:3001"

const defaultTimeout = 15 * time.Second

// maxBodySize caps how much of a response is read.
const maxBodySize = 1 << 20

// Request holds the form fields sent to the backend.
type Request struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Fluxo Flow   `json:"fluxo"`
}

// Validate checks the request the same way the checkout form does.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return ErrMissingFields
	}
	if !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	if _, err := ParseFlow(string(r.Fluxo)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFlow, r.Fluxo)
	}
	return nil
}

// Payment is a generated Pix payment.
type Payment struct {
	PaymentURL   string  `json:"payment_url"`
	QRCode       string  `json:"qr_code"` // Pix copy-paste code
	QRCodeBase64 string  `json:"qr_code_base64"`
	PaymentID    string  `json:"payment_id"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
}

// QRImage decodes the QR code image. A "data:image/png;base64," prefix is
// accepted.
func (p *Payment) QRImage() ([]byte, error) {
	data := p.QRCodeBase64
	if data == "" {
		return nil, fmt.Errorf("checkout: payment %s has no QR image", p.PaymentID)
	}
	if strings.HasPrefix(data, "data:") {
		if i := strings.IndexByte(data, ','); i >= 0 {
			data = data[i+1:]
		}
	}
	img, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("checkout: decode QR image: %w", err)
	}
	return img, nil
}

type createPixResponse struct {
	Success bool     `json:"success"`
	Data    *Payment `json:"data"`
	Error   string   `json:"error"`
}

// PaymentRecorder stores generated payments. The storage package's Store
// satisfies it.
type PaymentRecorder interface {
	SavePayment(paymentID, fluxo, email, status string, amount float64) error
}

// Client talks to the payment backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
	Recorder   PaymentRecorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithTimeout sets the HTTP client timeout. The client is copied first so a
// shared client such as http.DefaultClient keeps its own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := *c.HTTPClient
		hc.Timeout = d
		c.HTTPClient = &hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithRecorder stores every successful payment.
func WithRecorder(r PaymentRecorder) Option {
	return func(c *Client) {
		c.Recorder = r
	}
}

// New creates a client for the backend at baseURL. An empty baseURL uses
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		Logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreatePix asks the backend for a Pix payment. Invalid requests fail with
// ErrMissingFields, ErrInvalidEmail or ErrInvalidFlow without contacting the
// backend; backend failures are returned as *APIError.
func (c *Client) CreatePix(ctx context.Context, req Request) (*Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("checkout: marshal request: %w", err)
	}

	url := c.BaseURL + "/create_pix"
	reqID := uuid.NewString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("checkout: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)

	logger := c.Logger.With("request_id", reqID, "fluxo", req.Fluxo)
	logger.Debug("requesting pix", "url", url)

	start := time.Now()
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		logger.Error("pix request failed", "err", err)
		return nil, fmt.Errorf("checkout: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("checkout: read response: %w", err)
	}
	logger.Debug("pix response", "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("pix request rejected", "status", resp.StatusCode)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var result createPixResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("checkout: parse response: %w", err)
	}
	if !result.Success || result.Data == nil {
		msg := result.Error
		if msg == "" {
			msg = defaultAPIMessage
		}
		logger.Warn("pix not generated", "err", msg)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: msg}
	}

	p := result.Data
	logger.Info("pix generated", "payment_id", p.PaymentID, "amount", p.Amount, "status", p.Status)

	if c.Recorder != nil {
		if err := c.Recorder.SavePayment(p.PaymentID, string(req.Fluxo), req.Email, p.Status, p.Amount); err != nil {
			logger.Warn("failed to record payment", "payment_id", p.PaymentID, "err", err)
		}
	}
	return p, nil
}
