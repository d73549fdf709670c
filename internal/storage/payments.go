package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/candy-bonus/internal/checkout"
)

// PaymentEntry is a Pix payment generated at checkout.
type PaymentEntry struct {
	ID        int64
	PaymentID string
	Fluxo     string
	Email     string
	Status    string
	Amount    float64
	CreatedAt time.Time
}

var _ checkout.PaymentRecorder = (*Store)(nil)

// SavePayment records a generated payment. Saving the same payment ID again
// updates its status and amount.
func (s *Store) SavePayment(paymentID, fluxo, email, status string, amount float64) error {
	if paymentID == "" {
		return errors.New("storage: payment without id")
	}
	_, err := s.db.Exec(
		`INSERT INTO payments (payment_id, fluxo, email, status, amount)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(payment_id) DO UPDATE SET status = excluded.status, amount = excluded.amount`,
		paymentID, fluxo, email, status, amount,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save payment: %w", err)
	}
	return nil
}

const paymentColumns = `id, payment_id, fluxo, email, status, amount, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (PaymentEntry, error) {
	var p PaymentEntry
	var createdAt any
	err := row.Scan(&p.ID, &p.PaymentID, &p.Fluxo, &p.Email, &p.Status, &p.Amount, &createdAt)
	p.CreatedAt = parseTimestamp(createdAt)
	return p, err
}

// PaymentByID retrieves a payment by its backend ID. Returns nil if unknown.
func (s *Store) PaymentByID(paymentID string) (*PaymentEntry, error) {
	p, err := scanPayment(s.db.QueryRow(
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id = ?`,
		paymentID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query payment: %w", err)
	}
	return &p, nil
}

// RecentPayments retrieves the most recent payments, newest first.
func (s *Store) RecentPayments(limit int) ([]PaymentEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+paymentColumns+`
		 FROM payments
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query payments: %w", err)
	}
	defer rows.Close()

	var payments []PaymentEntry
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return payments, nil
}
