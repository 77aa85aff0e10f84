// Package payment simulates checkout payments. No money moves: a successful
// payment produces a synthetic receipt, a cancelled one produces ErrCancelled
// and never a receipt.
package payment

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Method selects how the simulated payment is made.
type Method string

const (
	MethodCard   Method = "card"
	MethodWallet Method = "external-wallet"
	MethodCash   Method = "cash-on-delivery"
)

var (
	// ErrCancelled means the user backed out at the interaction step.
	ErrCancelled = errors.New("payment cancelled")
	// ErrUnknownMethod rejects methods outside the supported set.
	ErrUnknownMethod = errors.New("invalid payment method")
)

// Receipt is the synthetic confirmation of a simulated payment.
type Receipt struct {
	TransactionID string          `json:"transaction_id"`
	Method        Method          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ApprovalRequest is shown to the user for methods that need an explicit
// acknowledgment before the receipt is produced.
type ApprovalRequest struct {
	Method Method
	Amount decimal.Decimal
}

// Approver is the interaction step: it blocks until the user approves or
// cancels. Frontends implement it with whatever confirmation flow they have.
type Approver interface {
	Approve(ctx context.Context, req ApprovalRequest) (bool, error)
}

// ApproverFunc adapts a function to the Approver interface.
type ApproverFunc func(ctx context.Context, req ApprovalRequest) (bool, error)

func (f ApproverFunc) Approve(ctx context.Context, req ApprovalRequest) (bool, error) {
	return f(ctx, req)
}

// AutoApprove acknowledges every request. Useful in tests and scripted runs.
var AutoApprove = ApproverFunc(func(context.Context, ApprovalRequest) (bool, error) {
	return true, nil
})

// Simulator processes simulated payments. It keeps no state between calls.
type Simulator struct {
	approver Approver
	now      func() time.Time
}

func NewSimulator(approver Approver) *Simulator {
	return &Simulator{approver: approver, now: time.Now}
}

// Process runs one payment. Card payments validate the card fields before the
// interaction step is reachable; card and wallet payments then wait for the
// approver; cash-on-delivery completes immediately. The receipt amount always
// equals total.
func (s *Simulator) Process(ctx context.Context, method Method, total decimal.Decimal, card *Card) (*Receipt, error) {
	switch method {
	case MethodCard:
		if card == nil {
			return nil, &FieldError{Field: "card_number", Reason: "card details required"}
		}
		if err := card.Validate(); err != nil {
			return nil, err
		}
		if err := s.approve(ctx, method, total); err != nil {
			return nil, err
		}
	case MethodWallet:
		if err := s.approve(ctx, method, total); err != nil {
			return nil, err
		}
	case MethodCash:
		// No interaction: pay on delivery.
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	now := s.now().UTC()
	return &Receipt{
		TransactionID: transactionID(now),
		Method:        method,
		Amount:        total,
		Timestamp:     now,
	}, nil
}

func (s *Simulator) approve(ctx context.Context, method Method, total decimal.Decimal) error {
	ok, err := s.approver.Approve(ctx, ApprovalRequest{Method: method, Amount: total})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ErrCancelled
		}
		return fmt.Errorf("payment interaction: %w", err)
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

// transactionID builds "TXN<millis><suffix>". The random suffix makes
// collisions within a session practically impossible.
func transactionID(now time.Time) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var buf [9]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("TXN%d%09d", now.UnixMilli(), now.Nanosecond())
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return fmt.Sprintf("TXN%d%s", now.UnixMilli(), buf)
}
