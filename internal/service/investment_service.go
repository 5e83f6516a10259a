package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/request"
	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
	"github.com/ndewijer/Investment-Admin-Console/internal/model"
	"github.com/ndewijer/Investment-Admin-Console/internal/session"
	"github.com/ndewijer/Investment-Admin-Console/internal/validation"
)

// UnknownUserName is shown for an investment whose userId has no loaded user.
const UnknownUserName = "unknown user"

// InvestmentService handles investment-related business logic operations
// against the open admin session. Every method returns
// apperrors.ErrNotAuthenticated when no session is open.
type InvestmentService struct {
	sessions *session.Manager
}

// NewInvestmentService creates a new InvestmentService with the provided session manager.
func NewInvestmentService(sessions *session.Manager) *InvestmentService {
	return &InvestmentService{
		sessions: sessions,
	}
}

// GetInvestments returns the investments in load order, optionally filtered
// by status, each enriched with its user's name.
func (s *InvestmentService) GetInvestments(status model.Status) ([]model.InvestmentResponse, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	investments := sess.Ledger.Filter(status)
	out := make([]model.InvestmentResponse, len(investments))
	for i, inv := range investments {
		out[i] = toInvestmentResponse(sess, inv)
	}
	return out, nil
}

// GetInvestment returns a single enriched investment.
func (s *InvestmentService) GetInvestment(id string) (model.InvestmentResponse, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return model.InvestmentResponse{}, err
	}

	inv, err := sess.Ledger.Get(id)
	if err != nil {
		return model.InvestmentResponse{}, err
	}
	return toInvestmentResponse(sess, inv), nil
}

// ApproveInvestment moves a pending investment to active.
func (s *InvestmentService) ApproveInvestment(ctx context.Context, id string) (model.InvestmentResponse, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return model.InvestmentResponse{}, err
	}

	inv, err := sess.Ledger.Approve(ctx, id)
	if err != nil {
		return model.InvestmentResponse{}, err
	}
	return toInvestmentResponse(sess, inv), nil
}

// SettleInvestment settles an active investment with the requested
// multiplier and trade type. The multiplier is validated before any write.
func (s *InvestmentService) SettleInvestment(ctx context.Context, id string, req request.SettleInvestmentRequest) (model.InvestmentResponse, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return model.InvestmentResponse{}, err
	}

	multiplier, tradeType, err := validation.ValidateSettleInvestment(req)
	if err != nil {
		return model.InvestmentResponse{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	inv, err := sess.Ledger.Settle(ctx, id, multiplier, tradeType)
	if err != nil {
		return model.InvestmentResponse{}, err
	}
	return toInvestmentResponse(sess, inv), nil
}

// CancelInvestment settles an active investment with a zero multiplier.
func (s *InvestmentService) CancelInvestment(ctx context.Context, id string, req request.CancelInvestmentRequest) (model.InvestmentResponse, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return model.InvestmentResponse{}, err
	}

	inv, err := sess.Ledger.Cancel(ctx, id, validation.ValidateCancelInvestment(req))
	if err != nil {
		return model.InvestmentResponse{}, err
	}
	return toInvestmentResponse(sess, inv), nil
}

// DeleteInvestment hard-deletes an investment. confirmed must be true; the
// confirmation step is enforced here, not by the ledger.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, id string, confirmed bool) error {
	sess, err := s.sessions.Current()
	if err != nil {
		return err
	}
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	return sess.Ledger.Delete(ctx, id)
}

func toInvestmentResponse(sess *session.Session, inv model.Investment) model.InvestmentResponse {
	name := UnknownUserName
	user, known := sess.User(inv.UserID)
	if known && user.Name != "" {
		name = user.Name
	}

	return model.InvestmentResponse{
		ID:           inv.ID,
		ShortID:      model.ShortID(inv.ID),
		UserID:       inv.UserID,
		UserName:     name,
		UserKnown:    known,
		Amount:       inv.Amount,
		Status:       inv.Status,
		Date:         inv.Date,
		StartDate:    inv.StartDate,
		CompletedAt:  inv.CompletedAt,
		Multiplier:   inv.Multiplier,
		ActualReturn: inv.ActualReturn,
		TradeType:    inv.TradeType,
	}
}
