package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/models"
)

type WithdrawalService struct {
	withdrawalsRepo models.WithdrawalsRepo
}

func NewWithdrawalService(withdrawalsRepo models.WithdrawalsRepo) *WithdrawalService {
	return &WithdrawalService{
		withdrawalsRepo: withdrawalsRepo,
	}
}

func (ws *WithdrawalService) RequestWithdrawal(ctx context.Context, ownerID uuid.UUID, amount float64) (*models.Withdrawal, error) {
	w := &models.Withdrawal{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Amount:      amount,
		Status:      models.WithdrawalStatusPending,
		RequestDate: time.Now(),
	}
	if err := models.Validate.Struct(w); err != nil {
		return nil, fmt.Errorf("invalid withdrawal request: %v", err)
	}

	return ws.withdrawalsRepo.CreateWithdrawal(ctx, w)
}

func (ws *WithdrawalService) ListWithdrawalsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Withdrawal, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("invalid owner ID")
	}
	return ws.withdrawalsRepo.ListWithdrawalsByOwner(ctx, ownerID)
}

func (ws *WithdrawalService) ListWithdrawals(ctx context.Context, status models.WithdrawalStatus) ([]*models.Withdrawal, error) {
	switch status {
	case "", models.WithdrawalStatusPending, models.WithdrawalStatusApproved, models.WithdrawalStatusDenied:
	default:
		return nil, fmt.Errorf("invalid status filter: %s", status)
	}
	return ws.withdrawalsRepo.ListWithdrawals(ctx, status)
}

// ProcessWithdrawal approves or denies a pending request. Returns false when
// the request was already decided, so a double approval cannot pay out twice.
func (ws *WithdrawalService) ProcessWithdrawal(ctx context.Context, id uuid.UUID, to models.WithdrawalStatus) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("invalid withdrawal ID")
	}
	return ws.withdrawalsRepo.ProcessWithdrawal(ctx, id, to)
}
