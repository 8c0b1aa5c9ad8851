package usecase

import (
	"context"
	"fmt"
	"net/http"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"github.com/rs/zerolog/log"
)

type HistoryUsecase struct {
	history repo.HistoryRepository
}

// DI
func NewHistoryUsecase(history repo.HistoryRepository) *HistoryUsecase {
	return &HistoryUsecase{history: history}
}

// POST /history の入力（nilは未入力）
type HistoryRangeInput struct {
	From *int
	To   *int
}

// 挿入順で[from, to)を返す
func (u *HistoryUsecase) QueryHistoryRange(ctx context.Context, in HistoryRangeInput) ([]model.HistoryEntry, error) {
	total, err := u.history.Count(ctx)
	if err != nil {
		return []model.HistoryEntry{}, u.dbError("history_count", err)
	}
	rowCount := int(total)

	//未入力は0とrowCount
	from := 0
	if in.From != nil {
		from = *in.From
	}
	to := rowCount
	if in.To != nil {
		to = *in.To
	}

	if from < 0 || from > to || to > rowCount {
		return []model.HistoryEntry{}, NewLedgerError(ErrInvalidRange, http.StatusBadRequest,
			fmt.Sprintf("Error: Invalid range! Please enter between From: 0; To: %d", rowCount))
	}
	if rowCount == 0 {
		return []model.HistoryEntry{}, NewLedgerError(ErrEmptyHistory, http.StatusNotFound, "No history can be reviewed")
	}

	entries, err := u.history.Slice(ctx, from, to-from)
	if err != nil {
		return []model.HistoryEntry{}, u.dbError("history_slice", err)
	}
	return entries, nil
}

// GET /history.html 用の全件
func (u *HistoryUsecase) ListHistory(ctx context.Context) ([]model.HistoryEntry, error) {
	entries, err := u.history.ListAll(ctx)
	if err != nil {
		return []model.HistoryEntry{}, u.dbError("history_list", err)
	}
	return entries, nil
}

func (u *HistoryUsecase) dbError(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("db error")
	return internalError()
}
