package history

import (
	"context"
	"errors"
	"fmt"

	"warehouse/internal/domain/model"
	"warehouse/internal/repository"

	"github.com/rs/zerolog/log"
)

// 履歴1行の書き込み先
type Sink interface {
	Name() string
	Append(ctx context.Context, line string) error
}

// 全sinkに同じ行を書く。
// 1つが失敗しても残りには書き、失敗はログに出してまとめて返す。
type Recorder struct {
	sinks []Sink
}

func NewRecorder(sinks ...Sink) *Recorder {
	return &Recorder{sinks: sinks}
}

func (r *Recorder) Record(ctx context.Context, line string) error {
	var errs []error
	for _, s := range r.sinks {
		if err := s.Append(ctx, line); err != nil {
			log.Error().
				Err(err).
				Str("sink", s.Name()).
				Str("line", line).
				Msg("history sink append failed")
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// historiesテーブルへの書き込み
type DBSink struct {
	repo repository.HistoryRepository
}

func NewDBSink(repo repository.HistoryRepository) *DBSink {
	return &DBSink{repo: repo}
}

func (s *DBSink) Name() string { return "db" }

func (s *DBSink) Append(ctx context.Context, line string) error {
	return s.repo.Create(ctx, model.HistoryEntry{Text: line})
}
