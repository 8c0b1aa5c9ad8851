package historyfile

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// 履歴を1行ずつ追記するフラットファイル
type Writer struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// ファイルが無ければ作る。既存の内容は消さない
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open history file %s: %w", path, err)
	}
	return &Writer{path: path, f: f}, nil
}

func (w *Writer) Name() string { return "file" }

func (w *Writer) Path() string { return w.path }

// 1行追記
func (w *Writer) Append(_ context.Context, line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return os.ErrClosed
	}
	if _, err := w.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
