package word

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/suyoungkwon2/phonitale-backend/internal/word/entity"
)

// DefaultSampleSize is how many words a round draws when the caller does not
// say otherwise (matches the study design of 12 words per round).
const DefaultSampleSize = 12

// Store abstracts the persistence operations the word list needs.
type Store interface {
	Insert(ctx context.Context, w entity.Word) error
	Sample(ctx context.Context, n int) ([]entity.Word, error)
}

// Service maintains the study vocabulary and serves random samples of it.
type Service struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewService(store Store, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, logger: logger}
}

// Sample returns up to n random word pairs; n falls back to DefaultSampleSize
// when not positive.
func (s *Service) Sample(ctx context.Context, n int) ([]entity.Word, error) {
	if n <= 0 {
		n = DefaultSampleSize
	}
	return s.store.Sample(ctx, n)
}

// ImportCSV loads word pairs from a CSV file with an english,korean header
// row. Rows already present are kept as stored. Returns the number of rows
// read.
func (s *Service) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open word csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	count := 0
	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read word csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < 2 {
			continue
		}
		w := entity.Word{English: strings.TrimSpace(row[0]), Korean: strings.TrimSpace(row[1])}
		if w.English == "" || w.Korean == "" {
			continue
		}
		if err := s.store.Insert(ctx, w); err != nil {
			return count, err
		}
		count++
	}
	s.logger.Infow("word list imported", "path", path, "rows", count)
	return count, nil
}
