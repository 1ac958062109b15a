package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/saisie-livres/internal/domain/models"
)

const dateLayout = "2006-01-02"

// JournalReader lists accepted entries for a time window.
type JournalReader interface {
	ListEntries(ctx context.Context, start, end time.Time) ([]models.JournalEntry, error)
}

// RowWriter appends rows to the recap sheet.
type RowWriter interface {
	AppendRows(ctx context.Context, rows [][]interface{}) error
}

// Service builds and exports the daily stock-entry recap.
type Service struct {
	journal JournalReader
	writer  RowWriter
	loc     *time.Location
	logger  *zap.Logger
}

// NewService wires a new reporting service instance. Days are cut at
// midnight in loc.
func NewService(journal JournalReader, writer RowWriter, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{journal: journal, writer: writer, loc: loc, logger: logger}
}

// BuildDailyRecap counts the entries recorded on the local day containing day.
func (s *Service) BuildDailyRecap(ctx context.Context, day time.Time) (models.DailyRecap, error) {
	if s.journal == nil {
		return models.DailyRecap{}, errors.New("entry journal is not configured")
	}

	local := day.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1)

	entries, err := s.journal.ListEntries(ctx, start.UTC(), end.UTC())
	if err != nil {
		return models.DailyRecap{}, fmt.Errorf("load journal entries: %w", err)
	}

	byRayon := make(map[string]int)
	byEtat := make(map[string]int)
	for _, e := range entries {
		byRayon[e.Rayon]++
		byEtat[e.Etat]++
	}

	return models.DailyRecap{
		Date:    start.Format(dateLayout),
		Total:   len(entries),
		ByRayon: sortedCounts(byRayon),
		ByEtat:  sortedCounts(byEtat),
	}, nil
}

// ExportDailyRecap builds the recap for day and appends it to the sheet:
// one row per rayon, one per état, then a total row.
func (s *Service) ExportDailyRecap(ctx context.Context, day time.Time) (models.DailyRecap, error) {
	recap, err := s.BuildDailyRecap(ctx, day)
	if err != nil {
		return recap, err
	}

	if recap.Total == 0 {
		s.logger.Info("no stock entries recorded, recap skipped", zap.String("date", recap.Date))
		return recap, nil
	}

	if s.writer == nil {
		return recap, errors.New("recap sheet is not configured")
	}

	if err := s.writer.AppendRows(ctx, RecapRows(recap)); err != nil {
		return recap, fmt.Errorf("export recap %s: %w", recap.Date, err)
	}

	s.logger.Info("daily recap exported", zap.String("date", recap.Date), zap.Int("total", recap.Total))
	return recap, nil
}

// RecapRows flattens a recap into sheet rows [date, label, count].
func RecapRows(recap models.DailyRecap) [][]interface{} {
	rows := make([][]interface{}, 0, len(recap.ByRayon)+len(recap.ByEtat)+1)
	for _, c := range recap.ByRayon {
		rows = append(rows, []interface{}{recap.Date, c.Name, c.Count})
	}
	for _, c := range recap.ByEtat {
		rows = append(rows, []interface{}{recap.Date, "ETAT " + c.Name, c.Count})
	}
	return append(rows, []interface{}{recap.Date, "TOTAL", recap.Total})
}

// sortedCounts orders by count descending, then by name.
func sortedCounts(counts map[string]int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
