// Package dataset orchestrates imports, loads, clears and exports for every record kind.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/ingest"
	"github.com/mamadbah2/retailsheet/internal/metrics"
	"github.com/mamadbah2/retailsheet/internal/repository/sheets"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
	"github.com/mamadbah2/retailsheet/internal/service/pipeline"
	"github.com/mamadbah2/retailsheet/internal/spreadsheet"
)

var (
	// ErrSheetsDisabled is returned by Google Sheets operations when no spreadsheet is configured.
	ErrSheetsDisabled = errors.New("google sheets is not configured")
	// ErrKindMismatch is returned when a collection of another kind is handed to a dataset.
	ErrKindMismatch = errors.New("collection kind does not match dataset")
)

// Dataset is the kind-independent face of a Service.
type Dataset interface {
	Kind() models.Kind
	Import(ctx context.Context, rows []models.Row, progress pipeline.ProgressFunc) (Collection, models.ImportResult, error)
	ImportFile(ctx context.Context, r io.Reader, filename string, progress pipeline.ProgressFunc) (Collection, models.ImportResult, error)
	ImportSheet(ctx context.Context, sheetRange string, progress pipeline.ProgressFunc) (Collection, models.ImportResult, error)
	Load(ctx context.Context, progress pipeline.ProgressFunc) (Collection, error)
	Clear(ctx context.Context, progress pipeline.ProgressFunc) error
	Export(ctx context.Context, c Collection) (models.ExportResult, error)
	Count(ctx context.Context) (int, error)
}

// Options tune a Service. Zero values fall back to the pipeline defaults.
type Options struct {
	ChunkSize int
	PageSize  int
	Sheets    sheets.Repository
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Service runs the import and load pipelines for one record type.
type Service[T models.Searchable] struct {
	def     Definition[T]
	store   tablestore.Store
	sheets  sheets.Repository
	metrics *metrics.Metrics
	chunk   int
	page    int
	logger  *zap.Logger
}

var _ Dataset = (*Service[models.StockRecord])(nil)

// New builds a Service for def backed by store.
func New[T models.Searchable](def Definition[T], store tablestore.Store, opts Options) *Service[T] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = pipeline.DefaultChunkSize
	}
	if opts.PageSize <= 0 {
		opts.PageSize = pipeline.DefaultPageSize
	}

	return &Service[T]{
		def:     def,
		store:   store,
		sheets:  opts.Sheets,
		metrics: opts.Metrics,
		chunk:   opts.ChunkSize,
		page:    opts.PageSize,
		logger:  logger.With(zap.String("kind", string(def.Kind))),
	}
}

// Kind returns the record kind handled by the service.
func (s *Service[T]) Kind() models.Kind { return s.def.Kind }

func (s *Service[T]) collection() string { return s.def.Kind.Collection() }

// Import normalizes rows, writes them in chunks and reloads the whole collection. An
// empty row set fails with ingest.ErrNoRows before anything is written.
func (s *Service[T]) Import(ctx context.Context, rows []models.Row, progress pipeline.ProgressFunc) (Collection, models.ImportResult, error) {
	started := time.Now()

	records, err := ingest.NormalizeAll(rows, s.def.Normalize)
	if err != nil {
		s.metrics.ObserveOperation(string(s.def.Kind), "import", started, err)
		return nil, models.ImportResult{}, err
	}

	s.logger.Info("import started", zap.Int("records", len(records)), zap.Int("chunk_size", s.chunk))

	inserted, err := pipeline.Write(ctx, s.store, s.collection(), records, s.def.Encode, s.chunk, progress)
	if err != nil {
		var writeErr *pipeline.WriteError
		if errors.As(err, &writeErr) {
			s.metrics.AddWritten(string(s.def.Kind), writeErr.Committed)
			s.logger.Error("import failed",
				zap.Int("chunk", writeErr.Chunk),
				zap.Int("committed", writeErr.Committed),
				zap.Error(writeErr.Err))
		}
		s.metrics.ObserveOperation(string(s.def.Kind), "import", started, err)
		return nil, models.ImportResult{}, err
	}
	s.metrics.AddWritten(string(s.def.Kind), len(inserted))
	s.metrics.ObserveOperation(string(s.def.Kind), "import", started, nil)

	loaded, err := s.load(ctx, progress)
	if err != nil {
		return nil, models.ImportResult{}, err
	}

	result := models.ImportResult{
		Kind:          s.def.Kind,
		InsertedCount: len(inserted),
		TotalCount:    loaded.Len(),
		Message:       fmt.Sprintf("Successfully imported %d records", len(inserted)),
	}
	s.logger.Info("import completed", zap.Int("inserted", result.InsertedCount), zap.Int("total", result.TotalCount))
	return loaded, result, nil
}

// ImportFile parses an uploaded workbook or CSV file and imports its rows.
func (s *Service[T]) ImportFile(ctx context.Context, r io.Reader, filename string, progress pipeline.ProgressFunc) (Collection, models.ImportResult, error) {
	rows, err := spreadsheet.Parse(r, filename)
	if err != nil {
		return nil, models.ImportResult{}, err
	}
	return s.Import(ctx, rows, progress)
}

// ImportSheet reads a Google Sheets range and imports its rows.
func (s *Service[T]) ImportSheet(ctx context.Context, sheetRange string, progress pipeline.ProgressFunc) (Collection, models.ImportResult, error) {
	if s.sheets == nil {
		return nil, models.ImportResult{}, ErrSheetsDisabled
	}

	rows, err := s.sheets.ReadRows(ctx, sheetRange)
	if err != nil {
		return nil, models.ImportResult{}, fmt.Errorf("failed to read sheet: %w", err)
	}
	return s.Import(ctx, rows, progress)
}

// Load fetches the whole collection, newest first.
func (s *Service[T]) Load(ctx context.Context, progress pipeline.ProgressFunc) (Collection, error) {
	loaded, err := s.load(ctx, progress)
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func (s *Service[T]) load(ctx context.Context, progress pipeline.ProgressFunc) (*Records[T], error) {
	started := time.Now()

	items, err := pipeline.ReadAll(ctx, s.store, s.collection(), s.def.Decode, s.page, progress)
	s.metrics.ObserveOperation(string(s.def.Kind), "load", started, err)
	if err != nil {
		s.logger.Error("load failed", zap.Error(err))
		return nil, err
	}

	s.metrics.AddRead(string(s.def.Kind), len(items))
	s.logger.Info("collection loaded", zap.Int("records", len(items)), zap.Duration("duration", time.Since(started)))
	return NewRecords(s.def, items), nil
}

// Clear removes every stored record of the kind.
func (s *Service[T]) Clear(ctx context.Context, progress pipeline.ProgressFunc) error {
	started := time.Now()

	err := pipeline.Clear(ctx, s.store, s.collection(), progress)
	s.metrics.ObserveOperation(string(s.def.Kind), "clear", started, err)
	if err != nil {
		s.logger.Error("clear failed", zap.Error(err))
		return err
	}

	s.logger.Info("collection cleared")
	return nil
}

// Export replaces the sheet named after the kind with the records of c.
func (s *Service[T]) Export(ctx context.Context, c Collection) (models.ExportResult, error) {
	if s.sheets == nil {
		return models.ExportResult{}, ErrSheetsDisabled
	}
	if c == nil || c.Kind() != s.def.Kind {
		return models.ExportResult{}, ErrKindMismatch
	}

	started := time.Now()
	sheet := string(s.def.Kind)
	err := s.sheets.ReplaceRows(ctx, sheet, c.Header(), c.Rows())
	s.metrics.ObserveOperation(string(s.def.Kind), "export", started, err)
	if err != nil {
		return models.ExportResult{}, fmt.Errorf("failed to export %s: %w", sheet, err)
	}

	s.logger.Info("collection exported", zap.String("sheet", sheet), zap.Int("rows", c.Len()))
	return models.ExportResult{Kind: s.def.Kind, Sheet: sheet, ExportedRows: c.Len()}, nil
}

// Count returns the number of stored records without loading them.
func (s *Service[T]) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx, s.collection())
	if err != nil {
		return 0, &pipeline.ReadError{Collection: s.collection(), Page: -1, Err: err}
	}
	return n, nil
}
