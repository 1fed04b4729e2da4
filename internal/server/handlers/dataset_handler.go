package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/ingest"
	"github.com/mamadbah2/retailsheet/internal/service/dataset"
	"github.com/mamadbah2/retailsheet/internal/service/filter"
	"github.com/mamadbah2/retailsheet/internal/service/pipeline"
	"github.com/mamadbah2/retailsheet/internal/service/session"
	"github.com/mamadbah2/retailsheet/internal/spreadsheet"
)

// SessionHeader carries the client session id.
const SessionHeader = "X-Session-ID"

// DatasetHandler exposes import, load, search, summary, clear and export per kind.
type DatasetHandler struct {
	registry *dataset.Registry
	sessions *session.Manager
	logger   *zap.Logger
	now      func() time.Time
}

// NewDatasetHandler constructs the HTTP handler adapter.
func NewDatasetHandler(registry *dataset.Registry, sessions *session.Manager, logger *zap.Logger) *DatasetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetHandler{registry: registry, sessions: sessions, logger: logger, now: time.Now}
}

type importSheetRequest struct {
	Range string `json:"range" binding:"required"`
}

type sseEvent struct {
	name string
	data any
}

// Import stores an uploaded workbook or CSV file. With stream=true the progress is sent
// as server-sent events and the final result as a "done" event.
func (h *DatasetHandler) Import(c *gin.Context) {
	d, view, ok := h.resolve(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.logger.Warn("unable to open upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	defer func() { _ = file.Close() }()

	release, err := view.Acquire()
	if err != nil {
		h.fail(c, "import rejected", err)
		return
	}
	defer release()

	run := func(ctx context.Context, progress pipeline.ProgressFunc) (dataset.Collection, models.ImportResult, error) {
		return d.ImportFile(ctx, file, header.Filename, progress)
	}

	if c.Query("stream") == "true" {
		h.stream(c, view, run)
		return
	}

	coll, result, err := run(c.Request.Context(), nil)
	if err != nil {
		h.fail(c, "import failed", err)
		return
	}
	view.SetCollection(coll, h.now())
	c.JSON(http.StatusOK, result)
}

// ImportSheet imports a Google Sheets range given as {"range": "..."}.
func (h *DatasetHandler) ImportSheet(c *gin.Context) {
	d, view, ok := h.resolve(c)
	if !ok {
		return
	}

	var req importSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid import sheet payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	release, err := view.Acquire()
	if err != nil {
		h.fail(c, "import rejected", err)
		return
	}
	defer release()

	coll, result, err := d.ImportSheet(c.Request.Context(), req.Range, nil)
	if err != nil {
		h.fail(c, "sheet import failed", err)
		return
	}
	view.SetCollection(coll, h.now())
	c.JSON(http.StatusOK, result)
}

func (h *DatasetHandler) stream(c *gin.Context, view *session.View, run func(context.Context, pipeline.ProgressFunc) (dataset.Collection, models.ImportResult, error)) {
	ctx := c.Request.Context()
	events := make(chan sseEvent, 16)
	send := func(ev sseEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)
		coll, result, err := run(ctx, func(p models.ProgressEvent) { send(sseEvent{name: "progress", data: p}) })
		if err != nil {
			h.logger.Error("streamed import failed", zap.Error(err))
			send(sseEvent{name: "error", data: gin.H{"error": err.Error()}})
			return
		}
		view.SetCollection(coll, h.now())
		send(sseEvent{name: "done", data: result})
	}()

	c.Stream(func(_ io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(ev.name, ev.data)
		return true
	})

	// Wait for the import to finish so the upload stays readable until then.
	for range events {
	}
}

// Load reloads the collection from the store into the session view.
func (h *DatasetHandler) Load(c *gin.Context) {
	d, view, ok := h.resolve(c)
	if !ok {
		return
	}

	release, err := view.Acquire()
	if err != nil {
		h.fail(c, "load rejected", err)
		return
	}
	defer release()

	coll, err := d.Load(c.Request.Context(), nil)
	if err != nil {
		h.fail(c, "load failed", err)
		return
	}
	view.SetCollection(coll, h.now())
	c.JSON(http.StatusOK, h.page(view, coll))
}

// Records returns the filtered records of the view. Query parameters q, field and value
// replace the stored criteria when present.
func (h *DatasetHandler) Records(c *gin.Context) {
	d, view, ok := h.resolve(c)
	if !ok {
		return
	}

	var criteria filter.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	if hasCriteria(c) {
		view.SetCriteria(criteria)
	}

	coll, err := h.ensureLoaded(c.Request.Context(), d, view)
	if err != nil {
		h.fail(c, "load failed", err)
		return
	}
	c.JSON(http.StatusOK, h.page(view, coll))
}

// Summary returns the aggregate report of the loaded records. filtered=true restricts
// it to the records matching the view criteria.
func (h *DatasetHandler) Summary(c *gin.Context) {
	d, view, ok := h.resolve(c)
	if !ok {
		return
	}

	coll, err := h.ensureLoaded(c.Request.Context(), d, view)
	if err != nil {
		h.fail(c, "load failed", err)
		return
	}
	if c.Query("filtered") == "true" {
		coll = coll.Filter(view.Criteria())
	}
	c.JSON(http.StatusOK, coll.Summary())
}

// Clear deletes every stored record of the kind and empties the view.
func (h *DatasetHandler) Clear(c *gin.Context) {
	d, view, ok := h.resolve(c)
	if !ok {
		return
	}

	release, err := view.Acquire()
	if err != nil {
		h.fail(c, "clear rejected", err)
		return
	}
	defer release()

	if err := d.Clear(c.Request.Context(), nil); err != nil {
		h.fail(c, "clear failed", err)
		return
	}
	view.Reset()
	c.JSON(http.StatusOK, gin.H{"kind": d.Kind(), "message": "All records removed"})
}

// Export writes the filtered records of the view to the Google Sheet tab of the kind.
func (h *DatasetHandler) Export(c *gin.Context) {
	d, view, ok := h.resolve(c)
	if !ok {
		return
	}

	coll, err := h.ensureLoaded(c.Request.Context(), d, view)
	if err != nil {
		h.fail(c, "load failed", err)
		return
	}

	result, err := d.Export(c.Request.Context(), coll.Filter(view.Criteria()))
	if err != nil {
		h.fail(c, "export failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DatasetHandler) resolve(c *gin.Context) (dataset.Dataset, *session.View, bool) {
	d, err := h.registry.Lookup(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return d, h.sessions.View(c.GetHeader(SessionHeader), d.Kind()), true
}

func (h *DatasetHandler) ensureLoaded(ctx context.Context, d dataset.Dataset, view *session.View) (dataset.Collection, error) {
	if coll := view.Collection(); coll != nil {
		return coll, nil
	}

	release, err := view.Acquire()
	if errors.Is(err, session.ErrBusy) {
		// Another request holds the view. Reads fall back to the stored records and
		// leave the view to the holder.
		if coll := view.Collection(); coll != nil {
			return coll, nil
		}
		return d.Load(ctx, nil)
	}
	if err != nil {
		return nil, err
	}
	defer release()

	coll, err := d.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	view.SetCollection(coll, h.now())
	return coll, nil
}

func (h *DatasetHandler) page(view *session.View, coll dataset.Collection) models.RecordsPage {
	criteria := view.Criteria()
	filtered := coll.Filter(criteria)
	return models.RecordsPage{
		Kind:        coll.Kind(),
		Total:       coll.Len(),
		Filtered:    filtered.Len(),
		Query:       criteria.Query,
		FilterField: criteria.Field,
		FilterValue: criteria.Value,
		Records:     filtered.Records(),
	}
}

func (h *DatasetHandler) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.String("kind", c.Param("kind")), zap.Error(err))
	} else {
		h.logger.Warn(msg, zap.String("kind", c.Param("kind")), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func hasCriteria(c *gin.Context) bool {
	q := c.Request.URL.Query()
	return q.Has("q") || q.Has("field") || q.Has("value")
}

func statusFor(err error) int {
	var (
		writeErr  *pipeline.WriteError
		readErr   *pipeline.ReadError
		deleteErr *pipeline.DeleteError
	)

	switch {
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ingest.ErrNoRows), errors.Is(err, spreadsheet.ErrNoSheet), errors.Is(err, dataset.ErrKindMismatch):
		return http.StatusBadRequest
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, dataset.ErrSheetsDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &writeErr), errors.As(err, &readErr), errors.As(err, &deleteErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
