package dataset

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/ingest"
	"github.com/mamadbah2/retailsheet/internal/metrics"
	"github.com/mamadbah2/retailsheet/internal/service/filter"
	"github.com/mamadbah2/retailsheet/internal/service/pipeline"
)

func TestImportStockEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore(t)
	svc := New(StockDefinition(), store, Options{Metrics: metrics.New()})

	var events []models.ProgressEvent
	loaded, result, err := svc.Import(ctx, stockRows(), func(e models.ProgressEvent) { events = append(events, e) })
	require.NoError(t, err)

	assert.Equal(t, []int{3}, store.inserts)
	assert.Equal(t, [][2]int{{0, pipeline.DefaultPageSize}}, store.ranges)
	assert.Equal(t, 3, result.InsertedCount)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, models.KindStock, result.Kind)
	require.Equal(t, 3, loaded.Len())

	summary, ok := loaded.Summary().(models.StockSummary)
	require.True(t, ok)
	assert.Equal(t, 18.0, summary.TotalInventory)
	require.NotEmpty(t, summary.ByBrand)
	for _, g := range summary.ByBrand {
		if g.Key == "X" {
			assert.Equal(t, 13.0, g.Value)
		}
	}

	require.NotEmpty(t, events)
	assert.Equal(t, pipeline.StageWrite, events[0].Stage)
	assert.Equal(t, pipeline.StageRead, events[len(events)-1].Stage)
}

func TestImportEmptyRowsWritesNothing(t *testing.T) {
	store := newCountingStore(t)
	svc := New(StockDefinition(), store, Options{})

	_, _, err := svc.Import(context.Background(), nil, nil)

	assert.ErrorIs(t, err, ingest.ErrNoRows)
	assert.Empty(t, store.inserts)
	assert.Zero(t, store.counts)
}

func TestImportWriteFailure(t *testing.T) {
	store := newCountingStore(t)
	store.insertErr = errors.New("permission denied for table stock_items")
	svc := New(StockDefinition(), store, Options{ChunkSize: 2})

	_, _, err := svc.Import(context.Background(), stockRows(), nil)

	var writeErr *pipeline.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "error while inserting data: permission denied for table stock_items", err.Error())
	assert.Equal(t, []int{2}, store.inserts)
	assert.Empty(t, store.ranges)
}

func TestClearEmptyCollectionSucceeds(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore(t)
	svc := New(PersonnelDefinition(), store, Options{})

	require.NoError(t, svc.Clear(ctx, nil))
	assert.Equal(t, 1, store.deletes)

	loaded, err := svc.Load(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, loaded.Len())
	assert.Empty(t, store.ranges)
}

func TestClearRemovesImportedRecords(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore(t)
	svc := New(StockDefinition(), store, Options{})

	_, _, err := svc.Import(ctx, stockRows(), nil)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, nil))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportFileWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"personelAdi", "marka", "satisAdeti", "satisFiyati"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Ali", "Acme", 2, 150.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Veli", "Zeta", 1, 40}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	svc := New(PersonnelDefinition(), newCountingStore(t), Options{})
	loaded, result, err := svc.ImportFile(context.Background(), bytes.NewReader(buf.Bytes()), "personel.xlsx", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.InsertedCount)
	summary := loaded.Summary().(models.PersonnelSummary)
	assert.Equal(t, 190.5, summary.TotalSales)
	assert.Equal(t, 3.0, summary.TotalQuantity)
	assert.Equal(t, "Acme", summary.TopBrand)
}

func TestImportFileCSVWithoutRows(t *testing.T) {
	svc := New(SalesDefinition(), newCountingStore(t), Options{})

	_, _, err := svc.ImportFile(context.Background(), strings.NewReader("Marka,Satış Miktarı\n"), "sales.csv", nil)

	assert.ErrorIs(t, err, ingest.ErrNoRows)
}

func TestImportSheet(t *testing.T) {
	sheets := &fakeSheets{rows: stockRows()}
	svc := New(StockDefinition(), newCountingStore(t), Options{Sheets: sheets})

	loaded, result, err := svc.ImportSheet(context.Background(), "stock!A1:H", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.InsertedCount)
	assert.Equal(t, 3, loaded.Len())

	_, _, err = New(StockDefinition(), newCountingStore(t), Options{}).ImportSheet(context.Background(), "stock", nil)
	assert.ErrorIs(t, err, ErrSheetsDisabled)
}

func TestExportFilteredCollection(t *testing.T) {
	ctx := context.Background()
	sheets := &fakeSheets{}
	svc := New(StockDefinition(), newCountingStore(t), Options{Sheets: sheets})

	loaded, _, err := svc.Import(ctx, stockRows(), nil)
	require.NoError(t, err)

	result, err := svc.Export(ctx, loaded.Filter(filter.Criteria{Field: "brand", Value: "x"}))
	require.NoError(t, err)

	assert.Equal(t, models.ExportResult{Kind: models.KindStock, Sheet: "stock", ExportedRows: 2}, result)
	assert.Equal(t, ingest.StockHeaders, sheets.header)
	require.Len(t, sheets.written, 2)
	assert.Equal(t, "X", sheets.written[0][0])
}

func TestExportRejectsOtherKinds(t *testing.T) {
	svc := New(StockDefinition(), newCountingStore(t), Options{Sheets: &fakeSheets{}})

	_, err := svc.Export(context.Background(), NewRecords(SalesDefinition(), nil))
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = New(StockDefinition(), newCountingStore(t), Options{}).Export(context.Background(), NewRecords(StockDefinition(), nil))
	assert.ErrorIs(t, err, ErrSheetsDisabled)
}

func TestLoadOrdersNewestFirstAcrossPages(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore(t)
	svc := New(SalesDefinition(), store, Options{ChunkSize: 2, PageSize: 2})

	rows := []models.Row{
		{"Marka": "a", "Satış Miktarı": 1},
		{"Marka": "b", "Satış Miktarı": 2},
		{"Marka": "c", "Satış Miktarı": 3},
	}
	loaded, _, err := svc.Import(ctx, rows, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1}, store.inserts)
	assert.Equal(t, [][2]int{{0, 2}, {2, 2}}, store.ranges)

	items := loaded.(*Records[models.SalesRecord]).Items()
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].Brand)
	assert.Equal(t, "a", items[2].Brand)
}
