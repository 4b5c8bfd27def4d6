package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/sheetquery"
)

// SpreadsheetInput identifies a spreadsheet.
type SpreadsheetInput struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured spreadsheet)"`
}

// SheetOutput describes one worksheet.
type SheetOutput struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetID       int64  `json:"sheet_id"`
	Title         string `json:"title"`
	Index         int    `json:"index"`
	URL           string `json:"url"`
	RowCount      int    `json:"row_count"`
	ColumnCount   int    `json:"column_count"`
}

// SpreadsheetOutput describes a spreadsheet and its worksheets.
type SpreadsheetOutput struct {
	SpreadsheetID string        `json:"spreadsheet_id"`
	Title         string        `json:"title"`
	URL           string        `json:"url"`
	Locale        string        `json:"locale,omitempty"`
	TimeZone      string        `json:"time_zone,omitempty"`
	Sheets        []SheetOutput `json:"sheets"`
}

// GetRowsInput is the input schema for the get_rows tool.
type GetRowsInput struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured spreadsheet)"`
	Sheet         string `json:"sheet,omitempty" jsonschema:"worksheet title (defaults to the first sheet)"`
	Offset        int    `json:"offset,omitempty" jsonschema:"number of rows to skip"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of rows to return (0 = all)"`
	OrderBy       string `json:"order_by,omitempty" jsonschema:"column to sort by"`
	Reverse       bool   `json:"reverse,omitempty" jsonschema:"reverse the row order"`
}

// QueryRowsInput is the input schema for the query_rows tool.
type QueryRowsInput struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured spreadsheet)"`
	Sheet         string `json:"sheet,omitempty" jsonschema:"worksheet title (defaults to the first sheet)"`
	Query         string `json:"query" jsonschema:"structured query, for example: price > 100 and status = 'paid'"`
	Offset        int    `json:"offset,omitempty" jsonschema:"number of matching rows to skip"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of rows to return (0 = all)"`
	OrderBy       string `json:"order_by,omitempty" jsonschema:"column to sort by"`
	Reverse       bool   `json:"reverse,omitempty" jsonschema:"reverse the row order"`
}

// RowOutput is a single row.
type RowOutput struct {
	RowNumber int               `json:"row_number"`
	Values    map[string]string `json:"values"`
}

// RowsOutput is the output schema for the row listing tools.
type RowsOutput struct {
	Sheet   string      `json:"sheet"`
	Columns []string    `json:"columns"`
	Rows    []RowOutput `json:"rows"`
	Count   int         `json:"count"`
}

// UpdateRowInput is the input schema for the update_row tool.
type UpdateRowInput struct {
	SpreadsheetID string            `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured spreadsheet)"`
	Sheet         string            `json:"sheet,omitempty" jsonschema:"worksheet title (defaults to the first sheet)"`
	RowNumber     int               `json:"row_number" jsonschema:"sheet row number (the header is row 1)"`
	Values        map[string]string `json:"values" jsonschema:"column values to write; unknown columns are ignored"`
}

// UpdateRowOutput is the output schema for the update_row tool.
type UpdateRowOutput struct {
	Row     RowOutput `json:"row"`
	Ignored []string  `json:"ignored,omitempty"`
}

// CreateRowInput is the input schema for the create_row tool.
type CreateRowInput struct {
	SpreadsheetID string            `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured spreadsheet)"`
	Sheet         string            `json:"sheet,omitempty" jsonschema:"worksheet title (defaults to the first sheet)"`
	Values        map[string]string `json:"values" jsonschema:"column values of the new row"`
}

// CreateRowOutput is the output schema for the create_row tool.
type CreateRowOutput struct {
	Created bool   `json:"created"`
	Sheet   string `json:"sheet"`
}

// DeleteRowInput is the input schema for the delete_row tool.
type DeleteRowInput struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (defaults to the configured spreadsheet)"`
	Sheet         string `json:"sheet,omitempty" jsonschema:"worksheet title (defaults to the first sheet)"`
	RowNumber     int    `json:"row_number" jsonschema:"sheet row number (the header is row 1)"`
}

// DeleteRowOutput is the output schema for the delete_row tool.
type DeleteRowOutput struct {
	Deleted   bool              `json:"deleted"`
	RowNumber int               `json:"row_number"`
	Values    map[string]string `json:"values"`
}

// JournalInput is the input schema for the journal tool.
type JournalInput struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"only entries for this spreadsheet"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of entries (default 20)"`
}

// JournalEntryOutput is a single journal entry.
type JournalEntryOutput struct {
	ID            string            `json:"id"`
	Action        string            `json:"action"`
	SpreadsheetID string            `json:"spreadsheet_id"`
	Sheet         string            `json:"sheet"`
	RowNumber     int               `json:"row_number,omitempty"`
	Values        map[string]string `json:"values,omitempty"`
	At            string            `json:"at"`
}

// JournalOutput is the output schema for the journal tool.
type JournalOutput struct {
	Entries []JournalEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

const defaultJournalLimit = 20

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "access_spreadsheet",
		Description: "Open a spreadsheet and describe its first worksheet",
	}, s.handleAccessSpreadsheet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sheets",
		Description: "List the worksheets of a spreadsheet",
	}, s.handleListSheets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_rows",
		Description: "Read the rows of a worksheet",
	}, s.handleGetRows)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_rows",
		Description: "Read the rows of a worksheet matching a structured query",
	}, s.handleQueryRows)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_row",
		Description: "Overwrite existing columns of a row and save it",
	}, s.handleUpdateRow)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_row",
		Description: "Append a row to a worksheet",
	}, s.handleCreateRow)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_row",
		Description: "Delete a row from a worksheet",
	}, s.handleDeleteRow)

	if s.ports.Journal != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "journal",
			Description: "List recent row changes made through sheetrows",
		}, s.handleJournal)
	}
}

func (s *Server) handleAccessSpreadsheet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SpreadsheetInput,
) (*mcp.CallToolResult, SheetOutput, error) {
	sheet, err := s.openSheet(ctx, input.SpreadsheetID, "")
	if err != nil {
		return nil, SheetOutput{}, err
	}
	return nil, toSheetOutput(sheet), nil
}

func (s *Server) handleListSheets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SpreadsheetInput,
) (*mcp.CallToolResult, SpreadsheetOutput, error) {
	id, err := s.spreadsheetID(input.SpreadsheetID)
	if err != nil {
		return nil, SpreadsheetOutput{}, err
	}
	ss, err := s.ports.Sheet.Spreadsheet(ctx, id)
	if err != nil {
		return nil, SpreadsheetOutput{}, err
	}

	output := SpreadsheetOutput{
		SpreadsheetID: ss.ID,
		Title:         ss.Title,
		URL:           ss.URL,
		Locale:        ss.Locale,
		TimeZone:      ss.TimeZone,
		Sheets:        make([]SheetOutput, len(ss.Sheets)),
	}
	for i := range ss.Sheets {
		output.Sheets[i] = toSheetOutput(&ss.Sheets[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetRows(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetRowsInput,
) (*mcp.CallToolResult, RowsOutput, error) {
	return s.listRows(ctx, input, "")
}

func (s *Server) handleQueryRows(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryRowsInput,
) (*mcp.CallToolResult, RowsOutput, error) {
	if input.Query == "" {
		return nil, RowsOutput{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	return s.listRows(ctx, GetRowsInput{
		SpreadsheetID: input.SpreadsheetID,
		Sheet:         input.Sheet,
		Offset:        input.Offset,
		Limit:         input.Limit,
		OrderBy:       input.OrderBy,
		Reverse:       input.Reverse,
	}, input.Query)
}

func (s *Server) listRows(ctx context.Context, input GetRowsInput, query string) (*mcp.CallToolResult, RowsOutput, error) {
	sheet, err := s.openSheet(ctx, input.SpreadsheetID, input.Sheet)
	if err != nil {
		return nil, RowsOutput{}, err
	}

	rows, err := s.ports.Sheet.ListRows(ctx, sheet, domain.RowOptions{
		Offset:  input.Offset,
		Limit:   input.Limit,
		OrderBy: input.OrderBy,
		Reverse: input.Reverse,
		Query:   query,
	})
	if err != nil {
		return nil, RowsOutput{}, err
	}

	output := RowsOutput{
		Sheet:   sheet.Title,
		Columns: []string{},
		Rows:    make([]RowOutput, len(rows)),
		Count:   len(rows),
	}
	for i, row := range rows {
		if i == 0 {
			output.Columns = row.Columns
		}
		output.Rows[i] = toRowOutput(row)
	}
	return nil, output, nil
}

func (s *Server) handleUpdateRow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateRowInput,
) (*mcp.CallToolResult, UpdateRowOutput, error) {
	sheet, err := s.openSheet(ctx, input.SpreadsheetID, input.Sheet)
	if err != nil {
		return nil, UpdateRowOutput{}, err
	}
	row, err := s.ports.Sheet.GetRow(ctx, sheet, input.RowNumber)
	if err != nil {
		return nil, UpdateRowOutput{}, err
	}

	var ignored []string
	for _, key := range domain.SortedKeys(input.Values) {
		if !row.Has(key) && !row.Has(sheetquery.NormalizeColumn(key)) {
			ignored = append(ignored, key)
		}
	}

	if err := s.ports.Sheet.UpdateRow(ctx, row, input.Values); err != nil {
		return nil, UpdateRowOutput{}, err
	}
	return nil, UpdateRowOutput{Row: toRowOutput(row), Ignored: ignored}, nil
}

func (s *Server) handleCreateRow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateRowInput,
) (*mcp.CallToolResult, CreateRowOutput, error) {
	if len(input.Values) == 0 {
		return nil, CreateRowOutput{}, fmt.Errorf("%w: values are required", domain.ErrInvalidInput)
	}
	sheet, err := s.openSheet(ctx, input.SpreadsheetID, input.Sheet)
	if err != nil {
		return nil, CreateRowOutput{}, err
	}
	if err := s.ports.Sheet.CreateRow(ctx, sheet, input.Values); err != nil {
		return nil, CreateRowOutput{}, err
	}
	return nil, CreateRowOutput{Created: true, Sheet: sheet.Title}, nil
}

func (s *Server) handleDeleteRow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteRowInput,
) (*mcp.CallToolResult, DeleteRowOutput, error) {
	sheet, err := s.openSheet(ctx, input.SpreadsheetID, input.Sheet)
	if err != nil {
		return nil, DeleteRowOutput{}, err
	}
	row, err := s.ports.Sheet.GetRow(ctx, sheet, input.RowNumber)
	if err != nil {
		return nil, DeleteRowOutput{}, err
	}

	deleted := row.CanDelete()
	if err := s.ports.Sheet.DeleteRow(ctx, row); err != nil {
		return nil, DeleteRowOutput{}, err
	}
	return nil, DeleteRowOutput{
		Deleted:   deleted,
		RowNumber: input.RowNumber,
		Values:    row.Values,
	}, nil
}

func (s *Server) handleJournal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JournalInput,
) (*mcp.CallToolResult, JournalOutput, error) {
	if s.ports.Journal == nil {
		return nil, JournalOutput{}, ErrJournalDisabled
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultJournalLimit
	}

	entries, err := s.ports.Journal.List(ctx, input.SpreadsheetID, limit)
	if err != nil {
		return nil, JournalOutput{}, err
	}

	output := JournalOutput{
		Entries: make([]JournalEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		e := entries[i]
		output.Entries[i] = JournalEntryOutput{
			ID:            e.ID,
			Action:        string(e.Action),
			SpreadsheetID: e.SpreadsheetID,
			Sheet:         e.SheetTitle,
			RowNumber:     e.RowNumber,
			Values:        e.Values,
			At:            e.At.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

func toSheetOutput(sheet *domain.Sheet) SheetOutput {
	return SheetOutput{
		SpreadsheetID: sheet.SpreadsheetID,
		SheetID:       sheet.ID,
		Title:         sheet.Title,
		Index:         sheet.Index,
		URL:           sheet.URL,
		RowCount:      sheet.RowCount,
		ColumnCount:   sheet.ColumnCount,
	}
}

func toRowOutput(row *domain.Row) RowOutput {
	return RowOutput{RowNumber: row.Number, Values: row.Values}
}
