package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
	"github.com/custodia-labs/sheetrows/internal/logger"
	"github.com/custodia-labs/sheetrows/internal/sheetquery"
)

// Value render and input options of the Sheets v4 API.
const (
	renderFormatted   = "FORMATTED_VALUE"
	renderUnformatted = "UNFORMATTED_VALUE"
	inputUserEntered  = "USER_ENTERED"
	insertRows        = "INSERT_ROWS"
	dimensionRows     = "ROWS"
)

const spreadsheetFields = "spreadsheetId,spreadsheetUrl," +
	"properties(title,locale,timeZone)," +
	"sheets(properties(sheetId,title,index,gridProperties(rowCount,columnCount)))"

// Ensure Client implements the interface.
var _ driven.SpreadsheetClient = (*Client)(nil)

// Options configures a Client.
type Options struct {
	// CredentialsFile is the path to a service-account JSON key.
	CredentialsFile string

	// CredentialsJSON is the service-account key itself. Takes precedence
	// over CredentialsFile.
	CredentialsJSON []byte

	// HTTPClient replaces the authenticated transport. No credentials
	// are read when set.
	HTTPClient *http.Client

	// Endpoint overrides the API base URL.
	Endpoint string

	// RateLimit configures the client-side limiter.
	RateLimit RateLimitConfig
}

// Client talks to the Google Sheets v4 API.
type Client struct {
	svc            *sheetsv4.Service
	limiter        *RateLimiter
	serviceAccount string
}

// NewClient creates a Sheets client authenticated with a service account.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var clientOpts []option.ClientOption
	var email string

	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	} else {
		data, err := loadCredentials(opts)
		if err != nil {
			return nil, err
		}
		conf, err := google.JWTConfigFromJSON(data, sheetsv4.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrAuthInvalid, err)
		}
		email = conf.Email
		clientOpts = append(clientOpts, option.WithTokenSource(conf.TokenSource(ctx)))
	}

	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := sheetsv4.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:            svc,
		limiter:        NewRateLimiter(opts.RateLimit),
		serviceAccount: email,
	}, nil
}

func loadCredentials(opts Options) ([]byte, error) {
	if len(opts.CredentialsJSON) > 0 {
		return opts.CredentialsJSON, nil
	}
	if opts.CredentialsFile == "" {
		return nil, domain.ErrAuthRequired
	}
	data, err := os.ReadFile(opts.CredentialsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", domain.ErrAuthRequired, opts.CredentialsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return data, nil
}

// ServiceAccount returns the email of the service account in use, or ""
// when the client was built with a custom HTTP client.
func (c *Client) ServiceAccount() string {
	return c.serviceAccount
}

// Open fetches spreadsheet metadata and the list of sheets.
func (c *Client) Open(ctx context.Context, spreadsheetID string) (*domain.Spreadsheet, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields(spreadsheetFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.fail("open spreadsheet "+spreadsheetID, err)
	}

	ss := &domain.Spreadsheet{
		ID:  spreadsheetID,
		URL: resp.SpreadsheetUrl,
	}
	if ss.URL == "" {
		ss.URL = domain.SpreadsheetURL(spreadsheetID)
	}
	if p := resp.Properties; p != nil {
		ss.Title = p.Title
		ss.Locale = p.Locale
		ss.TimeZone = p.TimeZone
	}
	for _, sh := range resp.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		p := sh.Properties
		sheet := domain.Sheet{
			SpreadsheetID: spreadsheetID,
			ID:            p.SheetId,
			Title:         p.Title,
			Index:         int(p.Index),
			URL:           domain.SheetURL(spreadsheetID, p.SheetId),
		}
		if g := p.GridProperties; g != nil {
			sheet.RowCount = int(g.RowCount)
			sheet.ColumnCount = int(g.ColumnCount)
		}
		ss.Sheets = append(ss.Sheets, sheet)
	}
	return ss, nil
}

// Rows fetches the sheet and returns the data rows selected by opts.
// The first row is the header.
func (c *Client) Rows(ctx context.Context, sheet domain.Sheet, opts domain.RowOptions) ([]*domain.Row, error) {
	query, err := sheetquery.Compile(opts.Query)
	if err != nil {
		return nil, err
	}

	formatted, err := c.values(ctx, sheet.SpreadsheetID, quoteTitle(sheet.Title), renderFormatted)
	if err != nil {
		return nil, err
	}
	if len(formatted) == 0 {
		return []*domain.Row{}, nil
	}

	// Filtering and ordering compare raw numbers, so "202.39" matches a
	// cell displayed as "$202.39".
	var raw [][]any
	if !query.IsEmpty() || opts.OrderBy != "" {
		raw, err = c.values(ctx, sheet.SpreadsheetID, quoteTitle(sheet.Title), renderUnformatted)
		if err != nil {
			return nil, err
		}
	}

	columns := sheetquery.Headers(cellStrings(formatted[0]))
	handle := &rowHandle{client: c, sheet: sheet, columns: columns}

	records := make([]record, 0, len(formatted)-1)
	for i := 1; i < len(formatted); i++ {
		number := i + domain.HeaderRowNumber
		row := domain.RowFromCells(columns, cellStrings(formatted[i]), number)
		row.SpreadsheetID = sheet.SpreadsheetID
		row.SheetTitle = sheet.Title
		row.Bind(handle)

		rec := record{row: row, raw: row.Values}
		if i < len(raw) {
			rec.raw = domain.RowFromCells(columns, cellStrings(raw[i]), number).Values
		} else if raw != nil {
			rec.raw = sheetquery.MapRecord{}
		}
		records = append(records, rec)
	}

	selected := sheetquery.Select(records, query, opts.OrderBy, opts.Reverse, opts.Offset, opts.Limit)
	rows := make([]*domain.Row, len(selected))
	for i, rec := range selected {
		rows[i] = rec.row
	}
	logger.Debug("Sheet %q: %d of %d rows selected", sheet.Title, len(rows), len(records))
	return rows, nil
}

// AddRow appends a row after the last row of the sheet's data.
// Keys that are not columns of the sheet are ignored.
func (c *Client) AddRow(ctx context.Context, sheet domain.Sheet, data map[string]string) (*domain.Row, error) {
	header, err := c.values(ctx, sheet.SpreadsheetID, quoteTitle(sheet.Title)+"!1:1", renderFormatted)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header row", domain.ErrInvalidInput, sheet.Title)
	}
	columns := sheetquery.Headers(cellStrings(header[0]))

	cells := make([]string, len(columns))
	for key, val := range data {
		if i := sheetquery.ColumnIndex(columns, key); i >= 0 {
			cells[i] = val
		} else {
			logger.Debug("Sheet %q has no column %q, ignoring", sheet.Title, key)
		}
	}
	values := make([]any, len(cells))
	for i, v := range cells {
		values[i] = v
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Append(sheet.SpreadsheetID, quoteTitle(sheet.Title),
		&sheetsv4.ValueRange{Values: [][]any{values}}).
		ValueInputOption(inputUserEntered).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.fail("append row", err)
	}

	number := 0
	if resp.Updates != nil {
		number = rowFromRange(resp.Updates.UpdatedRange)
	}
	row := domain.RowFromCells(columns, cells, number)
	row.SpreadsheetID = sheet.SpreadsheetID
	row.SheetTitle = sheet.Title
	row.Bind(&rowHandle{client: c, sheet: sheet, columns: columns})
	return row, nil
}

// values reads a range as rows of cells.
func (c *Client) values(ctx context.Context, spreadsheetID, rng, render string) ([][]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption(render).
		MajorDimension(dimensionRows).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.fail("read "+rng, err)
	}
	return resp.Values, nil
}

// fail wraps an API error and starts a backoff window on 429.
func (c *Client) fail(op string, err error) error {
	if IsRateLimited(err) {
		c.limiter.RecordRateLimitError(retryAfter(err))
		logger.Warn("Sheets API rate limit hit, backing off for %s",
			c.limiter.BackoffRemaining().Round(time.Second))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// rowHandle saves and deletes rows of one sheet.
type rowHandle struct {
	client  *Client
	sheet   domain.Sheet
	columns []string
}

// Save writes the row's dirty columns over their cells. Every other cell
// is sent as null, which the API leaves untouched, so formulas and
// unformatted values survive.
func (h *rowHandle) Save(ctx context.Context, row *domain.Row) error {
	cells := make([]any, len(h.columns))
	for i, col := range h.columns {
		if col == "" || !row.Dirty(col) {
			continue
		}
		if v, ok := row.Values[col]; ok {
			cells[i] = v
		}
	}

	rng := fmt.Sprintf("%s!A%d", quoteTitle(h.sheet.Title), row.Number)
	if err := h.client.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := h.client.svc.Spreadsheets.Values.Update(h.sheet.SpreadsheetID, rng,
		&sheetsv4.ValueRange{Values: [][]any{cells}}).
		ValueInputOption(inputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return h.client.fail(fmt.Sprintf("save row %d", row.Number), err)
	}
	return nil
}

// Delete removes the row from the sheet. Rows below it move up.
func (h *rowHandle) Delete(ctx context.Context, row *domain.Row) error {
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			DeleteDimension: &sheetsv4.DeleteDimensionRequest{
				Range: &sheetsv4.DimensionRange{
					SheetId:         h.sheet.ID,
					Dimension:       dimensionRows,
					StartIndex:      int64(row.Number - 1),
					EndIndex:        int64(row.Number),
					ForceSendFields: []string{"SheetId"},
				},
			},
		}},
	}

	if err := h.client.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := h.client.svc.Spreadsheets.BatchUpdate(h.sheet.SpreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return h.client.fail(fmt.Sprintf("delete row %d", row.Number), err)
	}
	return nil
}

// record pairs a row with the raw values queries are evaluated against.
type record struct {
	row *domain.Row
	raw sheetquery.MapRecord
}

func (r record) Get(column string) (string, bool) {
	return r.raw.Get(column)
}

// quoteTitle quotes a sheet title for use in A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// rowFromRange extracts the first row number from an A1 range such as
// "'Sheet 1'!A5:C5". Returns 0 if none is found.
func rowFromRange(a1 string) int {
	if i := strings.LastIndex(a1, "!"); i >= 0 {
		a1 = a1[i+1:]
	}
	if i := strings.Index(a1, ":"); i >= 0 {
		a1 = a1[:i]
	}
	a1 = strings.TrimLeft(a1, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz$")
	n, err := strconv.Atoi(strings.TrimPrefix(a1, "$"))
	if err != nil {
		return 0
	}
	return n
}

// cellStrings renders API cell values as strings.
func cellStrings(cells []any) []string {
	out := make([]string, len(cells))
	for i, v := range cells {
		switch v := v.(type) {
		case nil:
		case string:
			out[i] = v
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			// Matches how the sheet displays checkbox cells.
			out[i] = strings.ToUpper(strconv.FormatBool(v))
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
