package sheets

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/sheetrows/internal/sheetquery"
)

// fakeSheets is a single-sheet stand-in for the Sheets v4 REST API.
type fakeSheets struct {
	mu            sync.Mutex
	spreadsheetID string
	sheetID       int64
	title         string
	grid          [][]string

	failStatus int
	retryAfter string

	renders  []string
	updates  []string
	bodies   [][]any
	appended [][]any
	deletes  []*sheetsv4.DimensionRange
}

func newFakeSheets(t *testing.T, grid ...[]string) (*fakeSheets, *Client) {
	t.Helper()

	f := &fakeSheets{
		spreadsheetID: "purchases",
		sheetID:       7,
		title:         "July 2019",
		grid:          grid,
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	client, err := NewClient(t.Context(), Options{
		HTTPClient: srv.Client(),
		Endpoint:   srv.URL + "/",
		RateLimit:  RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return f, client
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStatus != 0 {
		if f.retryAfter != "" {
			w.Header().Set("Retry-After", f.retryAfter)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.failStatus)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"injected"}}`, f.failStatus)
		return
	}

	base := "/v4/spreadsheets/" + f.spreadsheetID
	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && path == base:
		f.writeJSON(w, f.metadata())
	case r.Method == http.MethodPost && path == base+":batchUpdate":
		f.batchUpdate(w, r)
	case strings.HasPrefix(path, base+"/values/"):
		rng := strings.TrimPrefix(path, base+"/values/")
		switch r.Method {
		case http.MethodGet:
			f.get(w, r, rng)
		case http.MethodPut:
			f.update(w, r, rng)
		case http.MethodPost:
			f.append(w, r)
		default:
			http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":404,"message":"Requested entity was not found."}}`)
	}
}

func (f *fakeSheets) metadata() *sheetsv4.Spreadsheet {
	return &sheetsv4.Spreadsheet{
		SpreadsheetId: f.spreadsheetID,
		Properties: &sheetsv4.SpreadsheetProperties{
			Title:    "Purchases",
			Locale:   "en_US",
			TimeZone: "Europe/London",
		},
		Sheets: []*sheetsv4.Sheet{
			{Properties: &sheetsv4.SheetProperties{
				SheetId: f.sheetID,
				Title:   f.title,
				Index:   0,
				GridProperties: &sheetsv4.GridProperties{
					RowCount:    1000,
					ColumnCount: 26,
				},
			}},
			{Properties: &sheetsv4.SheetProperties{SheetId: 8, Title: "Summary", Index: 1}},
		},
	}
}

func (f *fakeSheets) get(w http.ResponseWriter, r *http.Request, rng string) {
	render := r.URL.Query().Get("valueRenderOption")
	f.renders = append(f.renders, render)

	rows := f.grid
	if strings.HasSuffix(rng, "!1:1") && len(rows) > 0 {
		rows = rows[:1]
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, cell := range row {
			values[i][j] = cell
			if render == renderUnformatted {
				if n, ok := sheetquery.ParseNumber(cell); ok {
					values[i][j] = n
				} else if cell == "TRUE" || cell == "FALSE" {
					values[i][j] = cell == "TRUE"
				}
			}
		}
	}
	f.writeJSON(w, &sheetsv4.ValueRange{Range: rng, MajorDimension: "ROWS", Values: values})
}

func (f *fakeSheets) update(w http.ResponseWriter, r *http.Request, rng string) {
	var body sheetsv4.ValueRange
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.updates = append(f.updates, rng+" "+r.URL.Query().Get("valueInputOption"))
	f.bodies = append(f.bodies, body.Values[0])

	idx := rowFromRange(rng) - 1
	for idx >= len(f.grid) {
		f.grid = append(f.grid, nil)
	}
	for j, v := range body.Values[0] {
		if v == nil {
			continue
		}
		for len(f.grid[idx]) <= j {
			f.grid[idx] = append(f.grid[idx], "")
		}
		f.grid[idx][j] = fmt.Sprint(v)
	}
	f.writeJSON(w, &sheetsv4.UpdateValuesResponse{UpdatedRange: rng})
}

func (f *fakeSheets) append(w http.ResponseWriter, r *http.Request) {
	var body sheetsv4.ValueRange
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	row := make([]string, len(body.Values[0]))
	for j, v := range body.Values[0] {
		row[j] = fmt.Sprint(v)
	}
	f.appended = append(f.appended, body.Values[0])
	f.grid = append(f.grid, row)

	n := len(f.grid)
	f.writeJSON(w, &sheetsv4.AppendValuesResponse{
		Updates: &sheetsv4.UpdateValuesResponse{
			UpdatedRange: fmt.Sprintf("'%s'!A%d:C%d", f.title, n, n),
		},
	})
}

func (f *fakeSheets) batchUpdate(w http.ResponseWriter, r *http.Request) {
	var body sheetsv4.BatchUpdateSpreadsheetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, req := range body.Requests {
		if req.DeleteDimension == nil {
			continue
		}
		dr := req.DeleteDimension.Range
		f.deletes = append(f.deletes, dr)
		f.grid = append(f.grid[:dr.StartIndex], f.grid[dr.EndIndex:]...)
	}
	f.writeJSON(w, &sheetsv4.BatchUpdateSpreadsheetResponse{SpreadsheetId: f.spreadsheetID})
}

func (f *fakeSheets) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
