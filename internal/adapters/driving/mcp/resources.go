package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/export"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sheetrows resources.
	uriScheme = "sheetrows://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for spreadsheet metadata.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "spreadsheets/{spreadsheetId}",
		Name:        "spreadsheet",
		Description: "Title and worksheets of a spreadsheet",
		MIMEType:    "application/json",
	}, s.handleSpreadsheetResource)

	// Template for the rows of a spreadsheet's first sheet.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "spreadsheets/{spreadsheetId}/rows",
		Name:        "spreadsheet-rows",
		Description: "Rows of the first worksheet as CSV",
		MIMEType:    "text/csv",
	}, s.handleRowsResource)
}

// handleSpreadsheetResource returns spreadsheet metadata.
func (s *Server) handleSpreadsheetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractSpreadsheetID(req.Params.URI, "")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ss, err := s.ports.Sheet.Spreadsheet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}

	type sheetInfo struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
		Rows  int    `json:"rows"`
	}
	info := struct {
		ID     string      `json:"id"`
		Title  string      `json:"title"`
		URL    string      `json:"url"`
		Sheets []sheetInfo `json:"sheets"`
	}{ID: ss.ID, Title: ss.Title, URL: ss.URL, Sheets: make([]sheetInfo, len(ss.Sheets))}
	for i, sh := range ss.Sheets {
		info.Sheets[i] = sheetInfo{ID: sh.ID, Title: sh.Title, Rows: sh.RowCount}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling spreadsheet: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRowsResource returns the rows of the first sheet as CSV.
func (s *Server) handleRowsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractSpreadsheetID(req.Params.URI, "/rows")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sheet, err := s.ports.Sheet.AccessSpreadsheet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	rows, err := s.ports.Sheet.GetRows(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, domain.OutputCSV, nil, rows); err != nil {
		return nil, fmt.Errorf("encoding rows: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/csv",
			Text:     buf.String(),
		}},
	}, nil
}

// extractSpreadsheetID extracts the ID from a URI like
// sheetrows://spreadsheets/{spreadsheetId}{suffix}.
func extractSpreadsheetID(uri, suffix string) string {
	const prefix = uriScheme + "spreadsheets/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
