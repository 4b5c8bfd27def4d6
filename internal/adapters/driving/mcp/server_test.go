package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("nil sheet service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSheetService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Sheet: services.NewSheetService(memory.NewSpreadsheets(), nil),
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil sheet service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingSheetService)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Sheet:    services.NewSheetService(memory.NewSpreadsheets(), nil),
			Journal:  &mockJournalService{},
			Settings: &mockSettingsService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestServer_spreadsheetID(t *testing.T) {
	t.Run("explicit ID wins", func(t *testing.T) {
		server, _, _ := newTestServer(t)
		server.ports.Settings = &mockSettingsService{
			settings: domain.Settings{Google: domain.GoogleSettings{SpreadsheetID: "configured"}},
		}

		id, err := server.spreadsheetID("explicit")
		require.NoError(t, err)
		assert.Equal(t, "explicit", id)
	})

	t.Run("falls back to configured spreadsheet", func(t *testing.T) {
		server, _, _ := newTestServer(t)
		server.ports.Settings = &mockSettingsService{
			settings: domain.Settings{Google: domain.GoogleSettings{SpreadsheetID: "configured"}},
		}

		id, err := server.spreadsheetID("")
		require.NoError(t, err)
		assert.Equal(t, "configured", id)
	})

	t.Run("no ID anywhere", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		_, err := server.spreadsheetID("")
		assert.ErrorIs(t, err, domain.ErrSpreadsheetIDRequired)
	})
}

func TestServer_InMemorySession(t *testing.T) {
	ctx := context.Background()
	server, _, _ := newTestServer(t)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"access_spreadsheet", "list_sheets", "get_rows", "query_rows",
		"update_row", "create_row", "delete_row", "journal",
	}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "query_rows",
		Arguments: map[string]any{
			"spreadsheet_id": testSpreadsheetID,
			"query":          "price = 202.39",
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.NotNil(t, result.StructuredContent)

	output, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, output["count"])
}
