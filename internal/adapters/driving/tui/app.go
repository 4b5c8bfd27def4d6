package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/components/rowtable"
	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// App is the row browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	table  *rowtable.Table
	input  *input.QueryInput
	status *status.Bar

	// spreadsheetID and sheetTitle select the sheet to browse. An empty
	// spreadsheetID falls back to the configured default; an empty title
	// selects the first sheet.
	spreadsheetID string
	sheetTitle    string

	// sheet is the sheet on display once opened.
	sheet *domain.Sheet

	// query is the query the rows on display were fetched with.
	query string

	// pending is the row awaiting delete confirmation.
	pending *domain.Row

	// notice is shown in the status bar after the next row load.
	notice string

	mode messages.Mode

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its dimensions.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new row browser with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		table:  rowtable.New(s),
		input:  input.NewQueryInput(s),
		status: status.NewBar(s, km),
		mode:   messages.ModeBrowse,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithSheet selects the spreadsheet and sheet to browse.
func (a *App) WithSheet(spreadsheetID, title string) *App {
	a.spreadsheetID = spreadsheetID
	a.sheetTitle = title
	return a
}

// Init implements tea.Model.
// It opens the sheet when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sheetrows"),
		a.openSheet(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case messages.ModeQuery:
			return a.handleQueryKey(msg)
		case messages.ModeConfirmDelete:
			return a.handleConfirmKey(msg)
		default:
			return a.handleBrowseKey(msg)
		}

	case messages.SheetOpened:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.sheet = msg.Sheet
		return a, a.loadRows(a.query)

	case messages.RowsLoaded:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.err = nil
		a.query = msg.Query
		a.table.SetRows(msg.Rows)
		a.status.Clear()
		a.status.SetRowCount(len(msg.Rows))
		a.status.SetMessage(a.notice)
		a.notice = ""
		return a, nil

	case messages.RowDeleted:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.notice = fmt.Sprintf("row %d deleted", msg.Number)
		return a, a.loadRows(a.query)

	case messages.ConfigReloaded:
		if msg.Err != nil {
			a.fail(fmt.Errorf("reloading config: %w", msg.Err))
			return a, nil
		}
		if a.spreadsheetID == "" {
			return a, a.openSheet()
		}
		return a, a.loadRows(a.query)

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil
	}

	return a, nil
}

// handleBrowseKey handles key presses while browsing rows.
func (a *App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(k, a.keymap.Query):
		a.mode = messages.ModeQuery
		a.input.SetValue(a.query)
		a.status.SetState(status.StateQuerying)
		return a, a.input.Focus()

	case keymap.Matches(k, a.keymap.Reload):
		if a.sheet == nil {
			return a, a.openSheet()
		}
		return a, a.loadRows(a.query)

	case keymap.Matches(k, a.keymap.Delete):
		row := a.table.Selected()
		if row == nil {
			return a, nil
		}
		a.pending = row
		a.mode = messages.ModeConfirmDelete
		a.status.SetState(status.StateConfirm)
		a.status.SetMessage(fmt.Sprintf("Delete row %d? (y/n)", row.Number))
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// handleQueryKey handles key presses while editing the query.
func (a *App) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Apply):
		a.mode = messages.ModeBrowse
		a.input.Blur()
		a.status.Clear()
		return a, a.loadRows(strings.TrimSpace(a.input.Value()))

	case keymap.Matches(k, a.keymap.Cancel):
		a.mode = messages.ModeBrowse
		a.input.Blur()
		a.input.SetValue(a.query)
		a.status.Clear()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleConfirmKey handles the answer to a delete confirmation.
func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := a.pending
	a.pending = nil
	a.mode = messages.ModeBrowse
	a.status.Clear()

	if row == nil || !keymap.Matches(msg.String(), a.keymap.Confirm) {
		return a, nil
	}
	return a, a.deleteRow(row)
}

// fail records an error and shows it in the status bar.
func (a *App) fail(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	a.status.SetMessage(err.Error())
}

// openSheet returns a command that resolves the sheet to browse.
func (a *App) openSheet() tea.Cmd {
	ctx := a.ctx
	svc := a.ports.Sheet
	settings := a.ports.Settings
	id, title := a.spreadsheetID, a.sheetTitle

	a.status.SetState(status.StateLoading)
	return func() tea.Msg {
		if id == "" && settings != nil {
			s, err := settings.Get()
			if err != nil {
				return messages.SheetOpened{Err: err}
			}
			id = s.Google.SpreadsheetID
		}
		if id == "" {
			return messages.SheetOpened{Err: domain.ErrSpreadsheetIDRequired}
		}

		var (
			sheet *domain.Sheet
			err   error
		)
		if title == "" {
			sheet, err = svc.AccessSpreadsheet(ctx, id)
		} else {
			sheet, err = svc.AccessSheet(ctx, id, title)
		}
		return messages.SheetOpened{Sheet: sheet, Err: err}
	}
}

// loadRows returns a command that fetches the rows matching query.
func (a *App) loadRows(query string) tea.Cmd {
	if a.sheet == nil {
		return nil
	}
	ctx := a.ctx
	svc := a.ports.Sheet
	sheet := a.sheet

	a.status.SetState(status.StateLoading)
	return func() tea.Msg {
		var (
			rows []*domain.Row
			err  error
		)
		if query == "" {
			rows, err = svc.GetRows(ctx, sheet)
		} else {
			rows, err = svc.GetQueriedRows(ctx, sheet, query)
		}
		return messages.RowsLoaded{Query: query, Rows: rows, Err: err}
	}
}

// deleteRow returns a command that deletes row.
func (a *App) deleteRow(row *domain.Row) tea.Cmd {
	ctx := a.ctx
	svc := a.ports.Sheet

	a.status.SetState(status.StateLoading)
	return func() tea.Msg {
		return messages.RowDeleted{Number: row.Number, Err: svc.DeleteRow(ctx, row)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("sheetrows"))
	if a.sheet != nil {
		b.WriteString(" ")
		b.WriteString(a.styles.Subtitle.Render(a.sheet.Title))
	}
	b.WriteString("\n")

	switch {
	case a.mode == messages.ModeQuery:
		b.WriteString(a.input.View())
	case a.query != "":
		b.WriteString(a.styles.Muted.Render("query: " + a.query))
	default:
		b.WriteString(a.styles.Muted.Render("all rows"))
	}
	b.WriteString("\n")

	b.WriteString(a.table.View())
	b.WriteString("\n")
	b.WriteString(a.status.View())

	return b.String()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Title, query and status lines.
	a.table.SetDimensions(width, height-3)
	a.input.SetWidth(width)
	a.status.SetWidth(width)
}

// Mode returns the current input mode.
func (a *App) Mode() messages.Mode {
	return a.mode
}

// Query returns the query the rows on display were fetched with.
func (a *App) Query() string {
	return a.query
}

// Sheet returns the sheet on display, or nil before it is opened.
func (a *App) Sheet() *domain.Sheet {
	return a.sheet
}

// Rows returns the rows on display.
func (a *App) Rows() []*domain.Row {
	return a.table.Rows()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}
