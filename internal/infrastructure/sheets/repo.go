package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"reviewrota/internal/domain"
	"reviewrota/internal/domain/roster"
	"reviewrota/internal/domain/rotation"
)

const (
	configTab     = "Config"
	developersTab = "Developers"
	teamsTab      = "Teams"

	experiencedHeader = "Experienced Developers"
)

// Repository implements rotation.Repository on top of one spreadsheet.
// The spreadsheet is the durable store: fixed roster columns on the left,
// dated rotation columns inserted newest-first to their right.
type Repository struct {
	client        *Client
	spreadsheetID string
	defaults      rotation.Settings
	log           *zap.Logger
	now           func() time.Time

	sheetIDs map[string]int64
}

func NewRepository(client *Client, spreadsheetID string, defaults rotation.Settings, log *zap.Logger) *Repository {
	return &Repository{
		client:        client,
		spreadsheetID: spreadsheetID,
		defaults:      defaults,
		log:           log,
		now:           time.Now,
	}
}

// LoadSettings reads the Config tab: the default reviewer number from B2
// and experienced developers from column A. A missing or partial tab
// falls back to the process defaults rather than failing the run.
func (r *Repository) LoadSettings(ctx context.Context) (rotation.Settings, error) {
	rows, err := r.readTab(ctx, configTab)
	if err != nil {
		r.log.Warn("config tab unavailable, using process defaults", zap.Error(err))
		return r.defaults, nil
	}

	settings := r.defaults

	if len(rows) > 1 && len(rows[1]) > 1 && strings.TrimSpace(rows[1][1]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(rows[1][1]))
		if err != nil {
			r.log.Warn("unreadable default reviewer number in config tab",
				zap.String("value", rows[1][1]))
		} else {
			settings.DefaultReviewerNumber = n
		}
	}

	var experienced []string
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, 0))
		if name != "" && name != experiencedHeader {
			experienced = append(experienced, name)
		}
	}
	if len(experienced) > 0 {
		settings.ExperiencedDevelopers = experienced
	}

	return settings, nil
}

func (r *Repository) LoadDevelopers(ctx context.Context) ([]roster.Developer, error) {
	rows, err := r.readTab(ctx, developersTab)
	if err != nil {
		return nil, err
	}
	return parseDevelopers(rows)
}

func (r *Repository) LoadTeams(ctx context.Context) ([]roster.Team, error) {
	rows, err := r.readTab(ctx, teamsTab)
	if err != nil {
		return nil, err
	}
	return parseTeams(rows)
}

func (r *Repository) AssignmentHistory(ctx context.Context, mode rotation.Mode) (map[string]int, error) {
	rows, err := r.readTab(ctx, tabFor(mode))
	if err != nil {
		return nil, err
	}
	return parseHistory(rows), nil
}

func (r *Repository) LastRotationHeader(ctx context.Context, mode rotation.Mode) (string, error) {
	rows, err := r.readTab(ctx, tabFor(mode))
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || len(rows[0]) <= fixedColumns {
		return "", nil
	}
	return rows[0][fixedColumns], nil
}

// SaveAssignments writes one rotation as a column: a scheduled run inserts
// a fresh dated column after the fixed ones, a manual run overwrites the
// newest column and marks its header with the manual-run date. Styling of
// the new and previous headers is best effort, as API write quota may not
// allow it.
func (r *Repository) SaveAssignments(ctx context.Context, mode rotation.Mode, assignments []rotation.Assignment, manual bool) error {
	tab := tabFor(mode)
	rows, err := r.readTab(ctx, tab)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &domain.DomainError{
			Code:    domain.ErrorCodeSheetFormat,
			Message: tab + " tab is empty",
		}
	}
	nameCol, err := headerIndex(rows[0], nameHeaderFor(mode))
	if err != nil {
		return err
	}

	byEntity := make(map[string]string, len(assignments))
	for _, a := range assignments {
		byEntity[a.EntityID] = strings.Join(a.Reviewers, ", ")
	}

	today := r.now().Format(rotation.DateLayout)
	hadRotation := len(rows[0]) > fixedColumns

	header := today
	if manual && hadRotation {
		header = scheduledDatePart(rows[0][fixedColumns]) + rotation.ManualRunSeparator + " " + today
	}

	column := make([]string, 0, len(rows))
	column = append(column, header)
	for _, row := range rows[1:] {
		column = append(column, byEntity[cellAt(row, nameCol)])
	}

	insert := !(manual && hadRotation)
	if insert {
		if err := r.insertColumn(ctx, tab); err != nil {
			return err
		}
	}
	if err := r.writeColumn(ctx, tab, fixedColumns+1, column); err != nil {
		return err
	}

	if insert && hadRotation {
		if err := r.styleColumns(ctx, tab, len(column)); err != nil {
			r.log.Warn("column styling skipped", zap.Error(err))
		}
	}

	return nil
}

// RecordFailure makes a failed run visible in the sheet itself, the same
// place its operators look for results.
func (r *Repository) RecordFailure(ctx context.Context, mode rotation.Mode, cause error) error {
	tab := tabFor(mode)
	if err := r.insertColumn(ctx, tab); err != nil {
		return err
	}
	column := []string{
		"Exception " + r.now().Format(rotation.DateLayout),
		cause.Error(),
	}
	return r.writeColumn(ctx, tab, fixedColumns+1, column)
}

func (r *Repository) readTab(ctx context.Context, tab string) ([][]string, error) {
	var resp *sheets.ValueRange
	err := r.client.do(ctx, "values.get "+tab, func(ctx context.Context) error {
		var err error
		resp, err = r.client.svc.Spreadsheets.Values.Get(r.spreadsheetID, tab).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tab, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *Repository) insertColumn(ctx context.Context, tab string) error {
	sheetID, err := r.sheetID(ctx, tab)
	if err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: fixedColumns,
					EndIndex:   fixedColumns + 1,
				},
			},
		}},
	}
	return r.client.do(ctx, "insert column "+tab, func(ctx context.Context) error {
		_, err := r.client.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do()
		return err
	})
}

func (r *Repository) writeColumn(ctx context.Context, tab string, col int, values []string) error {
	letter := columnLetter(col)
	cells := make([][]any, 0, len(values))
	for _, v := range values {
		cells = append(cells, []any{v})
	}
	vr := &sheets.ValueRange{Values: cells}
	rng := fmt.Sprintf("%s!%s1:%s%d", tab, letter, letter, len(values))
	return r.client.do(ctx, "write column "+tab, func(ctx context.Context) error {
		_, err := r.client.svc.Spreadsheets.Values.
			Update(r.spreadsheetID, rng, vr).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		return err
	})
}

// styleColumns highlights the freshly inserted header and greys out the
// previous rotation column so the active one stands out.
func (r *Repository) styleColumns(ctx context.Context, tab string, numRows int) error {
	sheetID, err := r.sheetID(ctx, tab)
	if err != nil {
		return err
	}

	newHeader := &sheets.CellFormat{
		BackgroundColor: &sheets.Color{Red: 0.85, Green: 0.92, Blue: 1},
		TextFormat:      &sheets.TextFormat{Bold: true},
	}
	oldText := &sheets.CellFormat{
		BackgroundColor: &sheets.Color{Red: 1, Green: 1, Blue: 1},
		TextFormat: &sheets.TextFormat{
			Bold:            false,
			ForegroundColor: &sheets.Color{Red: 0.6, Green: 0.6, Blue: 0.6},
		},
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: fixedColumns,
						EndColumnIndex:   fixedColumns + 1,
					},
					Cell:   &sheets.CellData{UserEnteredFormat: newHeader},
					Fields: "userEnteredFormat(backgroundColor,textFormat)",
				},
			},
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      int64(numRows),
						StartColumnIndex: fixedColumns + 1,
						EndColumnIndex:   fixedColumns + 2,
					},
					Cell:   &sheets.CellData{UserEnteredFormat: oldText},
					Fields: "userEnteredFormat(backgroundColor,textFormat)",
				},
			},
		},
	}
	return r.client.do(ctx, "style columns "+tab, func(ctx context.Context) error {
		_, err := r.client.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do()
		return err
	})
}

func (r *Repository) sheetID(ctx context.Context, tab string) (int64, error) {
	if id, ok := r.sheetIDs[tab]; ok {
		return id, nil
	}

	var meta *sheets.Spreadsheet
	err := r.client.do(ctx, "spreadsheet metadata", func(ctx context.Context) error {
		var err error
		meta, err = r.client.svc.Spreadsheets.Get(r.spreadsheetID).
			Fields("sheets.properties").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return 0, err
	}

	r.sheetIDs = make(map[string]int64, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			r.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	id, ok := r.sheetIDs[tab]
	if !ok {
		return 0, &domain.DomainError{
			Code:    domain.ErrorCodeNotFound,
			Entity:  tab,
			Message: "tab not found in spreadsheet",
		}
	}
	return id, nil
}

// scheduledDatePart strips a previous manual-run suffix so repeated manual
// runs keep the original scheduled date.
func scheduledDatePart(header string) string {
	if i := strings.Index(header, rotation.ManualRunSeparator); i >= 0 {
		return strings.TrimSpace(header[:i])
	}
	return strings.TrimSpace(header)
}

func tabFor(mode rotation.Mode) string {
	if mode == rotation.ModeTeams {
		return teamsTab
	}
	return developersTab
}

func nameHeaderFor(mode rotation.Mode) string {
	if mode == rotation.ModeTeams {
		return headerTeam
	}
	return headerDeveloper
}
