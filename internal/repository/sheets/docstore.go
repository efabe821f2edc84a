// Package sheets keeps the payroll relations in a Google Sheets spreadsheet,
// one worksheet per relation with the column header in the first row.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
)

type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New connects to the spreadsheet using the given client options.
func New(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Store, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// NewFromCredentialsFile connects with a service account key file.
func NewFromCredentialsFile(ctx context.Context, spreadsheetID, credentialsFile string) (*Store, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return New(ctx, spreadsheetID, option.WithCredentials(creds))
}

func (s *Store) Read(ctx context.Context, relation string) (docstore.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(relation)).Context(ctx).Do()
	if err != nil {
		// An unknown worksheet is reported as an unparsable range.
		if isBadRequest(err) {
			exists, listErr := s.hasSheet(ctx, relation)
			if listErr == nil && !exists {
				return docstore.Table{}, nil
			}
		}
		return docstore.Table{}, docstore.Unavailable("read", relation, err)
	}
	return docstore.FromValues(toStrings(resp.Values)), nil
}

// Write overwrites the worksheet in a single values update. Cells left over
// from a larger previous content are blanked in the same request.
func (s *Store) Write(ctx context.Context, relation string, table docstore.Table) error {
	exists, err := s.hasSheet(ctx, relation)
	if err != nil {
		return docstore.Unavailable("write", relation, err)
	}

	var previous [][]interface{}
	if exists {
		resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(relation)).Context(ctx).Do()
		if err != nil {
			return docstore.Unavailable("write", relation, err)
		}
		previous = resp.Values
	} else {
		_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: relation},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return docstore.Unavailable("write", relation, err)
		}
	}

	values := padValues(table.Values(), previous)
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheetRange(relation), &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return docstore.Unavailable("write", relation, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.sheetTitles(ctx)
	if err != nil {
		return nil, docstore.Unavailable("list", "", err)
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) sheetTitles(ctx context.Context) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			names = append(names, sh.Properties.Title)
		}
	}
	return names, nil
}

func (s *Store) hasSheet(ctx context.Context, relation string) (bool, error) {
	names, err := s.sheetTitles(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, relation), nil
}

func sheetRange(relation string) string {
	return "'" + relation + "'"
}

func isBadRequest(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, line := range values {
		out[i] = make([]string, len(line))
		for j, cell := range line {
			out[i][j] = fmt.Sprint(cell)
		}
	}
	return out
}

// padValues widens and lengthens next so it covers every cell of previous.
func padValues(next [][]string, previous [][]interface{}) [][]interface{} {
	rows, cols := len(next), 0
	for _, line := range next {
		cols = max(cols, len(line))
	}
	rows = max(rows, len(previous))
	for _, line := range previous {
		cols = max(cols, len(line))
	}

	out := make([][]interface{}, rows)
	for i := range out {
		out[i] = make([]interface{}, cols)
		for j := range out[i] {
			out[i][j] = ""
		}
		if i < len(next) {
			for j, cell := range next[i] {
				out[i][j] = cell
			}
		}
	}
	return out
}
