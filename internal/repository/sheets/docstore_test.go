package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
)

const testSpreadsheetID = "sheet-id"

// fakeSheets serves the handful of Sheets API calls the store makes.
type fakeSheets struct {
	mu     sync.Mutex
	sheets map[string][][]string
	fail   bool
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		http.Error(w, `{"error":{"code":500,"message":"backend error"}}`, http.StatusInternalServerError)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/"+testSpreadsheetID)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		type props struct {
			Title string `json:"title"`
		}
		type sheet struct {
			Properties props `json:"properties"`
		}
		var out struct {
			Sheets []sheet `json:"sheets"`
		}
		for title := range f.sheets {
			out.Sheets = append(out.Sheets, sheet{Properties: props{Title: title}})
		}
		json.NewEncoder(w).Encode(out)

	case rest == ":batchUpdate" && r.Method == http.MethodPost:
		var req struct {
			Requests []struct {
				AddSheet struct {
					Properties struct {
						Title string `json:"title"`
					} `json:"properties"`
				} `json:"addSheet"`
			} `json:"requests"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		for _, rq := range req.Requests {
			f.sheets[rq.AddSheet.Properties.Title] = nil
		}
		fmt.Fprintf(w, `{"spreadsheetId":%q}`, testSpreadsheetID)

	case strings.HasPrefix(rest, "/values/"):
		title := strings.Trim(strings.TrimPrefix(rest, "/values/"), "'")
		values, ok := f.sheets[title]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"code":400,"message":"Unable to parse range"}}`)
			return
		}
		if r.Method == http.MethodPut {
			var body struct {
				Values [][]string `json:"values"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.sheets[title] = body.Values
			fmt.Fprintf(w, `{"spreadsheetId":%q}`, testSpreadsheetID)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"range":          r.URL.Path,
			"majorDimension": "ROWS",
			"values":         trimTrailingBlank(values),
		})

	default:
		http.NotFound(w, r)
	}
}

// trimTrailingBlank mimics the API omitting empty trailing rows.
func trimTrailingBlank(values [][]string) [][]string {
	end := len(values)
	for end > 0 && strings.Join(values[end-1], "") == "" {
		end--
	}
	return values[:end]
}

func newTestStore(t *testing.T) (*Store, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{sheets: map[string][][]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := New(context.Background(), testSpreadsheetID,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return store, fake
}

func TestStore_ReadMissingSheetIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	table, err := store.Read(context.Background(), docstore.RelationRecords)
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
}

func TestStore_WriteThenRead(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	table := docstore.NewTable("Name", "Status")
	table.Append("E001", "Active")
	table.Append("E002", "Inactive")
	require.NoError(t, store.Write(ctx, docstore.RelationEmployees, table))

	got, err := store.Read(ctx, docstore.RelationEmployees)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Status"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "E002", got.Rows[1]["Name"])

	// Shrinking blanks out the old tail.
	smaller := docstore.NewTable("Name", "Status")
	smaller.Append("E001", "Active")
	require.NoError(t, store.Write(ctx, docstore.RelationEmployees, smaller))

	assert.Len(t, fake.sheets[docstore.RelationEmployees], 3)
	got, err = store.Read(ctx, docstore.RelationEmployees)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "E001", got.Rows[0]["Name"])

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{docstore.RelationEmployees}, names)
}

func TestStore_BackendFailure(t *testing.T) {
	store, fake := newTestStore(t)
	fake.fail = true

	_, err := store.Read(context.Background(), docstore.RelationSettings)
	assert.ErrorIs(t, err, docstore.ErrStoreUnavailable)

	err = store.Write(context.Background(), docstore.RelationSettings, docstore.NewTable("Key", "Value"))
	assert.ErrorIs(t, err, docstore.ErrStoreUnavailable)
}
