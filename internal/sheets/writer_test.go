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
	"time"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheets is an in-memory stand-in for the Sheets REST API.
type fakeSheets struct {
	existing   map[string][]string // spreadsheet id -> tab titles
	failStatus map[string]int      // path suffix -> status to return
	requests   []string
	written    map[string][][]any // range -> values
	formatted  int
	nextID     int64
	mu         sync.Mutex
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{
		existing:   map[string][]string{},
		failStatus: map[string]int{},
		written:    map[string][][]any{},
		nextID:     100,
	}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets")
	f.requests = append(f.requests, r.Method+" "+path)

	for suffix, status := range f.failStatus {
		if strings.HasSuffix(path, suffix) {
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"error": {"code": %d, "message": "injected"}}`, status)
			return
		}
	}

	switch {
	case r.Method == http.MethodPost && path == "":
		var req sheets.Spreadsheet
		_ = json.NewDecoder(r.Body).Decode(&req)
		resp := sheets.Spreadsheet{SpreadsheetId: "created", SpreadsheetUrl: "https://sheets.test/created"}
		for i, s := range req.Sheets {
			resp.Sheets = append(resp.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{SheetId: int64(i), Title: s.Properties.Title},
			})
		}
		_ = json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodGet:
		id := strings.TrimPrefix(path, "/")
		titles, ok := f.existing[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": {"code": 404, "message": "not found"}}`))
			return
		}
		resp := sheets.Spreadsheet{SpreadsheetId: id, SpreadsheetUrl: "https://sheets.test/" + id}
		for i, title := range titles {
			resp.Sheets = append(resp.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{SheetId: int64(i), Title: title},
			})
		}
		_ = json.NewEncoder(w).Encode(resp)

	case strings.HasSuffix(path, ":batchUpdate"):
		var req sheets.BatchUpdateSpreadsheetRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		resp := sheets.BatchUpdateSpreadsheetResponse{}
		for _, rq := range req.Requests {
			reply := &sheets.Response{}
			if rq.AddSheet != nil {
				reply.AddSheet = &sheets.AddSheetResponse{
					Properties: &sheets.SheetProperties{SheetId: f.nextID, Title: rq.AddSheet.Properties.Title},
				}
				f.nextID++
			} else {
				f.formatted++
			}
			resp.Replies = append(resp.Replies, reply)
		}
		_ = json.NewEncoder(w).Encode(resp)

	case strings.HasSuffix(path, ":clear"):
		_, _ = w.Write([]byte(`{}`))

	case r.Method == http.MethodPut:
		var req sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&req)
		rng := path[strings.Index(path, "/values/")+len("/values/"):]
		f.written[rng] = req.Values
		_, _ = w.Write([]byte(`{}`))

	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeSheets) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeSheets) exact(request string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == request {
			n++
		}
	}
	return n
}

func newTestWriter(t *testing.T, fake *fakeSheets, config Config) *Writer {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return newWriter(svc, config, nil)
}

func testConfig() Config {
	c := DefaultConfig()
	c.RetryAttempts = 2
	c.RetryDelay = time.Millisecond
	return c
}

func TestWriter_CreatesSpreadsheet(t *testing.T) {
	fake := newFakeSheets()
	w := newTestWriter(t, fake, testConfig())

	url, err := w.Write(context.Background(), testReport(model.FilterSelection{Category: "GAME"}))
	require.NoError(t, err)
	assert.Equal(t, "https://sheets.test/created", url)

	tabs := 1 + 6
	assert.Equal(t, 1, fake.exact("POST "))
	assert.Equal(t, 0, fake.count("GET "))
	assert.Equal(t, tabs, fake.count("PUT "))
	assert.Equal(t, tabs*3, fake.formatted)

	summary := fake.written["'Summary'!A1"]
	require.NotEmpty(t, summary)
	assert.Equal(t, "Google Play Store Apps Dashboard", summary[0][0])

	top := fake.written["'Top 10 Categories'!A1"]
	require.Len(t, top, 2)
	assert.Equal(t, []any{"Count", "GAME", 2.0}, top[1])
}

func TestWriter_ExistingSpreadsheetAddsMissingTabs(t *testing.T) {
	fake := newFakeSheets()
	fake.existing["sheet-1"] = []string{SummaryTab}

	config := testConfig()
	config.SpreadsheetID = "sheet-1"
	config.IncludeApps = true
	config.EnableFormatting = false
	w := newTestWriter(t, fake, config)

	url, err := w.Write(context.Background(), testReport(model.FilterSelection{}))
	require.NoError(t, err)
	assert.Equal(t, "https://sheets.test/sheet-1", url)

	assert.Equal(t, 1, fake.count("GET /sheet-1"))
	assert.Equal(t, 1, fake.count("POST /sheet-1:batchUpdate"))
	assert.Equal(t, 0, fake.formatted)
	assert.Equal(t, int64(100+7), fake.nextID, "six chart tabs and the apps tab are added")

	apps := fake.written["'Apps'!A1"]
	require.Len(t, apps, 4)
	assert.Equal(t, "App", apps[0][0])
}

func TestWriter_Batches(t *testing.T) {
	fake := newFakeSheets()
	config := testConfig()
	config.BatchSize = 2
	config.IncludeApps = true
	w := newTestWriter(t, fake, config)

	_, err := w.Write(context.Background(), testReport(model.FilterSelection{}))
	require.NoError(t, err)

	assert.Contains(t, fake.written, "'Apps'!A1")
	assert.Contains(t, fake.written, "'Apps'!A3")
	assert.NotContains(t, fake.written, "'Apps'!A5")
}

func TestWriter_MissingSpreadsheetIsPermanent(t *testing.T) {
	fake := newFakeSheets()
	config := testConfig()
	config.SpreadsheetID = "missing"
	config.RetryAttempts = 5
	w := newTestWriter(t, fake, config)

	_, err := w.Write(context.Background(), testReport(model.FilterSelection{}))
	require.Error(t, err)
	assert.ErrorContains(t, err, "unable to access spreadsheet missing")
	assert.Equal(t, 1, fake.count("GET /missing"))
}

func TestWriter_ServerErrorsAreRetried(t *testing.T) {
	fake := newFakeSheets()
	fake.failStatus[":clear"] = http.StatusServiceUnavailable
	w := newTestWriter(t, fake, testConfig())

	_, err := w.Write(context.Background(), testReport(model.FilterSelection{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, 2, fake.count("POST /created/values/"))
}

func TestWriter_FormattingFailureIsNotFatal(t *testing.T) {
	fake := newFakeSheets()
	w := newTestWriter(t, fake, testConfig())
	fake.existing["fmt"] = []string{SummaryTab, "Distribution of Ratings", "Top 10 Categories",
		"Free vs Paid Apps", "Reviews vs Rating by Category", "Price Category vs Rating", "Content Rating Distribution"}
	fake.failStatus[":batchUpdate"] = http.StatusBadRequest
	w.config.SpreadsheetID = "fmt"

	url, err := w.Write(context.Background(), testReport(model.FilterSelection{}))
	require.NoError(t, err)
	assert.Equal(t, "https://sheets.test/fmt", url)
	assert.Equal(t, 1, fake.count("POST /fmt:batchUpdate"))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	plain := fmt.Errorf("dial tcp: refused")
	assert.Equal(t, plain, classify(plain))
}
