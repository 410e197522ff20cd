package agmarknet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordPage(n int) []byte {
	records := make([]map[string]any, n)
	for i := range records {
		records[i] = map[string]any{"cmdt_name": fmt.Sprintf("Crop %d", i), "id": i}
	}
	page, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"records": []map[string]any{{"data": records}},
		},
	})
	return page
}

func newTestClient(url string) *Client {
	return NewClient(url, time.Millisecond, nil)
}

func TestFetchAllStopsAfterEmptyPage(t *testing.T) {
	pageSize := 5
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write(recordPage(pageSize))
		default:
			_, _ = w.Write(recordPage(0))
		}
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).FetchAll(context.Background(), "2026-02-01", "2026-02-17", 100, pageSize)
	require.NoError(t, err)
	assert.Len(t, records, pageSize)
	assert.Equal(t, 2, requests, "must stop after the empty page, no third request")
}

func TestFetchAllStopsOnShortPage(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write(recordPage(3))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).FetchAll(context.Background(), "2026-02-01", "2026-02-17", 100, 5)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 1, requests, "a short page signals the last page")
}

func TestFetchAllRespectsMaxPages(t *testing.T) {
	pageSize := 2
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write(recordPage(pageSize))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).FetchAll(context.Background(), "2026-02-01", "2026-02-17", 3, pageSize)
	require.NoError(t, err)
	assert.Len(t, records, 3*pageSize)
	assert.Equal(t, 3, requests)
}

func TestFetchAllAbortsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchAll(context.Background(), "2026-02-01", "2026-02-17", 100, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchAllSendsDateRange(t *testing.T) {
	var gotFrom, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from_date")
		gotTo = r.URL.Query().Get("to_date")
		_, _ = w.Write(recordPage(0))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchAll(context.Background(), "2026-02-01", "2026-02-17", 100, 5)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", gotFrom)
	assert.Equal(t, "2026-02-17", gotTo)
}

func TestExtractRecordsShapes(t *testing.T) {
	nested := recordPage(2)
	records, err := ExtractRecords(nested)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	flat := []byte(`[{"cmdt_name": "Onion"}]`)
	records, err = ExtractRecords(flat)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Onion", records[0].CmdtName)

	wrapped := []byte(`{"records": [{"cmdt_name": "Wheat"}]}`)
	records, err = ExtractRecords(wrapped)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Wheat", records[0].CmdtName)

	empty := []byte(`{"message": "no data"}`)
	records, err = ExtractRecords(empty)
	require.NoError(t, err)
	assert.Empty(t, records)
}
