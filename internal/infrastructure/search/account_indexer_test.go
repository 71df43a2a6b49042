package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func newFakeES(t *testing.T, status int, reply string) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(b, &body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: body})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &calls
}

func TestIndex_PutsAccountDocument(t *testing.T) {
	es, calls := newFakeES(t, http.StatusCreated, `{"result":"created"}`)
	idx := NewAccountIndexer(es, "accounts", helpers.NewNopLogger())

	a := entity.NewAccount("admin@todo.list")
	a.ID = "acc-1"
	a.Roles = []string{entity.RoleAdmin}
	a.BirthDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, idx.Index(context.Background(), a))

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, http.MethodPut, c.method)
	assert.True(t, strings.HasSuffix(c.path, "/accounts/_doc/acc-1"), c.path)
	assert.Equal(t, "admin@todo.list", c.body["email"])
	assert.Equal(t, "1970-01-01", c.body["birth_date"])
	assert.Equal(t, []any{entity.RoleAdmin, entity.RoleUser}, c.body["roles"])
	assert.NotContains(t, c.body, "password_hash")
}

func TestIndex_ErrorStatus(t *testing.T) {
	es, _ := newFakeES(t, http.StatusInternalServerError, `{"error":"boom"}`)
	idx := NewAccountIndexer(es, "accounts", helpers.NewNopLogger())

	a := entity.NewAccount("user@todo.list")
	a.ID = "acc-2"

	assert.Error(t, idx.Index(context.Background(), a))
}

func TestSearch_ReturnsSources(t *testing.T) {
	es, calls := newFakeES(t, http.StatusOK, `{"hits":{"hits":[{"_id":"acc-1","_source":{"email":"admin@todo.list"}}]}}`)
	idx := NewAccountIndexer(es, "accounts", helpers.NewNopLogger())

	hits, err := idx.Search(context.Background(), "admin", 0)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "admin@todo.list", hits[0]["email"])
	require.Len(t, *calls, 1)
	assert.EqualValues(t, 10, (*calls)[0].body["size"])
}
