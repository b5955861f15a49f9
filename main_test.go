package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cocodems/elections/config"
	"github.com/cocodems/elections/db"
	"github.com/cocodems/elections/handlers"
)

func TestServerRoutes(t *testing.T) {
	ctx := context.Background()
	bdb, err := db.Setup(ctx, config.Database{Type: "sqlite", SQLitePath: "file::memory:"})
	require.NoError(t, err)
	defer bdb.Close()
	require.NoError(t, db.CreateTables(ctx, bdb))

	key := []byte("routes")
	e := newServer(handlers.New(bdb, key), key, zap.NewNop())

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/elections", "", http.StatusOK},
		{http.MethodGet, "/api/people", "", http.StatusOK},
		{http.MethodGet, "/api/offices", "", http.StatusOK},
		{http.MethodGet, "/api/races/5", "", http.StatusNotFound},
		{http.MethodPost, "/api/elections", `{"electionName":"x","electionDate":"2025-04-01"}`, http.StatusUnauthorized},
		{http.MethodPut, "/api/individuals/1", `{"firstName":"a","lastName":"b"}`, http.StatusUnauthorized},
		{http.MethodGet, "/api/nowhere", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
}
