package httpserver

import (
	"net/http"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmile/leafdrop/internal/repo"
)

func TestSearchHandler_NoBackendConfigured(t *testing.T) {
	env := newTestEnv(t)
	catalog := &CatalogHandler{Repo: repo.New(env.DB), Index: "products"}

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/search?q=kush", nil)
	err := catalog.Search(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}

func TestSearchHandler_BackendUnreachable(t *testing.T) {
	env := newTestEnv(t)
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{"http://127.0.0.1:1"}})
	require.NoError(t, err)
	catalog := &CatalogHandler{Repo: repo.New(env.DB), ES: esClient, Index: "products"}

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/search?q=kush", nil)
	err = catalog.Search(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}

func TestSearchHandler_MissingQuery(t *testing.T) {
	env := newTestEnv(t)
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{"http://127.0.0.1:1"}})
	require.NoError(t, err)
	catalog := &CatalogHandler{Repo: repo.New(env.DB), ES: esClient, Index: "products"}

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/search", nil)
	err = catalog.Search(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
