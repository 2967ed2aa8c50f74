package inspect_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/inspect"
	"github.com/km-arc/go-container/framework/routing"
)

type clock struct{}

func newFixture(t *testing.T) (*container.Container, http.Handler) {
	t.Helper()
	t.Cleanup(container.ResetDefault)
	types := container.NewTypeRegistry()
	types.Register("app.Clock", func(...any) (any, error) { return &clock{}, nil })

	c := container.New(container.WithTypes(types))
	c.MustSet("request", container.Callable(func(...any) (any, error) { return "req", nil }), false).
		MustSetShared("config", container.Instance(map[string]string{"env": "testing"})).
		MustSetShared("clock", container.Type("app.Clock")).
		MustSetShared("cache", container.Factory(func(*container.Container, ...any) (any, error) {
			return "cache", nil
		})).
		Tag("infra", "cache", "config")

	r := routing.New(zerolog.Nop())
	inspect.NewHandler(c).Routes(r, "/_container")
	return c, r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decodeRegistry(t *testing.T, rr *httptest.ResponseRecorder) inspect.Registry {
	t.Helper()
	var body struct {
		Data inspect.Registry `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Data
}

func names(services []inspect.Service) []string {
	out := make([]string, 0, len(services))
	for _, s := range services {
		out = append(out, s.Name)
	}
	return out
}

func TestIndex_ListsInRegistrationOrder(t *testing.T) {
	c, h := newFixture(t)

	rr := get(t, h, "/_container/services")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	reg := decodeRegistry(t, rr)
	assert.Equal(t, c.ID(), reg.Container)
	assert.Equal(t, []string{"request", "config", "clock", "cache"}, names(reg.Services))

	assert.Equal(t, inspect.Service{Name: "request", Kind: "callable"}, reg.Services[0])
	assert.Equal(t, []string{"infra"}, reg.Services[1].Tags)
	assert.Equal(t, inspect.Service{Name: "clock", Kind: "type", Type: "app.Clock", Shared: true}, reg.Services[2])
}

func TestIndex_ReportsResolvedWithoutResolving(t *testing.T) {
	c, h := newFixture(t)

	_, err := c.Get("cache")
	require.NoError(t, err)
	_, err = c.Get("request")
	require.NoError(t, err)

	reg := decodeRegistry(t, get(t, h, "/_container/services"))
	resolved := map[string]bool{}
	for _, s := range reg.Services {
		resolved[s.Name] = s.Resolved
	}
	assert.Equal(t, map[string]bool{"request": false, "config": false, "clock": false, "cache": true}, resolved)

	assert.False(t, c.Resolved("config"), "listing must not resolve services")
	assert.False(t, c.Resolved("clock"))
}

func TestIndex_SharedFilter(t *testing.T) {
	_, h := newFixture(t)

	shared := decodeRegistry(t, get(t, h, "/_container/services?shared=true"))
	assert.Equal(t, []string{"config", "clock", "cache"}, names(shared.Services))

	transient := decodeRegistry(t, get(t, h, "/_container/services?shared=false"))
	assert.Equal(t, []string{"request"}, names(transient.Services))
}

func TestIndex_TagFilter(t *testing.T) {
	_, h := newFixture(t)

	infra := decodeRegistry(t, get(t, h, "/_container/services?tag=infra"))
	assert.Equal(t, []string{"config", "cache"}, names(infra.Services))

	sharedInfra := decodeRegistry(t, get(t, h, "/_container/services?tag=infra&shared=true"))
	assert.Equal(t, []string{"config", "cache"}, names(sharedInfra.Services))

	none := decodeRegistry(t, get(t, h, "/_container/services?tag=unknown"))
	assert.Empty(t, none.Services)
}

func TestRoutes_NoStore(t *testing.T) {
	_, h := newFixture(t)

	assert.Equal(t, "no-store", get(t, h, "/_container/services").Header().Get("Cache-Control"))
	assert.Equal(t, "no-store", get(t, h, "/_container/services/ghost").Header().Get("Cache-Control"))
}

func TestRoutes_ReadOnly(t *testing.T) {
	_, h := newFixture(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/_container/services/config", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestIndex_InvalidSharedFilter(t *testing.T) {
	_, h := newFixture(t)

	rr := get(t, h, "/_container/services?shared=maybe")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Contains(t, body.Errors, "shared")
}

func TestIndex_EmptyContainer(t *testing.T) {
	t.Cleanup(container.ResetDefault)
	c := container.New()
	r := routing.New(zerolog.Nop())
	inspect.NewHandler(c).Routes(r, "/_container")

	rr := get(t, r, "/_container/services")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"container":"`+c.ID()+`","services":[]}}`, rr.Body.String())
}

func TestShow_Found(t *testing.T) {
	_, h := newFixture(t)

	rr := get(t, h, "/_container/services/config")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"data":{"name":"config","kind":"instance","tags":["infra"],"shared":true,"resolved":false}}`,
		rr.Body.String())
}

func TestShow_NotFound(t *testing.T) {
	_, h := newFixture(t)

	rr := get(t, h, "/_container/services/ghost")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Service \"ghost\" is not found"}`, rr.Body.String())
}

func TestShow_RemovedService(t *testing.T) {
	c, h := newFixture(t)
	c.Remove("config")

	assert.Equal(t, http.StatusNotFound, get(t, h, "/_container/services/config").Code)
}
