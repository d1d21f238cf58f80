package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/tagwatch/internal/middleware"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/crucial707/tagwatch/internal/store"
	"github.com/go-chi/chi/v5"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.SystemClock{}, store.UUIDGenerator{}, 42)
}

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asRole stamps the request with an identity, standing in for WithIdentity.
func asRole(r *http.Request, role models.Role, actor string) *http.Request {
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), middleware.Identity{Role: role, Actor: actor}))
}

func missingAsset(t *testing.T, st *store.Store) models.Asset {
	t.Helper()
	assets := st.ListAssets(store.AssetFilter{Status: string(models.StatusMissing)})
	if len(assets) == 0 {
		t.Fatal("seed contains no missing asset")
	}
	return assets[0]
}
