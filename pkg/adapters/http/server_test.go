package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typeguard/pkg/adapters/memory"
	"github.com/aretw0/typeguard/pkg/schema"
)

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestValidate_Success(t *testing.T) {
	h := NewHandler(memory.NewStore())

	w := do(t, h, "POST", "/validate", "application/json", `{
		"schema": {"name": {"type": "string", "required": true}, "port": {"type": "number"},
			"owner": {"type": {"email": "string"}}},
		"value": {"name": "api", "port": "8080", "owner": {"email": "a@b", "extra": 1}, "debug": true},
		"coerce": true
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"value": {"name": "api", "port": 8080, "owner": {"email": "a@b"}, "debug": true},
		"changes": {"port": 8080, "owner": {"extra": null}}
	}`, w.Body.String())
}

func TestValidate_NoChanges(t *testing.T) {
	h := NewHandler(memory.NewStore())

	w := do(t, h, "POST", "/validate", "application/json", `{"schema": "number", "value": 3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value": 3}`, w.Body.String())
}

func TestValidate_Failures(t *testing.T) {
	h := NewHandler(memory.NewStore())

	w := do(t, h, "POST", "/validate", "application/json", `{
		"schema": {"zeta": {"type": "string", "required": true}, "alpha": {"type": "number"}},
		"value": {"alpha": "x"}
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Issues, 2)
	// Declaration order of the submitted document is kept.
	assert.Equal(t, "zeta", resp.Issues[0].Path)
	assert.Equal(t, "required_missing", resp.Issues[0].Kind.String())
	assert.Equal(t, "alpha", resp.Issues[1].Path)
}

func TestValidate_BadRequests(t *testing.T) {
	h := NewHandler(memory.NewStore())

	tests := []struct {
		desc string
		body string
	}{
		{"not json", `{`},
		{"missing schema", `{"value": 1}`},
		{"unknown type", `{"schema": "date", "value": 1}`},
		{"bad value", `{"schema": "number", "value": nope}`},
	}
	for _, tt := range tests {
		w := do(t, h, "POST", "/validate", "application/json", tt.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.desc)
		assert.Contains(t, w.Body.String(), `"error"`, tt.desc)
	}
}

func TestSchemas_Lifecycle(t *testing.T) {
	store := memory.NewStore()
	h := NewHandler(store)

	w := do(t, h, "PUT", "/schemas/user", "application/yaml", "name:\n  type: string\n  required: true\nage:\n  type: number\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, "PUT", "/schemas/flag", "application/json", `"boolean"`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, "GET", "/schemas/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"schemas": ["flag", "user"]}`, w.Body.String())

	w = do(t, h, "GET", "/schemas/user", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"name":{"type":"string","required":true},"age":{"type":"number","required":false}}`,
		strings.TrimSpace(w.Body.String()))

	w = do(t, h, "POST", "/schemas/user/validate?coerce=1", "application/json", `{"name": "ann", "age": "41"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"value": {"name": "ann", "age": 41}, "changes": {"age": 41}}`, w.Body.String())

	w = do(t, h, "POST", "/schemas/flag/validate?coerce=true&base=true", "application/json", `"maybe"`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"value": false, "changes": false}`, w.Body.String())

	w = do(t, h, "POST", "/schemas/user/validate", "application/json", `{"age": "41"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, "DELETE", "/schemas/user", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/schemas/user", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "POST", "/schemas/user/validate", "application/json", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchemas_Rejections(t *testing.T) {
	h := NewHandler(memory.NewStore(), WithMaxDepth(1))

	w := do(t, h, "PUT", "/schemas/bad", "application/json", `{"a": {"type": "int"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "PUT", "/schemas/deep", "application/json", `{"a": {"type": {"b": {"c": "string"}}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "PUT", "/schemas/.hidden", "application/json", `"string"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/schemas/x/validate?coerce=maybe", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type brokenStore struct{ *memory.Store }

func (brokenStore) List(ctx context.Context) ([]string, error) {
	return nil, errors.New("backend down")
}

func TestSchemas_StoreFailure(t *testing.T) {
	h := NewHandler(brokenStore{memory.NewStore()})

	w := do(t, h, "GET", "/schemas/", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "backend down")
}

func TestMetricsAndHealth(t *testing.T) {
	h := NewHandler(memory.NewStore())

	w := do(t, h, "GET", "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	do(t, h, "POST", "/validate", "application/json", `{"schema": "number", "value": "x"}`)

	w = do(t, h, "GET", "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `typeguard_validations_total{mode="scalar",outcome="failed"} 1`)
	assert.Contains(t, w.Body.String(), `typeguard_field_errors_total{kind="invalid_type"} 1`)
}

func TestCORS(t *testing.T) {
	h := NewHandler(memory.NewStore())

	w := do(t, h, "OPTIONS", "/validate", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_DefinitionsReturnedAsStored(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), "n", schema.Number()))

	w := do(t, NewHandler(store), "GET", "/schemas/n", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"number"`, w.Body.String())
}
