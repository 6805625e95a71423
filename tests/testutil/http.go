package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Request describes one JSON call against a handler
type Request struct {
	Method  string
	Path    string
	Token   string
	Body    interface{}
	Headers map[string]string
}

// Response is a recorded response with its decoded JSON envelope
type Response struct {
	Code     int
	Recorder *httptest.ResponseRecorder
	Body     map[string]interface{}
}

// Do sends req to h and decodes a JSON response body
func Do(t *testing.T, h http.Handler, req Request) *Response {
	t.Helper()

	var body bytes.Buffer
	if req.Body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(req.Body), "Failed to marshal request body")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	r := httptest.NewRequest(method, req.Path, &body)
	if req.Body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	resp := &Response{Code: w.Code, Recorder: w}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Body), "Failed to decode response: %s", w.Body.String())
	}
	return resp
}

// Data returns the envelope's data object
func (r *Response) Data(t *testing.T) map[string]interface{} {
	t.Helper()
	data, ok := r.Body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", r.Body)
	return data
}

// List returns the envelope's data array
func (r *Response) List(t *testing.T) []interface{} {
	t.Helper()
	data, ok := r.Body["data"].([]interface{})
	require.True(t, ok, "response has no data array: %v", r.Body)
	return data
}

// ErrorCode returns the envelope's error code, or "" on success
func (r *Response) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}
