package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeDst struct {
	A string `json:"a"`
	B int    `json:"b"`
}

func newReqWithBody(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSON(t *testing.T) {
	var dst decodeDst
	require.NoError(t, DecodeJSON(newReqWithBody(`{"a":"x","b":1}`), &dst))
	assert.Equal(t, decodeDst{A: "x", B: 1}, dst)

	for name, body := range map[string]string{
		"unknown field": `{"a":"x","c":1}`,
		"broken":        `{"a":"x",`,
		"two values":    `{}{}`,
		"empty":         ``,
	} {
		t.Run(name, func(t *testing.T) {
			var dst decodeDst
			assert.ErrorIs(t, DecodeJSON(newReqWithBody(body), &dst), ErrInvalidJSON)
		})
	}
}

func TestError_WritesEnvelopeWithRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.Header().Set("X-Request-Id", "req-1")

	Error(rr, http.StatusBadRequest, "validation_failed", "invalid input", map[string]string{"email": "required"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Error.Code)
	assert.Equal(t, "req-1", body.Error.RequestID)
	assert.Equal(t, "required", body.Error.Meta["email"])
}

func TestOKAndCreated(t *testing.T) {
	rr := httptest.NewRecorder()
	OK(rr, map[string]int{"x": 1})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"x":1}}`, rr.Body.String())

	rr = httptest.NewRecorder()
	Created(rr, map[string]string{"y": "z"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"data":{"y":"z"}}`, rr.Body.String())
}
