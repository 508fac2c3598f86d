package auth

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("stamps current unix time", func(t *testing.T) {
		before := time.Now().Unix()
		req := NewRequest("key", "/api/v1/crypto/trading/accounts/", http.MethodGet, "")
		after := time.Now().Unix()

		assert.GreaterOrEqual(t, req.Timestamp, before)
		assert.LessOrEqual(t, req.Timestamp, after)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		req := NewRequest("key", "/path/", http.MethodPost, `{"a":1}`)

		assert.Equal(t, "key", req.APIKey)
		assert.Equal(t, "/path/", req.Path)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, `{"a":1}`, req.Body)
	})
}

func TestRequestValidate(t *testing.T) {
	valid := Request{
		APIKey:    "key",
		Path:      "/api/v1/crypto/trading/orders/",
		Method:    http.MethodPost,
		Body:      `{"symbol":"BTC-USD"}`,
		Timestamp: 1700000000,
	}

	t.Run("accepts complete POST request", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("accepts GET request without body", func(t *testing.T) {
		req := valid
		req.Method = http.MethodGet
		req.Body = ""
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects POST request without body", func(t *testing.T) {
		req := valid
		req.Body = ""

		err := req.Validate()

		require.Error(t, err)
		var invalidErr *InvalidRequestError
		assert.ErrorAs(t, err, &invalidErr)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		cases := []struct {
			field  string
			mutate func(*Request)
		}{
			{"api key", func(r *Request) { r.APIKey = "" }},
			{"path", func(r *Request) { r.Path = "" }},
			{"method", func(r *Request) { r.Method = "" }},
		}

		for _, tc := range cases {
			t.Run(tc.field, func(t *testing.T) {
				req := valid
				tc.mutate(&req)

				err := req.Validate()

				require.Error(t, err)
				var invalidErr *InvalidRequestError
				assert.ErrorAs(t, err, &invalidErr)
				assert.Contains(t, err.Error(), tc.field)
			})
		}
	})
}

func TestRequestPayload(t *testing.T) {
	t.Run("concatenates fields with no delimiters", func(t *testing.T) {
		req := Request{
			APIKey:    "api-key-123",
			Path:      "/api/v1/crypto/trading/orders/?symbol=BTC-USD",
			Method:    http.MethodPost,
			Body:      `{"side":"buy"}`,
			Timestamp: 1700000000,
		}

		want := "api-key-1231700000000/api/v1/crypto/trading/orders/?symbol=BTC-USDPOST" + `{"side":"buy"}`
		assert.Equal(t, []byte(want), req.Payload())
	})

	t.Run("empty body contributes nothing", func(t *testing.T) {
		req := Request{
			APIKey:    "k",
			Path:      "/p/",
			Method:    http.MethodGet,
			Timestamp: 42,
		}

		assert.Equal(t, []byte("k42/p/GET"), req.Payload())
	})

	t.Run("timestamp is rendered as decimal string", func(t *testing.T) {
		req := Request{APIKey: "k", Path: "/p/", Method: http.MethodGet, Timestamp: 1699999999}

		assert.Contains(t, string(req.Payload()), fmt.Sprintf("%d", int64(1699999999)))
	})
}

func TestSignedRequestHeaders(t *testing.T) {
	signed := SignedRequest{
		Request: Request{
			APIKey:    "api-key",
			Path:      "/api/v1/crypto/trading/holdings/",
			Method:    http.MethodGet,
			Timestamp: 1700000123,
		},
		Signature: "c2lnbmF0dXJl",
	}

	headers := signed.Headers()

	assert.Len(t, headers, 4)
	assert.Equal(t, "api-key", headers["x-api-key"])
	assert.Equal(t, "1700000123", headers["x-timestamp"])
	assert.Equal(t, "c2lnbmF0dXJl", headers["x-signature"])
	assert.Equal(t, "application/json; charset=utf-8", headers["Content-Type"])
}
