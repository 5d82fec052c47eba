package lark

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openAPI struct {
	mu      sync.Mutex
	code    int
	queries []string
	bodies  []map[string]string
}

func (o *openAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/open-apis/auth/v3/tenant_access_token/internal":
			_, _ = w.Write([]byte(`{"code":0,"msg":"ok","tenant_access_token":"t-test","expire":7200}`))
		case "/open-apis/im/v1/messages":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			o.mu.Lock()
			o.queries = append(o.queries, r.URL.Query().Get("receive_id_type"))
			o.bodies = append(o.bodies, body)
			code := o.code
			o.mu.Unlock()

			if code != 0 {
				_, _ = w.Write([]byte(`{"code":230002,"msg":"Bot/User can NOT be out of the chat."}`))
				return
			}
			_, _ = w.Write([]byte(`{"code":0,"msg":"success","data":{"message_id":"om_1"}}`))
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestClient(t *testing.T, api *openAPI, appID string) *Client {
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(appID, "secret", lark.WithOpenBaseUrl(srv.URL))
}

func TestSendText(t *testing.T) {
	api := &openAPI{}
	c := newTestClient(t, api, "cli_send")

	require.NoError(t, c.SendText(t.Context(), "oc_front_desk", "hola\nMensaje: necesito ayuda"))

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.bodies, 1)
	assert.Equal(t, "chat_id", api.queries[0])
	assert.Equal(t, "oc_front_desk", api.bodies[0]["receive_id"])
	assert.Equal(t, "text", api.bodies[0]["msg_type"])
	assert.JSONEq(t, `{"text":"hola\nMensaje: necesito ayuda"}`, api.bodies[0]["content"])
}

func TestSendText_APIError(t *testing.T) {
	api := &openAPI{code: 230002}
	c := newTestClient(t, api, "cli_error")

	err := c.SendText(t.Context(), "oc_front_desk", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bot/User can NOT be out of the chat.")
}
