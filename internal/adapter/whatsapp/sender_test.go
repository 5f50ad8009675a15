package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody outboundMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("mi-token", "123456", server.URL)
	err := client.Send(context.Background(), "5411987654", "¡Hola!")

	require.NoError(t, err)
	assert.Equal(t, "/123456/messages", gotPath)
	assert.Equal(t, "Bearer mi-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "5411987654", gotBody.To)
	assert.Equal(t, "¡Hola!", gotBody.Text.Body)
}

func TestSendReportsAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "token vencido"}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("viejo", "123456", server.URL)
	err := client.Send(context.Background(), "5411987654", "hola")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "token vencido")
}
