package controller

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parrillasur/reservabot/pkg/dedup"
	"github.com/parrillasur/reservabot/pkg/logger"
)

type fakeHandler struct {
	mu       sync.Mutex
	calls    []string
	identity string
	reply    string
}

func (f *fakeHandler) HandleMessage(_ context.Context, identity, text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = identity
	f.calls = append(f.calls, text)
	return f.reply
}

type fakeSender struct {
	mu   sync.Mutex
	to   string
	text string
	sent int
}

func (f *fakeSender) Send(_ context.Context, to, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.to = to
	f.text = text
	f.sent++
	return nil
}

func newWebhookTestRouter(handler *fakeHandler, sender *fakeSender) *gin.Engine {
	gin.SetMode(gin.TestMode)

	c := NewWebhookController(handler, sender, dedup.NewMemoryWindow(10), "token-secreto", logger.NewLogger())
	c.inline = true

	router := gin.New()
	router.GET("/webhook", c.Verify)
	router.POST("/webhook", c.Receive)
	return router
}

func notification(messageID, from, body string) string {
	return fmt.Sprintf(`{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry-1",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"messages": [{"from": %q, "id": %q, "type": "text", "text": {"body": %q}}]
				}
			}]
		}]
	}`, from, messageID, body)
}

func TestVerifyRespondsChallenge(t *testing.T) {
	router := newWebhookTestRouter(&fakeHandler{}, &fakeSender{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=token-secreto&hub.challenge=12345", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())
}

func TestVerifyRejectsWrongToken(t *testing.T) {
	router := newWebhookTestRouter(&fakeHandler{}, &fakeSender{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=otro&hub.challenge=12345", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceiveProcessesAndReplies(t *testing.T) {
	handler := &fakeHandler{reply: "¡Hola! ¿En qué te ayudo?"}
	sender := &fakeSender{}
	router := newWebhookTestRouter(handler, sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(notification("wamid.1", "5411987654", "hola")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, handler.calls, 1)
	assert.Equal(t, "hola", handler.calls[0])
	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, "¡Hola! ¿En qué te ayudo?", sender.text)
}

func TestReceiveNormalizesArgentineMobileNumbers(t *testing.T) {
	handler := &fakeHandler{reply: "ok"}
	sender := &fakeSender{}
	router := newWebhookTestRouter(handler, sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(notification("wamid.1", "5491122334455", "hola")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, "541122334455", handler.identity)
	assert.Equal(t, "541122334455", sender.to, "la respuesta sale al número normalizado")
}

func TestReceiveSuppressesDuplicateDeliveries(t *testing.T) {
	handler := &fakeHandler{reply: "ok"}
	sender := &fakeSender{}
	router := newWebhookTestRouter(handler, sender)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(notification("wamid.repetido", "5411987654", "hola")))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "la entrega repetida igual se reconoce con 200")
	}

	assert.Len(t, handler.calls, 1, "el mensaje se procesa una sola vez")
	assert.Equal(t, 1, sender.sent)
}

func TestReceiveIgnoresNonTextMessages(t *testing.T) {
	handler := &fakeHandler{reply: "ok"}
	sender := &fakeSender{}
	router := newWebhookTestRouter(handler, sender)

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{"from": "5411987654", "id": "wamid.img", "type": "image", "text": {"body": ""}}]
				}
			}]
		}]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, handler.calls)
}

func TestReceiveRejectsMalformedBody(t *testing.T) {
	router := newWebhookTestRouter(&fakeHandler{}, &fakeSender{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString("no soy json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeIdentity(t *testing.T) {
	assert.Equal(t, "541122334455", NormalizeIdentity("5491122334455"))
	assert.Equal(t, "5411987654", NormalizeIdentity("5411987654"))
	assert.Equal(t, "34600111222", NormalizeIdentity("34600111222"))
}
