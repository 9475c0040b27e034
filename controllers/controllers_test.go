package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medilink-backend/config"
	"medilink-backend/database"
	"medilink-backend/matcher"
	"medilink-backend/models"
	"medilink-backend/routes"
	"medilink-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var roster = []models.Doctor{
	{
		ID:         "card-1",
		Name:       "Dr. Karim Hossain",
		Specialty:  "Cardiologist",
		Hospital:   "Square Hospital",
		Location:   "Dhaka",
		Languages:  []string{"Bangla", "English"},
		Rating:     4.8,
		Conditions: []string{"chest pain", "palpitation"},
	},
	{
		ID:         "derm-1",
		Name:       "Dr. Sadia Islam",
		Specialty:  "Dermatologist",
		Hospital:   "Ibn Sina",
		Location:   "Dhaka",
		Languages:  []string{"English"},
		Rating:     4.4,
		Conditions: []string{"rash", "acne"},
	},
}

type fakeDoctors struct {
	doctors []models.Doctor
	err     error
}

func (f fakeDoctors) ListDoctors(context.Context) ([]models.Doctor, error) {
	return f.doctors, f.err
}

func (f fakeDoctors) GetDoctor(_ context.Context, id string) (*models.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.doctors {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, database.ErrDoctorNotFound
}

type harness struct {
	router   *gin.Engine
	whatsapp interface{ Wait() }
}

type options struct {
	doctors     fakeDoctors
	upstreamURL string
	whatsapp    config.WhatsAppConfig
	healthErr   error
}

func newHarness(t *testing.T, opts options) harness {
	t.Helper()
	if opts.doctors.doctors == nil && opts.doctors.err == nil {
		opts.doctors.doctors = roster
	}

	m, err := matcher.New(opts.doctors)
	require.NoError(t, err)

	cfg := &config.Config{
		AllowedOrigins: []string{"*"},
		Upstream:       config.UpstreamConfig{URL: opts.upstreamURL},
		WhatsApp:       opts.whatsapp,
	}
	chatbot := services.NewChatbotService(m, services.NewUpstreamService(cfg.Upstream))

	router := gin.New()
	wc := routes.SetupRoutes(router, routes.Dependencies{
		Config:   cfg,
		Chatbot:  chatbot,
		WhatsApp: services.NewWhatsAppService(cfg.WhatsApp),
		Doctors:  opts.doctors,
		HealthCheck: func(context.Context) error {
			return opts.healthErr
		},
	})
	return harness{router: router, whatsapp: wc}
}

func (h harness) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func suggestionIDs(resp models.ChatResponse) []string {
	ids := make([]string, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestHandleChatLocal(t *testing.T) {
	h := newHarness(t, options{})

	for _, path := range []string{"/api/v1/chat", "/api/medivirtuoso"} {
		t.Run(path, func(t *testing.T) {
			w := h.do(http.MethodPost, path, `{"message":"I have chest pain"}`)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[models.ChatResponse](t, w)
			assert.Equal(t, models.SourceLocal, resp.Source)
			assert.Equal(t, []string{"card-1"}, suggestionIDs(resp))
			assert.Contains(t, resp.Reply, "Dr. Karim Hossain")
		})
	}
}

func TestHandleChatNoMatchKeepsEmptySuggestions(t *testing.T) {
	h := newHarness(t, options{})

	w := h.do(http.MethodPost, "/api/v1/chat", `{"message":"hello there"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"suggestions":[]`)
}

func TestHandleChatErrors(t *testing.T) {
	t.Run("missing message", func(t *testing.T) {
		h := newHarness(t, options{})
		for _, body := range []string{`{}`, `{"message":""}`, ``} {
			w := h.do(http.MethodPost, "/api/v1/chat", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Equal(t, "Missing message", decode[map[string]string](t, w)["error"])
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newHarness(t, options{})
		for _, body := range []string{`not json`, `{"message":5}`} {
			w := h.do(http.MethodPost, "/api/v1/chat", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)

			resp := decode[map[string]string](t, w)
			assert.Equal(t, "Invalid request format", resp["error"])
			assert.NotEmpty(t, resp["details"])
		}
	})

	t.Run("roster failure", func(t *testing.T) {
		h := newHarness(t, options{doctors: fakeDoctors{err: errors.New("db down")}})
		w := h.do(http.MethodPost, "/api/v1/chat", `{"message":"fever"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "db down")
	})

	t.Run("upstream failure", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		h := newHarness(t, options{upstreamURL: upstream.URL})
		w := h.do(http.MethodPost, "/api/v1/chat", `{"message":"fever"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "Upstream error", decode[map[string]string](t, w)["error"])
	})
}

func TestDoctorEndpoints(t *testing.T) {
	h := newHarness(t, options{})

	t.Run("list", func(t *testing.T) {
		w := h.do(http.MethodGet, "/api/v1/doctors", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			Doctors []models.Doctor `json:"doctors"`
			Count   int             `json:"count"`
		}](t, w)
		assert.Equal(t, 2, body.Count)
		assert.Equal(t, "card-1", body.Doctors[0].ID)
	})

	t.Run("legacy list is a bare array", func(t *testing.T) {
		w := h.do(http.MethodGet, "/api/doctors", "")
		require.Equal(t, http.StatusOK, w.Code)

		doctors := decode[[]models.Doctor](t, w)
		require.Len(t, doctors, 2)
		assert.Equal(t, "card-1", doctors[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		w := h.do(http.MethodGet, "/api/v1/doctors/derm-1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Dermatologist", decode[models.Doctor](t, w).Specialty)
	})

	t.Run("unknown", func(t *testing.T) {
		w := h.do(http.MethodGet, "/api/v1/doctors/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealth(t *testing.T) {
	w := newHarness(t, options{}).do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["database"])

	w = newHarness(t, options{healthErr: database.ErrNotConnected}).do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decode[map[string]any](t, w)["status"])
}

func TestNoRoute(t *testing.T) {
	w := newHarness(t, options{}).do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebSocketChat(t *testing.T) {
	h := newHarness(t, options{})
	srv := httptest.NewServer(h.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws?session_id=s1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "chest pain"}))
	var resp models.ChatResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, []string{"card-1"}, suggestionIDs(resp))

	require.NoError(t, conn.WriteJSON(map[string]string{"message": ""}))
	var errFrame map[string]string
	require.NoError(t, conn.ReadJSON(&errFrame))
	assert.Equal(t, "Missing message", errFrame["error"])
}

func TestWhatsAppVerifyWebhook(t *testing.T) {
	h := newHarness(t, options{whatsapp: config.WhatsAppConfig{VerifyToken: "verify-me"}})

	w := h.do(http.MethodGet, "/api/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=42", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	w = h.do(http.MethodGet, "/api/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=42", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWhatsAppWebhookReplies(t *testing.T) {
	sent := make(chan models.WhatsAppSendMessage, 1)
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg models.WhatsAppSendMessage
		_ = json.NewDecoder(r.Body).Decode(&msg)
		sent <- msg
		w.Write([]byte(`{}`))
	}))
	defer graph.Close()

	h := newHarness(t, options{whatsapp: config.WhatsAppConfig{
		APIURL:        graph.URL,
		APIVersion:    "v18.0",
		AccessToken:   "token",
		PhoneNumberID: "1",
	}})

	payload := `{"object":"whatsapp_business_account","entry":[{"id":"e1","changes":[{"field":"messages","value":{
		"messaging_product":"whatsapp",
		"messages":[
			{"from":"8801711000000","id":"m1","type":"text","text":{"body":"chest pain"}},
			{"from":"8801711000000","id":"m2","type":"image"}
		]}}]}]}`

	w := h.do(http.MethodPost, "/api/whatsapp/webhook", payload)
	require.Equal(t, http.StatusOK, w.Code)
	h.whatsapp.Wait()

	require.Len(t, sent, 1)
	msg := <-sent
	assert.Equal(t, "8801711000000", msg.To)
	require.NotNil(t, msg.Text)
	assert.Contains(t, msg.Text.Body, "Dr. Karim Hossain")
}

func TestWhatsAppWebhookRejectsBadSignature(t *testing.T) {
	h := newHarness(t, options{whatsapp: config.WhatsAppConfig{AppSecret: "secret"}})

	w := h.do(http.MethodPost, "/api/whatsapp/webhook", `{"object":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
