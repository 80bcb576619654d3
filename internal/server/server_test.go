package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/tohu/internal/imagegen"
	"github.com/abhisek/tohu/internal/llm"
	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/pack"
	"github.com/abhisek/tohu/internal/pdf"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const birdsReply = `{
  "nzsl_story_prompt": {"key_signs": ["BIRD"]},
  "activity_web": [],
  "semantic_components": [
    {"type": "object", "label": "Nest", "sign_gloss": "NEST"},
    {"type": "action", "label": "Fly", "sign_gloss": "FLY"},
    {"type": "setting", "label": "Forest", "sign_gloss": "FOREST"}
  ]
}`

type fakePacks struct {
	got pack.Input
	p   *pack.Pack
	err error
}

func (f *fakePacks) Generate(_ context.Context, in pack.Input) (*pack.Pack, error) {
	f.got = in
	return f.p, f.err
}

type fakePDF struct {
	err error
}

func (f fakePDF) Render(pdf.Handout) (*pdf.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pdf.Result{Bytes: []byte("%PDF-fake"), Skipped: []string{"scene"}}, nil
}

func newRouter(packs PackGenerator, doc HandoutRenderer) *gin.Engine {
	return NewRouter(RouterConfig{
		PackHandler:   NewPackHandler(packs, doc, nil),
		HealthHandler: NewHealthHandler(),
		CORSOrigins:   []string{"https://kura.example.nz"},
	})
}

func post(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate_pack", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := newRouter(&fakePacks{}, fakePDF{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestGeneratePack_EndToEnd(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(birdsReply))
	svc := pack.NewService(
		pack.NewTextClient(mock, time.Second, nil),
		imagegen.NewClient(nil, imagegen.Options{PlaceholderFormat: imagegen.FormatPNG}),
		nil,
	)
	r := newRouter(svc, pdf.NewRenderer(nil))

	w := post(t, r, `{"theme":"Birds","level":"ECE","keywords":"","activity":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NEST FLY FOREST", body["sentence_nzsl"])
	assert.Equal(t, "The Nest flies in the Forest.", body["sentence_en"])
	assert.Equal(t, "Birds", body["theme"])
	assert.Len(t, body["pack_content"], 5)
	assert.Len(t, body["language_steps"], 3)
	assert.Len(t, body["scene_images"], 4)

	raw, err := base64.StdEncoding.DecodeString(body["pdf_base64"].(string))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
	assert.NotContains(t, body, "pdf_skipped_images", "PNG placeholders embed cleanly")
}

func TestGeneratePack_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing theme", `{"level":"ECE"}`},
		{"short theme", `{"theme":" a "}`},
		{"not json", `theme=Birds`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packs := &fakePacks{}
			w := post(t, newRouter(packs, fakePDF{}), tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, CodeInvalidRequest, body.Code)
			assert.NotEmpty(t, body.Detail)
			assert.Empty(t, packs.got.Theme, "generator must not run")
		})
	}
}

func TestGeneratePack_Defaults(t *testing.T) {
	packs := &fakePacks{p: &pack.Pack{Theme: "Rain"}}
	w := post(t, newRouter(packs, fakePDF{}), `{"theme":"  Rain ","activity":"name_the_number"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pack.Input{Theme: "Rain", Level: "ECE", Subject: "language", Activity: "name_the_number"}, packs.got)
	assert.Contains(t, w.Body.String(), `"pdf_skipped_images":["scene"]`)
}

func TestGeneratePack_GenerationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", &pack.GenerationError{Stage: pack.StageRequest, Err: &llm.ErrAuth{Status: 401, Err: errors.New("no")}}, pack.DetailAuth},
		{"shape", &pack.GenerationError{Stage: pack.StageShape, Err: errors.New("missing keys")}, pack.DetailInvalid},
		{"other", errors.New("boom"), "Generation failed: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, newRouter(&fakePacks{err: tt.err}, fakePDF{}), `{"theme":"Birds"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Detail)
			assert.Equal(t, CodeGenerationFailed, body.Code)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestGeneratePack_PDFFailure(t *testing.T) {
	w := post(t, newRouter(&fakePacks{p: &pack.Pack{Theme: "Birds"}}, fakePDF{err: errors.New("disk full")}), `{"theme":"Birds"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), CodePDFFailed)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newRouter(&fakePacks{}, fakePDF{})
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := newRouter(&fakePacks{}, fakePDF{})

	req := httptest.NewRequest(http.MethodOptions, "/api/generate_pack", nil)
	req.Header.Set("Origin", "https://kura.example.nz")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://kura.example.nz", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	r := NewRouter(RouterConfig{
		PackHandler:   NewPackHandler(&fakePacks{err: errors.New("boom")}, fakePDF{}, nil),
		HealthHandler: NewHealthHandler(),
		Log:           log,
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	post(t, r, `{"theme":"x"}`)
	post(t, r, `{"theme":"Birds"}`)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	fields := entries[2].ContextMap()
	assert.Equal(t, "/api/generate_pack", fields["path"])
	assert.Equal(t, int64(500), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestServerRunStopsOnCancel(t *testing.T) {
	s := NewServer(RouterConfig{HealthHandler: NewHealthHandler()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0", time.Second) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
