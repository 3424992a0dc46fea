package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/codex/internal/config"
	"github.com/MrSnakeDoc/codex/internal/domain"
	"github.com/MrSnakeDoc/codex/internal/gallery"
	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/codex/internal/index"
	"github.com/MrSnakeDoc/codex/internal/logger"
	"github.com/MrSnakeDoc/codex/internal/slot"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func testRoster() []domain.Character {
	return []domain.Character{
		{
			ID: "aurora-vale", Name: "Aurora Vale", Title: "The Dawnbreaker",
			Role: "Support", Difficulty: "Moderate",
			Description: "Bends light.",
			FanArtSeeds: []domain.FanArtSeed{{ImageURL: "http://img/a1", Artist: "Mira"}},
		},
		{
			ID: "kael-ember", Name: "Kael Ember", Title: "Ashen Vanguard",
			Role: "Tank", Difficulty: "Easy",
			Background: "Gatekeeper of the Aurora monastery.",
		},
		{
			ID: "brannoc", Name: "Brannoc", Title: "Stonewarden",
			Role: "Tank", Difficulty: "Moderate",
		},
	}
}

type brokenSlot struct{}

func (brokenSlot) Read(context.Context) (string, bool, error) { return "", false, nil }
func (brokenSlot) Write(context.Context, string) error        { return errors.New("slot offline") }

type testEnv struct {
	handler http.Handler
	gallery *gallery.Store
	reload  chan struct{}
}

func newTestEnv(t *testing.T, sl slot.Slot, mutate func(*config.Config, *deps.Deps)) testEnv {
	t.Helper()
	log := logger.NewNop()

	roster := testRoster()
	idx := index.NewRosterIndex()
	idx.Replace(roster)

	store, err := gallery.New(context.Background(), sl, domain.SeedEntries(roster, testNow),
		gallery.WithLogger(log),
		gallery.WithClock(func() time.Time { return testNow }),
		gallery.WithIDGenerator(gallery.NewPseudoGenerator(7)))
	if err != nil {
		t.Fatalf("gallery.New() error: %v", err)
	}

	cfg := &config.Config{ListenPort: ":0", RequestTimeout: 5 * time.Second}
	reload := make(chan struct{}, 1)
	d := deps.Deps{
		Logger:             log,
		StartTime:          testNow.Add(-time.Minute),
		TimeNow:            func() time.Time { return testNow },
		Version:            "test",
		SubmitBurst:        100,
		SubmitRefillPerMin: 100,
		Roster:             idx,
		Gallery:            store,
		SlotBackend:        "memory",
		ReloadTrigger:      reload,
	}
	if mutate != nil {
		mutate(cfg, &d)
	}

	return testEnv{handler: New(cfg, log, d).Handler(), gallery: store, reload: reload}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type listBody struct {
	Count   int `json:"count"`
	Results []struct {
		ID          string `json:"id"`
		FanArtCount int    `json:"fanArtCount"`
	} `json:"results"`
	ActiveID     string   `json:"activeId"`
	Roles        []string `json:"roles"`
	Difficulties []string `json:"difficulties"`
}

func TestListCharacters(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), nil)

	tests := []struct {
		name       string
		query      string
		wantIDs    []string
		wantActive string
	}{
		{"no filters", "", []string{"aurora-vale", "kael-ember", "brannoc"}, "aurora-vale"},
		{"search matches name and background", "?q=%20AURORA%20", []string{"aurora-vale", "kael-ember"}, "aurora-vale"},
		{"role", "?role=Tank", []string{"kael-ember", "brannoc"}, "kael-ember"},
		{"role and difficulty", "?role=Tank&difficulty=Moderate", []string{"brannoc"}, "brannoc"},
		{"selection kept when visible", "?role=Tank&selected=brannoc", []string{"kael-ember", "brannoc"}, "brannoc"},
		{"sentinels are explicit no-ops", "?role=All+Roles&difficulty=All+Difficulties", []string{"aurora-vale", "kael-ember", "brannoc"}, "aurora-vale"},
		{"no match falls back to first character", "?q=zzz", nil, "aurora-vale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, env.handler, http.MethodGet, "/api/characters"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			body := decode[listBody](t, rec)

			if body.Count != len(tt.wantIDs) || len(body.Results) != len(tt.wantIDs) {
				t.Fatalf("count = %d results = %d, want %d", body.Count, len(body.Results), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if body.Results[i].ID != id {
					t.Errorf("results[%d] = %s, want %s", i, body.Results[i].ID, id)
				}
			}
			if body.ActiveID != tt.wantActive {
				t.Errorf("activeId = %q, want %q", body.ActiveID, tt.wantActive)
			}
		})
	}
}

func TestListCharactersOptionsAndCounts(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), nil)
	body := decode[listBody](t, do(t, env.handler, http.MethodGet, "/api/characters", ""))

	if strings.Join(body.Roles, ",") != "All Roles,Support,Tank" {
		t.Errorf("roles = %v", body.Roles)
	}
	if strings.Join(body.Difficulties, ",") != "All Difficulties,Moderate,Easy" {
		t.Errorf("difficulties = %v", body.Difficulties)
	}
	if body.Results[0].FanArtCount != 1 || body.Results[1].FanArtCount != 0 {
		t.Errorf("fanArtCount = %d/%d, want 1/0", body.Results[0].FanArtCount, body.Results[1].FanArtCount)
	}
}

func TestGetCharacter(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), nil)

	rec := do(t, env.handler, http.MethodGet, "/api/characters/aurora-vale", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decode[struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		FanArtTotal int    `json:"fanArtTotal"`
	}](t, rec)
	if got.ID != "aurora-vale" || got.Name != "Aurora Vale" || got.FanArtTotal != 1 {
		t.Errorf("detail = %+v", got)
	}

	rec = do(t, env.handler, http.MethodGet, "/api/characters/nobody", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown status = %d, want 404", rec.Code)
	}
}

func TestSubmitFanArt(t *testing.T) {
	sl := slot.NewMemory(nil)
	env := newTestEnv(t, sl, nil)

	rec := do(t, env.handler, http.MethodPost, "/api/characters/aurora-vale/fanart",
		`{"imageUrl":" http://a ","artist":"Jo","caption":""}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	got := decode[struct {
		Entry       domain.FanArtEntry `json:"entry"`
		Persisted   bool               `json:"persisted"`
		FanArtTotal int                `json:"fanArtTotal"`
	}](t, rec)
	if got.Entry.Caption != "Fan art tribute to Aurora Vale" {
		t.Errorf("caption = %q", got.Entry.Caption)
	}
	if got.Entry.ImageURL != "http://a" || got.Entry.CharacterID != "aurora-vale" {
		t.Errorf("entry = %+v", got.Entry)
	}
	if !got.Persisted || got.FanArtTotal != 2 {
		t.Errorf("persisted = %v total = %d, want true 2", got.Persisted, got.FanArtTotal)
	}
	if sl.Writes() != 1 {
		t.Errorf("slot writes = %d, want 1", sl.Writes())
	}
	if first := env.gallery.Entries()[0]; first.ID != got.Entry.ID {
		t.Errorf("newest entry = %s, want %s", first.ID, got.Entry.ID)
	}
}

func TestSubmitFanArtRejected(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"blank image url", "/api/characters/aurora-vale/fanart", `{"imageUrl":"","artist":"x"}`, http.StatusBadRequest, domain.ErrSubmissionIncomplete.Error()},
		{"whitespace artist", "/api/characters/aurora-vale/fanart", `{"imageUrl":"http://a","artist":"   "}`, http.StatusBadRequest, domain.ErrSubmissionIncomplete.Error()},
		{"bad json", "/api/characters/aurora-vale/fanart", `{"imageUrl":`, http.StatusBadRequest, "invalid JSON body"},
		{"unknown character", "/api/characters/nobody/fanart", `{"imageUrl":"http://a","artist":"Jo"}`, http.StatusNotFound, domain.ErrUnknownCharacter.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, slot.NewMemory(nil), nil)
			before := env.gallery.Len()

			rec := do(t, env.handler, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decode[map[string]string](t, rec)["error"]; got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
			if env.gallery.Len() != before {
				t.Errorf("gallery len = %d, want %d", env.gallery.Len(), before)
			}
		})
	}
}

func TestSubmitFanArtPersistFailure(t *testing.T) {
	env := newTestEnv(t, brokenSlot{}, nil)

	rec := do(t, env.handler, http.MethodPost, "/api/characters/kael-ember/fanart",
		`{"imageUrl":"http://k","artist":"Ada","caption":"Ash"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	got := decode[map[string]any](t, rec)
	if got["persisted"] != false {
		t.Errorf("persisted = %v, want false", got["persisted"])
	}
	if env.gallery.CountFor("kael-ember") != 1 {
		t.Errorf("entry should stay in memory")
	}
	if !env.gallery.Status().Dirty {
		t.Errorf("gallery should be dirty after a failed write")
	}
}

func TestSubmitFanArtRateLimited(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), func(_ *config.Config, d *deps.Deps) {
		d.SubmitBurst = 1
		d.SubmitRefillPerMin = 1
	})

	body := `{"imageUrl":"http://a","artist":"Jo"}`
	if rec := do(t, env.handler, http.MethodPost, "/api/characters/aurora-vale/fanart", body); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d, want 201", rec.Code)
	}
	rec := do(t, env.handler, http.MethodPost, "/api/characters/aurora-vale/fanart", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Errorf("missing Retry-After")
	}

	// Reads are not throttled.
	if rec := do(t, env.handler, http.MethodGet, "/api/characters/aurora-vale/fanart", ""); rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", rec.Code)
	}
}

func TestGalleryEndpoints(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), nil)
	do(t, env.handler, http.MethodPost, "/api/characters/brannoc/fanart", `{"imageUrl":"http://b","artist":"Lio"}`)

	all := decode[struct {
		Total   int                  `json:"total"`
		Entries []domain.FanArtEntry `json:"entries"`
	}](t, do(t, env.handler, http.MethodGet, "/api/fanart", ""))
	if all.Total != 2 || all.Entries[0].CharacterID != "brannoc" {
		t.Errorf("gallery = %+v, want brannoc entry first of 2", all)
	}

	per := decode[struct {
		Count   int                  `json:"count"`
		Entries []domain.FanArtEntry `json:"entries"`
	}](t, do(t, env.handler, http.MethodGet, "/api/characters/kael-ember/fanart", ""))
	if per.Count != 0 || per.Entries == nil {
		t.Errorf("kael-ember fan art = %+v, want empty list", per)
	}

	stats := decode[struct {
		Total       int            `json:"total"`
		ByCharacter map[string]int `json:"byCharacter"`
	}](t, do(t, env.handler, http.MethodGet, "/api/fanart/stats", ""))
	if stats.Total != 2 || stats.ByCharacter["aurora-vale"] != 1 || stats.ByCharacter["brannoc"] != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if _, ok := stats.ByCharacter["kael-ember"]; ok {
		t.Errorf("zero-count character should be absent")
	}
}

func TestOpsEndpoints(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), nil)

	health := decode[healthBody](t, do(t, env.handler, http.MethodGet, "/healthz", ""))
	if health.Status != "ok" || health.UptimeSeconds != 60 {
		t.Errorf("healthz = %+v", health)
	}

	if rec := do(t, env.handler, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want 200", rec.Code)
	}

	infra := decode[struct {
		Mode string `json:"mode"`
	}](t, do(t, env.handler, http.MethodGet, "/infra", ""))
	if infra.Mode != "operational" {
		t.Errorf("infra mode = %q, want operational", infra.Mode)
	}

	if rec := do(t, env.handler, http.MethodPost, "/reload", ""); rec.Code != http.StatusAccepted {
		t.Errorf("first reload = %d, want 202", rec.Code)
	}
	if rec := do(t, env.handler, http.MethodPost, "/reload", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("pending reload = %d, want 429", rec.Code)
	}
	if len(env.reload) != 1 {
		t.Errorf("trigger channel holds %d, want 1", len(env.reload))
	}
}

type healthBody struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

func TestInfraDegradedWhenDirty(t *testing.T) {
	env := newTestEnv(t, brokenSlot{}, nil)
	do(t, env.handler, http.MethodPost, "/api/characters/aurora-vale/fanart", `{"imageUrl":"http://a","artist":"Jo"}`)

	infra := decode[struct {
		Mode string `json:"mode"`
	}](t, do(t, env.handler, http.MethodGet, "/infra", ""))
	if infra.Mode != "degraded" {
		t.Errorf("infra mode = %q, want degraded", infra.Mode)
	}
}

func TestOperatorEndpointsRestricted(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), func(_ *config.Config, d *deps.Deps) {
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
		d.AllowedHosts = []string{"codex.internal"}
	})

	// httptest requests come from 192.0.2.1.
	for _, path := range []string{"/readyz", "/infra"} {
		if rec := do(t, env.handler, http.MethodGet, path, ""); rec.Code != http.StatusForbidden {
			t.Errorf("GET %s = %d, want 403", path, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	req.Host = "elsewhere.example"
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("reload with wrong host = %d, want 403", rec.Code)
	}

	req.Host = "codex.internal:8080"
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Errorf("reload from allowed ip and host = %d, want 202", rec.Code)
	}

	if rec := do(t, env.handler, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz should stay public, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, slot.NewMemory(nil), func(cfg *config.Config, _ *deps.Deps) {
		cfg.CORSOrigins = []string{"https://codex.example"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/characters/aurora-vale/fanart", nil)
	req.Header.Set("Origin", "https://codex.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://codex.example" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/fanart", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin got allow origin %q", got)
	}
}
