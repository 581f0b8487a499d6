package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scrimgg/scrim/config"
	mw "github.com/scrimgg/scrim/internal/middleware"
	"github.com/scrimgg/scrim/internal/player"
	"github.com/scrimgg/scrim/pkg/responses"
	"gorm.io/gorm"
)

// stubPlayerRepo is an in-memory player.PlayerRepository for handler tests.
type stubPlayerRepo struct {
	players []player.Player
	current string
}

func (r *stubPlayerRepo) CreatePlayer(p *player.Player) error {
	r.players = append(r.players, *p)
	return nil
}

func (r *stubPlayerRepo) GetPlayerByID(id uint) (*player.Player, error) {
	for i := range r.players {
		if r.players[i].ID == id {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *stubPlayerRepo) GetPlayerByName(name string) (*player.Player, error) {
	for i := range r.players {
		if r.players[i].Name == name {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *stubPlayerRepo) GetAllPlayers() ([]player.Player, error) { return r.players, nil }

func (r *stubPlayerRepo) CountPlayers() (int64, error) { return int64(len(r.players)), nil }

func (r *stubPlayerRepo) UpdatePlayer(*player.Player) error { return nil }
func (r *stubPlayerRepo) DeletePlayer(uint) error           { return nil }

func (r *stubPlayerRepo) SaveCurrentUser(name string) error { r.current = name; return nil }
func (r *stubPlayerRepo) LoadCurrentUser() (string, error)  { return r.current, nil }
func (r *stubPlayerRepo) ClearCurrentUser() error           { r.current = ""; return nil }

// rosterRepo builds a repository holding the shared test roster as registered
// players, with the first player designated as current user.
func rosterRepo() *stubPlayerRepo {
	repo := &stubPlayerRepo{}
	for i, p := range testRoster() {
		repo.players = append(repo.players, player.Player{
			Model:        gorm.Model{ID: uint(i + 1)},
			Name:         p.Name,
			MainPosition: p.MainPosition,
			MainTier:     p.MainTier,
			SubPosition1: p.SubPosition1,
			SubTier1:     p.SubTier1,
		})
	}
	repo.current = repo.players[0].Name
	return repo
}

func sessionTestContext(t *testing.T, method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestFormTeamsHandlerRejectsShortRoster(t *testing.T) {
	repo := rosterRepo()
	repo.players = repo.players[:9]
	engine := newTestEngine(1)
	sc := NewSessionController(engine, repo, &config.Config{})

	c, w := sessionTestContext(t, http.MethodPost, "")
	sc.FormTeams(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d for a 9-player roster", w.Code, http.StatusBadRequest)
	}
	if got := engine.Snapshot().Phase; got != PhaseSetup {
		t.Errorf("phase = %s, want %s after rejected formation", got, PhaseSetup)
	}
}

func TestFormTeamsHandlerFormsFullRoster(t *testing.T) {
	engine := newTestEngine(1)
	sc := NewSessionController(engine, rosterRepo(), &config.Config{})

	c, w := sessionTestContext(t, http.MethodPost, "")
	sc.FormTeams(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := engine.Snapshot().Phase; got != PhaseActiveGame {
		t.Errorf("phase = %s, want %s", got, PhaseActiveGame)
	}
}

func TestResetHandlerNamesActor(t *testing.T) {
	engine := newTestEngine(1)
	if err := engine.FormTeams(testRoster(), "Faker"); err != nil {
		t.Fatalf("FormTeams() failed: %v", err)
	}
	sc := NewSessionController(engine, rosterRepo(), &config.Config{})

	c, w := sessionTestContext(t, http.MethodPost, `{"confirm":true}`)
	c.Set(mw.IdentityNameKey, "Faker")
	sc.Reset(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp responses.SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.Message, "Faker") {
		t.Errorf("message = %q, want the resetting player named", resp.Message)
	}
	if got := engine.Snapshot().Phase; got != PhaseSetup {
		t.Errorf("phase = %s, want %s", got, PhaseSetup)
	}
}
