package player

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scrimgg/scrim/config"
	"github.com/scrimgg/scrim/pkg/notify"
	"gorm.io/gorm"
)

// stubRepo is an in-memory PlayerRepository for handler tests.
type stubRepo struct {
	players []Player
	current string
}

func (r *stubRepo) CreatePlayer(p *Player) error {
	p.ID = uint(len(r.players) + 1)
	r.players = append(r.players, *p)
	return nil
}

func (r *stubRepo) GetPlayerByID(id uint) (*Player, error) {
	for i := range r.players {
		if r.players[i].ID == id {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) GetPlayerByName(name string) (*Player, error) {
	for i := range r.players {
		if r.players[i].Name == name {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) GetAllPlayers() ([]Player, error) { return r.players, nil }

func (r *stubRepo) CountPlayers() (int64, error) { return int64(len(r.players)), nil }

func (r *stubRepo) UpdatePlayer(p *Player) error {
	for i := range r.players {
		if r.players[i].ID == p.ID {
			r.players[i] = *p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRepo) DeletePlayer(id uint) error {
	for i := range r.players {
		if r.players[i].ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) SaveCurrentUser(name string) error { r.current = name; return nil }
func (r *stubRepo) LoadCurrentUser() (string, error)  { return r.current, nil }
func (r *stubRepo) ClearCurrentUser() error           { r.current = ""; return nil }

func testContext(t *testing.T, method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func twoPlayerRepo() *stubRepo {
	return &stubRepo{players: []Player{
		{Model: gorm.Model{ID: 1}, Name: "Faker", MainPosition: PositionMid, MainTier: TierChallenger},
		{Model: gorm.Model{ID: 2}, Name: "Chovy", MainPosition: PositionMid, MainTier: TierChallenger},
	}}
}

func TestUpdatePlayerRenameCollision(t *testing.T) {
	repo := twoPlayerRepo()
	pc := NewPlayerController(repo, &config.Config{}, notify.Discard{})

	c, w := testContext(t, http.MethodPut, `{"name":"Faker","main_position":"mid","main_tier":"gold"}`)
	c.Params = gin.Params{{Key: "player_id", Value: "2"}}
	pc.UpdatePlayer(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d when renaming onto a registered name", w.Code, http.StatusConflict)
	}
	if p, _ := repo.GetPlayerByID(2); p.Name != "Chovy" {
		t.Errorf("player 2 name = %q, want unchanged %q", p.Name, "Chovy")
	}
}

func TestUpdatePlayerKeepingOwnName(t *testing.T) {
	repo := twoPlayerRepo()
	pc := NewPlayerController(repo, &config.Config{}, notify.Discard{})

	c, w := testContext(t, http.MethodPut, `{"name":"Chovy","main_position":"top","main_tier":"gold"}`)
	c.Params = gin.Params{{Key: "player_id", Value: "2"}}
	pc.UpdatePlayer(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d for an update keeping the same name, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if p, _ := repo.GetPlayerByID(2); p.MainPosition != PositionTop {
		t.Errorf("player 2 main position = %q, want %q", p.MainPosition, PositionTop)
	}
}

func TestUpdatePlayerRenameToFreeName(t *testing.T) {
	repo := twoPlayerRepo()
	pc := NewPlayerController(repo, &config.Config{}, notify.Discard{})

	c, w := testContext(t, http.MethodPut, `{"name":"Zeus","main_position":"top","main_tier":"gold"}`)
	c.Params = gin.Params{{Key: "player_id", Value: "2"}}
	pc.UpdatePlayer(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if p, _ := repo.GetPlayerByID(2); p.Name != "Zeus" {
		t.Errorf("player 2 name = %q, want %q", p.Name, "Zeus")
	}
}

func TestRegisterPlayerDuplicateName(t *testing.T) {
	repo := twoPlayerRepo()
	pc := NewPlayerController(repo, &config.Config{}, notify.Discard{})

	c, w := testContext(t, http.MethodPost, `{"name":"Faker","main_position":"top","main_tier":"gold"}`)
	pc.RegisterPlayer(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d for a duplicate registration", w.Code, http.StatusConflict)
	}
}
