package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scrimgg/scrim/config"
	mw "github.com/scrimgg/scrim/internal/middleware"
	"github.com/scrimgg/scrim/internal/player"
	"github.com/scrimgg/scrim/pkg/responses"
	"github.com/scrimgg/scrim/pkg/validator"
)

// SessionController exposes the match session operations over HTTP
type SessionController struct {
	engine     *Engine
	playerRepo player.PlayerRepository
	appConfig  *config.Config
}

// NewSessionController creates a new session controller
func NewSessionController(engine *Engine, playerRepo player.PlayerRepository, appConfig *config.Config) *SessionController {
	return &SessionController{
		engine:     engine,
		playerRepo: playerRepo,
		appConfig:  appConfig,
	}
}

// sendEngineError maps engine rejections onto HTTP statuses: wrong-phase
// rejections are conflicts with the session state, the rest are bad requests.
func sendEngineError(c *gin.Context, err error) {
	if errors.Is(err, ErrWrongPhase) {
		responses.Conflict(c, err.Error())
		return
	}
	responses.BadRequest(c, err.Error())
}

// --- DTOs for requests ---

type SetFormatRequest struct {
	Format Format `json:"format" binding:"required,oneof=bo3 bo5"`
}

type BanPickRequest struct {
	Side     Side   `json:"side" binding:"required,oneof=A B"`
	Kind     string `json:"kind" binding:"required,oneof=ban pick"`
	Slot     *int   `json:"slot" binding:"required,gte=0,lte=4"`
	Champion string `json:"champion" binding:"max=100"`
}

type SelectWinnerRequest struct {
	Side Side `json:"side" binding:"required,oneof=A B"`
}

type TradeSelectRequest struct {
	Side Side `json:"side" binding:"required,oneof=A B"`
	Slot *int `json:"slot" binding:"required,gte=0,lte=4"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// --- Session Handlers ---

// GetState godoc
// @Summary Get the current session state
// @Tags Session
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /session [get]
func (sc *SessionController) GetState(c *gin.Context) {
	responses.SendSuccess(c, http.StatusOK, "", sc.engine.Snapshot())
}

// SetFormat godoc
// @Summary Choose the match format
// @Description Switches between best-of-3 and best-of-5. Only allowed during setup.
// @Tags Session
// @Accept json
// @Produce json
// @Param format body SetFormatRequest true "Match format"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /session/format [put]
func (sc *SessionController) SetFormat(c *gin.Context) {
	var req SetFormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}
	if err := sc.engine.SetFormat(req.Format); err != nil {
		sendEngineError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Format updated", sc.engine.Snapshot())
}

// FormTeams godoc
// @Summary Form two balanced teams from the registered roster
// @Description Shuffles the 10 registered players into two position-assigned sides and starts game 1. Requires exactly 10 players and a designated current user.
// @Tags Session
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /session/teams [post]
func (sc *SessionController) FormTeams(c *gin.Context) {
	count, err := sc.playerRepo.CountPlayers()
	if err != nil {
		responses.InternalServerError(c, "Failed to count roster")
		return
	}
	if count != RosterSize {
		responses.BadRequest(c, fmt.Sprintf("Team formation requires exactly %d registered players, the roster has %d", RosterSize, count))
		return
	}

	players, err := sc.playerRepo.GetAllPlayers()
	if err != nil {
		responses.InternalServerError(c, "Failed to load roster")
		return
	}
	currentUser, err := sc.playerRepo.LoadCurrentUser()
	if err != nil {
		responses.InternalServerError(c, "Failed to load current user")
		return
	}

	roster := make([]Participant, 0, len(players))
	for _, p := range players {
		roster = append(roster, Participant{
			Name:         p.Name,
			MainPosition: p.MainPosition,
			MainTier:     p.MainTier,
			SubPosition1: p.SubPosition1,
			SubTier1:     p.SubTier1,
			SubPosition2: p.SubPosition2,
			SubTier2:     p.SubTier2,
		})
	}

	if err := sc.engine.FormTeams(roster, currentUser); err != nil {
		sendEngineError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Teams formed", sc.engine.Snapshot())
}

// UpdateBanPick godoc
// @Summary Edit one ban or pick scratch slot
// @Tags Session
// @Accept json
// @Produce json
// @Param banpick body BanPickRequest true "Slot edit"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /session/banpick [put]
func (sc *SessionController) UpdateBanPick(c *gin.Context) {
	var req BanPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}

	var err error
	if req.Kind == "ban" {
		err = sc.engine.SetBan(req.Side, *req.Slot, req.Champion)
	} else {
		err = sc.engine.SetPick(req.Side, *req.Slot, req.Champion)
	}
	if err != nil {
		sendEngineError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", sc.engine.Snapshot())
}

// SelectWinner godoc
// @Summary Mark the tentative winner of the current game
// @Tags Session
// @Accept json
// @Produce json
// @Param winner body SelectWinnerRequest true "Winning side"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /session/winner [put]
func (sc *SessionController) SelectWinner(c *gin.Context) {
	var req SelectWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}
	if err := sc.engine.SelectWinner(req.Side); err != nil {
		sendEngineError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", sc.engine.Snapshot())
}

// SubmitResult godoc
// @Summary Submit the current game's result
// @Description Commits the tentative winner: appends a history record, updates win counters, and either opens the trade window or completes the match.
// @Tags Session
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /session/games [post]
func (sc *SessionController) SubmitResult(c *gin.Context) {
	record, err := sc.engine.SubmitGameResult()
	if err != nil {
		sendEngineError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game result recorded", gin.H{
		"record": record,
		"state":  sc.engine.Snapshot(),
	})
}

// StartNextGame godoc
// @Summary Leave the trade window and start the next game
// @Tags Session
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /session/games/next [post]
func (sc *SessionController) StartNextGame(c *gin.Context) {
	gameNumber, err := sc.engine.StartNextGame()
	if err != nil {
		sendEngineError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Next game started", gin.H{
		"game_number": gameNumber,
		"state":       sc.engine.Snapshot(),
	})
}

// SelectTrade godoc
// @Summary Run one step of the two-step trade protocol
// @Description First selection arms a pending source; same-side reselection cancels it; cross-side selection swaps the two players and logs the trade on the latest game record.
// @Tags Session
// @Accept json
// @Produce json
// @Param trade body TradeSelectRequest true "Side and slot"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /session/trades [post]
func (sc *SessionController) SelectTrade(c *gin.Context) {
	var req TradeSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}
	outcome, err := sc.engine.SelectTrade(req.Side, *req.Slot)
	if err != nil {
		sendEngineError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"outcome": outcome,
		"state":   sc.engine.Snapshot(),
	})
}

// GetHistory godoc
// @Summary Get the full match history
// @Tags Session
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /session/history [get]
func (sc *SessionController) GetHistory(c *gin.Context) {
	responses.SendSuccess(c, http.StatusOK, "", sc.engine.History())
}

// Reset godoc
// @Summary Reset the match session
// @Description Returns the session to setup, clearing teams, counters, and history. The roster and current-user designation are preserved. Requires confirm=true.
// @Tags Session
// @Accept json
// @Produce json
// @Param reset body ResetRequest true "Confirmation"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /session/reset [post]
func (sc *SessionController) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}
	confirmer := ConfirmerFunc(func(string) bool { return req.Confirm })
	if err := sc.engine.Reset(confirmer); err != nil {
		sendEngineError(c, err)
		return
	}

	message := "Match reset"
	if name, err := mw.GetPlayerNameFromContext(c); err == nil {
		message = "Match reset by " + name
	}
	responses.SendSuccess(c, http.StatusOK, message, sc.engine.Snapshot())
}

// AcknowledgeChanges godoc
// @Summary Acknowledge unseen roster/history changes
// @Tags Session
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /session/changes/ack [post]
func (sc *SessionController) AcknowledgeChanges(c *gin.Context) {
	sc.engine.AcknowledgeChanges()
	responses.SendSuccess(c, http.StatusOK, "Changes acknowledged", nil)
}
