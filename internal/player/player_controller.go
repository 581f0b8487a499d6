package player

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scrimgg/scrim/config"
	"github.com/scrimgg/scrim/pkg/notify"
	"github.com/scrimgg/scrim/pkg/responses"
	"github.com/scrimgg/scrim/pkg/token"
	"github.com/scrimgg/scrim/pkg/validator"
)

// PlayerController handles roster-related HTTP requests
type PlayerController struct {
	repo      PlayerRepository
	appConfig *config.Config
	notifier  notify.Notifier
}

// NewPlayerController creates a new player controller
func NewPlayerController(repo PlayerRepository, appConfig *config.Config, notifier notify.Notifier) *PlayerController {
	return &PlayerController{
		repo:      repo,
		appConfig: appConfig,
		notifier:  notifier,
	}
}

// --- DTOs for requests ---

type RegisterPlayerRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=100"`
	MainPosition Position `json:"main_position" binding:"required"`
	MainTier     Tier     `json:"main_tier" binding:"required"`
	SubPosition1 Position `json:"sub_position1"`
	SubTier1     Tier     `json:"sub_tier1"`
	SubPosition2 Position `json:"sub_position2"`
	SubTier2     Tier     `json:"sub_tier2"`
}

type IdentifyRequest struct {
	Name string `json:"name" binding:"required"`
}

// IdentifyResponse carries the signed identity token for the self-declared
// player.
type IdentifyResponse struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// --- Player Handlers ---

// RegisterPlayer godoc
// @Summary Register a player on the roster
// @Description Adds a player with a main role and up to two secondary roles. A secondary tier stronger than the main tier is clamped down to the main tier.
// @Tags Players
// @Accept json
// @Produce json
// @Param player body RegisterPlayerRequest true "Player declaration"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /players [post]
func (pc *PlayerController) RegisterPlayer(c *gin.Context) {
	var req RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}

	p := Player{
		Name:         req.Name,
		MainPosition: req.MainPosition,
		MainTier:     req.MainTier,
		SubPosition1: req.SubPosition1,
		SubTier1:     req.SubTier1,
		SubPosition2: req.SubPosition2,
		SubTier2:     req.SubTier2,
	}
	if err := p.Validate(); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	p.Normalize()

	existing, err := pc.repo.GetPlayerByName(p.Name)
	if err != nil {
		responses.InternalServerError(c, "Failed to check roster")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A player with this name is already registered")
		return
	}

	if err := pc.repo.CreatePlayer(&p); err != nil {
		responses.InternalServerError(c, "Failed to register player")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Player registered", p)
}

// UpdatePlayer godoc
// @Summary Update a registered player's declaration
// @Tags Players
// @Accept json
// @Produce json
// @Param player_id path int true "Player ID"
// @Param player body RegisterPlayerRequest true "Player declaration"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /players/{player_id} [put]
func (pc *PlayerController) UpdatePlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("player_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return
	}

	var req RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}

	p, err := pc.repo.GetPlayerByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to load player")
		return
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return
	}

	if req.Name != p.Name {
		existing, err := pc.repo.GetPlayerByName(req.Name)
		if err != nil {
			responses.InternalServerError(c, "Failed to check roster")
			return
		}
		if existing != nil {
			responses.Conflict(c, "A player with this name is already registered")
			return
		}
	}

	p.Name = req.Name
	p.MainPosition = req.MainPosition
	p.MainTier = req.MainTier
	p.SubPosition1 = req.SubPosition1
	p.SubTier1 = req.SubTier1
	p.SubPosition2 = req.SubPosition2
	p.SubTier2 = req.SubTier2

	if err := p.Validate(); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	p.Normalize()

	if err := pc.repo.UpdatePlayer(p); err != nil {
		responses.InternalServerError(c, "Failed to update player")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Player updated", p)
}

// GetAllPlayers godoc
// @Summary List the registered roster
// @Tags Players
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /players [get]
func (pc *PlayerController) GetAllPlayers(c *gin.Context) {
	players, err := pc.repo.GetAllPlayers()
	if err != nil {
		responses.InternalServerError(c, "Failed to load roster")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", players)
}

// DeletePlayer godoc
// @Summary Remove a player from the roster
// @Tags Players
// @Produce json
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /players/{player_id} [delete]
func (pc *PlayerController) DeletePlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("player_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return
	}

	p, err := pc.repo.GetPlayerByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to load player")
		return
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return
	}

	// Dropping the designated current user clears the designation too.
	current, err := pc.repo.LoadCurrentUser()
	if err != nil {
		responses.InternalServerError(c, "Failed to load current user")
		return
	}
	if current == p.Name {
		if err := pc.repo.ClearCurrentUser(); err != nil {
			responses.InternalServerError(c, "Failed to clear current user")
			return
		}
	}

	if err := pc.repo.DeletePlayer(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to remove player")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Player removed", nil)
}

// Identify godoc
// @Summary Designate yourself as the current user
// @Description Self-identification by name. Persists the designation and returns a signed identity token; there is no password or account.
// @Tags Players
// @Accept json
// @Produce json
// @Param identity body IdentifyRequest true "Self-declared name"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /players/identify [post]
func (pc *PlayerController) Identify(c *gin.Context) {
	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.ParseError(err)})
		return
	}

	p, err := pc.repo.GetPlayerByName(req.Name)
	if err != nil {
		responses.InternalServerError(c, "Failed to load player")
		return
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return
	}

	if err := pc.repo.SaveCurrentUser(p.Name); err != nil {
		responses.InternalServerError(c, "Failed to save current user")
		return
	}

	signed, err := token.GenerateIdentityToken(p.Name, pc.appConfig.JWT.IdentitySecret, pc.appConfig.JWT.IdentityExpiryHours)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue identity token")
		return
	}

	pc.notifier.Notify("Now playing as " + p.Name + "!")
	responses.SendSuccess(c, http.StatusOK, "Identity set", IdentifyResponse{Name: p.Name, Token: signed})
}

// GetIdentity godoc
// @Summary Get the designated current user
// @Tags Players
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /players/identity [get]
func (pc *PlayerController) GetIdentity(c *gin.Context) {
	current, err := pc.repo.LoadCurrentUser()
	if err != nil {
		responses.InternalServerError(c, "Failed to load current user")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"current_user": current})
}
