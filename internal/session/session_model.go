package session

import (
	"errors"

	"github.com/scrimgg/scrim/internal/player"
)

// Format is the match format: first side to the win threshold takes the match.
type Format string

const (
	FormatBO3 Format = "bo3"
	FormatBO5 Format = "bo5"
)

// WinThreshold returns the number of game wins needed to take the match.
func (f Format) WinThreshold() int {
	if f == FormatBO5 {
		return 3
	}
	return 2
}

// IsValid reports whether the format is a known match format.
func (f Format) IsValid() bool {
	return f == FormatBO3 || f == FormatBO5
}

// Side identifies one of the two team rosters.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// IsValid reports whether the side is A or B.
func (s Side) IsValid() bool {
	return s == SideA || s == SideB
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Phase is the lifecycle stage of the match session.
type Phase string

const (
	// PhaseSetup is the pre-match state: roster registration and format choice.
	PhaseSetup Phase = "setup"
	// PhaseActiveGame is an in-progress game: ban/pick and winner scratch edits.
	PhaseActiveGame Phase = "active_game"
	// PhaseBetweenGames is the window after a recorded game where trades are allowed.
	PhaseBetweenGames Phase = "between_games"
	// PhaseComplete is terminal: one side reached the win threshold.
	PhaseComplete Phase = "complete"
)

// Participant is a read-only snapshot of a registered player taken when team
// formation begins. Roster edits after formation do not reach the session.
type Participant struct {
	Name         string          `json:"name"`
	MainPosition player.Position `json:"main_position"`
	MainTier     player.Tier     `json:"main_tier"`
	SubPosition1 player.Position `json:"sub_position1,omitempty"`
	SubTier1     player.Tier     `json:"sub_tier1,omitempty"`
	SubPosition2 player.Position `json:"sub_position2,omitempty"`
	SubTier2     player.Tier     `json:"sub_tier2,omitempty"`
}

// PlayerAssignment binds a participant to the position they were assigned for
// the current match. Trades move the whole assignment between sides; the
// assigned position travels with the player.
type PlayerAssignment struct {
	Participant      Participant     `json:"participant"`
	AssignedPosition player.Position `json:"assigned_position"`
}

// TeamSize is the number of slots on each side.
const TeamSize = 5

// RosterSize is the number of registered players required to form teams.
const RosterSize = 2 * TeamSize

// BanPick is the per-game scratch state: five ban and five pick slots per
// side, editable freely while a game is active and cleared on submission.
type BanPick struct {
	BansA  [TeamSize]string `json:"bans_a"`
	BansB  [TeamSize]string `json:"bans_b"`
	PicksA [TeamSize]string `json:"picks_a"`
	PicksB [TeamSize]string `json:"picks_b"`
}

// Trade records one cross-side player exchange executed between games.
type Trade struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GameRecord is the snapshot of one completed game. It is sealed at
// submission time except for the Trades tail, which accumulates trades
// executed during the following between-games window until the next game is
// submitted.
type GameRecord struct {
	GameNumber int                `json:"game_number"`
	BansA      []string           `json:"bans_a"`
	BansB      []string           `json:"bans_b"`
	PicksA     []string           `json:"picks_a"`
	PicksB     []string           `json:"picks_b"`
	TeamA      []PlayerAssignment `json:"team_a"`
	TeamB      []PlayerAssignment `json:"team_b"`
	Winner     Side               `json:"winner"`
	WinsA      int                `json:"wins_a"`
	WinsB      int                `json:"wins_b"`
	Trades     []Trade            `json:"trades"`
}

// TradeSelection is the pending source of a two-step trade.
type TradeSelection struct {
	Side Side `json:"side"`
	Slot int  `json:"slot"`
}

// TradeStatus describes the outcome of one trade selection step.
type TradeStatus string

const (
	// TradeSelected means the selection was armed as the pending source.
	TradeSelected TradeStatus = "selected"
	// TradeCancelled means the pending selection was toggled off.
	TradeCancelled TradeStatus = "cancelled"
	// TradeCompleted means the two assignments were exchanged.
	TradeCompleted TradeStatus = "completed"
)

// TradeOutcome reports what a trade selection did. Trade is set only when the
// status is TradeCompleted.
type TradeOutcome struct {
	Status TradeStatus `json:"status"`
	Trade  *Trade      `json:"trade,omitempty"`
}

// State is a read-only snapshot of the session for display purposes.
type State struct {
	Phase         Phase              `json:"phase"`
	Format        Format             `json:"format"`
	WinThreshold  int                `json:"win_threshold"`
	CurrentGame   int                `json:"current_game"`
	TeamNameA     string             `json:"team_name_a"`
	TeamNameB     string             `json:"team_name_b"`
	WinsA         int                `json:"wins_a"`
	WinsB         int                `json:"wins_b"`
	TeamA         []PlayerAssignment `json:"team_a"`
	TeamB         []PlayerAssignment `json:"team_b"`
	BanPick       BanPick            `json:"ban_pick"`
	PendingWinner Side               `json:"pending_winner,omitempty"`
	PendingTrade  *TradeSelection    `json:"pending_trade,omitempty"`
	MatchWinner   string             `json:"match_winner,omitempty"`
	UnseenChanges bool               `json:"unseen_changes"`
}

// Validation errors surfaced by the session engine. Operations are
// all-or-nothing: a rejected operation leaves no partial mutation behind.
var (
	ErrRosterSize       = errors.New("team formation requires exactly 10 players")
	ErrNoCurrentUser    = errors.New("a current user must be designated before the match starts")
	ErrWrongPhase       = errors.New("operation not allowed in the current phase")
	ErrNoWinnerSelected = errors.New("select a winning team before submitting the result")
	ErrInvalidSide      = errors.New("side must be A or B")
	ErrInvalidSlot      = errors.New("slot index out of range")
	ErrInvalidFormat    = errors.New("format must be bo3 or bo5")
	ErrNotConfirmed     = errors.New("reset was not confirmed")
)
