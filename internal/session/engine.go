package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/scrimgg/scrim/internal/random"
	"github.com/scrimgg/scrim/pkg/notify"
)

// Confirmer answers a yes/no prompt. Only Reset consults it; a declined
// confirmation leaves the session untouched.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Engine is the single authority over one match session. It owns the match
// format, phase, game counter, win counters, both team rosters, the per-game
// ban/pick scratch state, the pending trade selection, and the history
// ledger. Every operation is a synchronous, all-or-nothing state transition;
// the mutex keeps mutations strictly sequential under concurrent HTTP
// traffic.
type Engine struct {
	mu       sync.Mutex
	rng      *rand.Rand
	notifier notify.Notifier

	teamNameA string
	teamNameB string

	format        Format
	phase         Phase
	currentGame   int
	winsA         int
	winsB         int
	teamA         []PlayerAssignment
	teamB         []PlayerAssignment
	banPick       BanPick
	pendingWinner Side
	pendingTrade  *TradeSelection
	ledger        *Ledger
	matchWinner   string
	unseenChanges bool
}

// NewEngine creates a session in the Setup phase with a BO5 default format.
// A nil rng gets a crypto-seeded source; a nil notifier discards events.
func NewEngine(teamNameA, teamNameB string, rng *rand.Rand, notifier notify.Notifier) *Engine {
	if rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Engine{
		rng:       rng,
		notifier:  notifier,
		teamNameA: teamNameA,
		teamNameB: teamNameB,
		format:    FormatBO5,
		phase:     PhaseSetup,
		ledger:    NewLedger(),
	}
}

// SetFormat chooses the match format. Only valid during Setup.
func (e *Engine) SetFormat(f Format) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseSetup {
		return fmt.Errorf("%w: format can only change during setup", ErrWrongPhase)
	}
	if !f.IsValid() {
		return ErrInvalidFormat
	}
	e.format = f
	return nil
}

// FormTeams partitions a 10-player roster into two position-assigned sides
// and starts game 1. Requires a designated current user; a roster of the
// wrong size is rejected with no state touched.
func (e *Engine) FormTeams(roster []Participant, currentUser string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseSetup {
		return fmt.Errorf("%w: teams are already formed", ErrWrongPhase)
	}
	if len(roster) != RosterSize {
		return ErrRosterSize
	}
	if currentUser == "" {
		return ErrNoCurrentUser
	}

	e.teamA, e.teamB = formTeams(roster, e.rng)
	e.phase = PhaseActiveGame
	e.currentGame = 1
	e.winsA = 0
	e.winsB = 0
	e.clearScratch()

	e.notifier.Notify(fmt.Sprintf("Teams formed: %s vs %s!", e.teamNameA, e.teamNameB))
	return nil
}

// SetBan edits one ban scratch slot for a side. Scratch edits are free while
// a game is active; nothing is committed until the result is submitted.
func (e *Engine) SetBan(side Side, slot int, champion string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkScratchEdit(side, slot); err != nil {
		return err
	}
	if side == SideA {
		e.banPick.BansA[slot] = champion
	} else {
		e.banPick.BansB[slot] = champion
	}
	return nil
}

// SetPick edits one pick scratch slot for a side.
func (e *Engine) SetPick(side Side, slot int, champion string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkScratchEdit(side, slot); err != nil {
		return err
	}
	if side == SideA {
		e.banPick.PicksA[slot] = champion
	} else {
		e.banPick.PicksB[slot] = champion
	}
	return nil
}

// SelectWinner marks the tentative winner of the current game. It may be
// changed freely until the result is submitted.
func (e *Engine) SelectWinner(side Side) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseActiveGame {
		return fmt.Errorf("%w: no game is in progress", ErrWrongPhase)
	}
	if !side.IsValid() {
		return ErrInvalidSide
	}
	e.pendingWinner = side
	return nil
}

// SubmitGameResult commits the current game: increments the winner's counter,
// appends a sealed record to the history, and either completes the match or
// opens the between-games trade window. Rejected if no winner is selected.
func (e *Engine) SubmitGameResult() (*GameRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseActiveGame {
		return nil, fmt.Errorf("%w: no game is in progress", ErrWrongPhase)
	}
	if e.pendingWinner == "" {
		return nil, ErrNoWinnerSelected
	}

	winner := e.pendingWinner
	if winner == SideA {
		e.winsA++
	} else {
		e.winsB++
	}

	record := &GameRecord{
		GameNumber: e.currentGame,
		BansA:      compact(e.banPick.BansA),
		BansB:      compact(e.banPick.BansB),
		PicksA:     compact(e.banPick.PicksA),
		PicksB:     compact(e.banPick.PicksB),
		TeamA:      copyTeam(e.teamA),
		TeamB:      copyTeam(e.teamB),
		Winner:     winner,
		WinsA:      e.winsA,
		WinsB:      e.winsB,
		Trades:     []Trade{},
	}
	e.ledger.Append(record)
	e.clearScratch()
	e.unseenChanges = true

	e.notifier.Notify(fmt.Sprintf("Game %d result recorded!", record.GameNumber))

	wins := e.winsA
	winnerName := e.teamNameA
	if winner == SideB {
		wins = e.winsB
		winnerName = e.teamNameB
	}
	if wins >= e.format.WinThreshold() {
		e.matchWinner = winnerName
		e.phase = PhaseComplete
	} else {
		e.phase = PhaseBetweenGames
	}

	// The ledger's record stays amendable by trades; callers get a detached
	// copy they can read outside the lock.
	out := copyRecord(record)
	return &out, nil
}

// SelectTrade runs one step of the two-step trade protocol, valid only
// between games. The first selection arms a pending source; a second
// selection on the same side cancels it, a selection on the other side swaps
// the two assignments in place and logs the trade against the most recent
// game record. Assigned positions are not recomputed; they travel with the
// swap.
func (e *Engine) SelectTrade(side Side, slot int) (*TradeOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseBetweenGames {
		return nil, fmt.Errorf("%w: trades are only allowed between games", ErrWrongPhase)
	}
	if !side.IsValid() {
		return nil, ErrInvalidSide
	}
	if slot < 0 || slot >= TeamSize {
		return nil, ErrInvalidSlot
	}

	if e.pendingTrade == nil {
		e.pendingTrade = &TradeSelection{Side: side, Slot: slot}
		return &TradeOutcome{Status: TradeSelected}, nil
	}

	if e.pendingTrade.Side == side {
		e.pendingTrade = nil
		return &TradeOutcome{Status: TradeCancelled}, nil
	}

	source := e.pendingTrade
	from := e.teamFor(source.Side)[source.Slot]
	to := e.teamFor(side)[slot]

	e.teamFor(source.Side)[source.Slot] = to
	e.teamFor(side)[slot] = from
	e.pendingTrade = nil

	trade := Trade{From: from.Participant.Name, To: to.Participant.Name}
	if last := e.ledger.Latest(); last != nil {
		last.Trades = append(last.Trades, trade)
	}
	e.unseenChanges = true

	e.notifier.Notify(fmt.Sprintf("Trade completed: %s ↔ %s", trade.From, trade.To))
	return &TradeOutcome{Status: TradeCompleted, Trade: &trade}, nil
}

// StartNextGame leaves the trade window and begins the next game. Win
// counters and rosters carry over; scratch state and any pending trade
// selection are cleared.
func (e *Engine) StartNextGame() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseBetweenGames {
		return 0, fmt.Errorf("%w: the next game can only start between games", ErrWrongPhase)
	}

	e.currentGame++
	e.phase = PhaseActiveGame
	e.clearScratch()
	e.pendingTrade = nil

	e.notifier.Notify(fmt.Sprintf("Game %d is starting!", e.currentGame))
	return e.currentGame, nil
}

// Reset returns the session to Setup after confirmation, clearing the formed
// teams, counters, scratch state, and the entire history. The registered
// player roster and the current-user designation live outside the engine and
// survive.
func (e *Engine) Reset(confirmer Confirmer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if confirmer == nil || !confirmer.Confirm("Reset the match? (Player roster is preserved)") {
		return ErrNotConfirmed
	}

	e.phase = PhaseSetup
	e.currentGame = 0
	e.winsA = 0
	e.winsB = 0
	e.teamA = nil
	e.teamB = nil
	e.clearScratch()
	e.pendingTrade = nil
	e.ledger.Clear()
	e.matchWinner = ""
	e.unseenChanges = false

	e.notifier.Notify("Match reset. Ready for a new session.")
	return nil
}

// AcknowledgeChanges clears the unseen-changes flag raised by history and
// roster mutations.
func (e *Engine) AcknowledgeChanges() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.unseenChanges = false
}

// Snapshot returns a copy of the session state for display. Mutating the
// returned value does not affect the session.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := State{
		Phase:         e.phase,
		Format:        e.format,
		WinThreshold:  e.format.WinThreshold(),
		CurrentGame:   e.currentGame,
		TeamNameA:     e.teamNameA,
		TeamNameB:     e.teamNameB,
		WinsA:         e.winsA,
		WinsB:         e.winsB,
		TeamA:         copyTeam(e.teamA),
		TeamB:         copyTeam(e.teamB),
		BanPick:       e.banPick,
		PendingWinner: e.pendingWinner,
		MatchWinner:   e.matchWinner,
		UnseenChanges: e.unseenChanges,
	}
	if e.pendingTrade != nil {
		sel := *e.pendingTrade
		state.PendingTrade = &sel
	}
	return state
}

// History returns copies of every recorded game in submission order.
func (e *Engine) History() []GameRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	records := e.ledger.All()
	out := make([]GameRecord, 0, len(records))
	for _, r := range records {
		out = append(out, copyRecord(r))
	}
	return out
}

// --- internals ---

func (e *Engine) checkScratchEdit(side Side, slot int) error {
	if e.phase != PhaseActiveGame {
		return fmt.Errorf("%w: no game is in progress", ErrWrongPhase)
	}
	if !side.IsValid() {
		return ErrInvalidSide
	}
	if slot < 0 || slot >= TeamSize {
		return ErrInvalidSlot
	}
	return nil
}

func (e *Engine) teamFor(side Side) []PlayerAssignment {
	if side == SideA {
		return e.teamA
	}
	return e.teamB
}

func (e *Engine) clearScratch() {
	e.banPick = BanPick{}
	e.pendingWinner = ""
}

// compact drops empty scratch slots, keeping order. Records store only the
// bans and picks that were actually entered.
func compact(slots [TeamSize]string) []string {
	out := make([]string, 0, TeamSize)
	for _, s := range slots {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// copyRecord deep-copies a game record so readers never share slices with
// the amendable record held by the ledger.
func copyRecord(r *GameRecord) GameRecord {
	rec := *r
	rec.TeamA = copyTeam(r.TeamA)
	rec.TeamB = copyTeam(r.TeamB)
	rec.Trades = append([]Trade{}, r.Trades...)
	return rec
}

func copyTeam(team []PlayerAssignment) []PlayerAssignment {
	if team == nil {
		return nil
	}
	out := make([]PlayerAssignment, len(team))
	copy(out, team)
	return out
}
