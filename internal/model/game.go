package model

import (
	"sync"
)

type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseSelected          Phase = "selected"
	PhaseAwaitingPromotion Phase = "awaitingPromotion"
	PhaseGameOver          Phase = "gameOver"
)

// turnPhase is the interaction state. Each variant carries only the data
// valid in that state.
type turnPhase interface {
	phase() Phase
}

type idle struct{}

type selected struct {
	from  Position
	dests []Position
}

type awaitingPromotion struct {
	square Position
}

type gameOver struct {
	winner Color
}

func (idle) phase() Phase              { return PhaseIdle }
func (selected) phase() Phase          { return PhaseSelected }
func (awaitingPromotion) phase() Phase { return PhaseAwaitingPromotion }
func (gameOver) phase() Phase          { return PhaseGameOver }

// The Game owns one local chess session and drives its turn state machine.
type Game struct {
	mu       sync.Mutex
	state    State
	phase    turnPhase
	inCheck  bool
	fault    error
	history  []Ply
	captured CapturedPieces
}

// GameState is the full snapshot handed to the presentation layer.
type GameState struct {
	Board           Board          `json:"boardState"`
	ToMove          Color          `json:"toMove"`
	Phase           Phase          `json:"phase"`
	IsCheck         bool           `json:"isCheck"`
	GameOver        bool           `json:"gameOver"`
	Winner          *Color         `json:"winner"`
	SelectedSquare  *Position      `json:"selectedSquare"`
	LegalMoves      []Position     `json:"legalMoves"`
	PromotionSquare *Position      `json:"promotionSquare"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
	Castling        CastlingRights `json:"castling"`
	MoveHistory     []Ply          `json:"moveHistory"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	LastMove        *SimpleMove    `json:"lastMove"`
}

type Status struct {
	Turn     Color  `json:"turn"`
	InCheck  bool   `json:"inCheck"`
	GameOver bool   `json:"gameOver"`
	Winner   *Color `json:"winner,omitempty"`
}

// Selection is the outcome of a square click. Move is set when the click
// landed on a cached destination and played it.
type Selection struct {
	Phase      Phase       `json:"phase"`
	Selected   *Position   `json:"selected"`
	LegalMoves []Position  `json:"legalMoves"`
	Move       *MoveResult `json:"move,omitempty"`
}

type MoveResult struct {
	Applied           bool   `json:"applied"`
	RequiresPromotion bool   `json:"requiresPromotion"`
	Status            Status `json:"status"`
}

func NewGame() *Game {
	g := &Game{}
	g.reset()
	return g
}

// NewGameFromBoard starts a game from an arbitrary position with turn to
// move. Castling rights are granted wherever king and rook stand at home.
// The board is not validated; a missing king surfaces as ErrInvalidState.
func NewGameFromBoard(b Board, turn Color) *Game {
	g := &Game{
		state: State{
			Board:     b,
			Turn:      turn,
			EnPassant: NoPosition,
			Castling:  DeriveCastlingRights(&b),
		},
		phase:    idle{},
		history:  make([]Ply, 0),
		captured: newCapturedPieces(),
	}
	inCheck, mate, err := settle(&g.state)
	if err != nil {
		g.fault = err
		return g
	}
	g.inCheck = inCheck
	if mate {
		g.phase = gameOver{winner: turn.Opponent()}
	}
	return g
}

// Reset reinitializes the standard position from any state.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

func (g *Game) reset() {
	g.state = NewState()
	g.phase = idle{}
	g.inCheck = false
	g.fault = nil
	g.history = make([]Ply, 0)
	g.captured = newCapturedPieces()
}

func (g *Game) SelectSquare(sq Position) (Selection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.guard(); err != nil {
		return g.selection(), err
	}
	if !sq.Valid() {
		return g.selection(), moveError(ErrInvalidSquare, sq, NoPosition)
	}

	if sel, ok := g.phase.(selected); ok {
		if !contains(sel.dests, sq) {
			g.phase = idle{}
			return g.selection(), nil
		}
		result, err := g.commit(sel.from, sq)
		if err != nil {
			return g.selection(), err
		}
		out := g.selection()
		out.Move = &result
		return out, nil
	}

	piece := g.state.Board.at(sq)
	if piece.Empty() || piece.Color != g.state.Turn {
		return g.selection(), moveError(ErrIllegalMove, sq, NoPosition)
	}
	dests, err := LegalMoves(&g.state, sq)
	if err != nil {
		g.fault = err
		return g.selection(), err
	}
	if len(dests) == 0 {
		return g.selection(), moveError(ErrIllegalMove, sq, NoPosition)
	}
	g.phase = selected{from: sq, dests: dests}
	return g.selection(), nil
}

// AttemptMove plays from-to if it is legal for the side to move. A rejected
// move leaves the game untouched.
func (g *Game) AttemptMove(from, to Position) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.guard(); err != nil {
		return MoveResult{}, err
	}
	if !from.Valid() || !to.Valid() {
		return MoveResult{}, moveError(ErrInvalidSquare, from, to)
	}
	piece := g.state.Board.at(from)
	if piece.Empty() || piece.Color != g.state.Turn {
		return MoveResult{}, moveError(ErrIllegalMove, from, to)
	}

	var dests []Position
	if sel, ok := g.phase.(selected); ok && sel.from == from {
		dests = sel.dests
	} else {
		var err error
		if dests, err = LegalMoves(&g.state, from); err != nil {
			g.fault = err
			return MoveResult{}, err
		}
	}
	if !contains(dests, to) {
		return MoveResult{}, moveError(ErrIllegalMove, from, to)
	}
	return g.commit(from, to)
}

// ResolvePromotion finalizes the pawn awaiting promotion and passes the turn.
func (g *Game) ResolvePromotion(pieceType PieceType) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fault != nil {
		return Status{}, g.fault
	}
	pending, ok := g.phase.(awaitingPromotion)
	if !ok {
		if _, over := g.phase.(gameOver); over {
			return g.status(), ErrGameOver
		}
		return g.status(), ErrNoPromotionPending
	}
	if !validPromotion(pieceType) {
		return g.status(), ErrInvalidPromotion
	}

	next := g.state
	pawn := next.Board.at(pending.square)
	pawn.Type = pieceType
	next.Board.put(pending.square, pawn)
	mover := next.Turn
	next.Turn = mover.Opponent()

	inCheck, mate, err := settle(&next)
	if err != nil {
		g.fault = err
		return Status{}, err
	}
	g.state = next
	g.inCheck = inCheck
	if n := len(g.history); n > 0 {
		g.history[n-1].Promotion = pieceType
	}
	g.phase = idle{}
	if mate {
		g.phase = gameOver{winner: mover}
	}
	return g.status(), nil
}

func (g *Game) Status() (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fault != nil {
		return Status{}, g.fault
	}
	return g.status(), nil
}

// LegalMoves returns the legal destinations of the piece on from without
// changing the selection.
func (g *Game) LegalMoves(from Position) ([]Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fault != nil {
		return nil, g.fault
	}
	return LegalMoves(&g.state, from)
}

func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	status := g.status()
	snap := GameState{
		Board:           g.state.Board,
		ToMove:          g.state.Turn,
		Phase:           g.phase.phase(),
		IsCheck:         status.InCheck,
		GameOver:        status.GameOver,
		Winner:          status.Winner,
		LegalMoves:      make([]Position, 0),
		EnPassantTarget: ptr(g.state.EnPassant),
		Castling:        g.state.Castling,
		MoveHistory:     append(make([]Ply, 0, len(g.history)), g.history...),
		CapturedPieces:  g.captured.clone(),
	}
	switch p := g.phase.(type) {
	case selected:
		snap.SelectedSquare = ptr(p.from)
		snap.LegalMoves = append(snap.LegalMoves, p.dests...)
	case awaitingPromotion:
		snap.PromotionSquare = ptr(p.square)
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		snap.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	return snap
}

// guard rejects any move or selection outside Idle/Selected.
func (g *Game) guard() error {
	if g.fault != nil {
		return g.fault
	}
	switch g.phase.(type) {
	case awaitingPromotion:
		return ErrPromotionPending
	case gameOver:
		return ErrGameOver
	}
	return nil
}

// commit plays an already validated move on a copy of the position and
// installs it only once the follow-up evaluation succeeded.
func (g *Game) commit(from, to Position) (MoveResult, error) {
	next := g.state
	ply := next.apply(from, to)

	if isPromotion(ply.Piece, to) {
		g.state = next
		g.inCheck = false
		g.record(ply)
		g.phase = awaitingPromotion{square: to}
		return MoveResult{Applied: true, RequiresPromotion: true, Status: g.status()}, nil
	}

	mover := next.Turn
	next.Turn = mover.Opponent()
	inCheck, mate, err := settle(&next)
	if err != nil {
		g.fault = err
		return MoveResult{}, err
	}
	g.state = next
	g.inCheck = inCheck
	g.record(ply)
	g.phase = idle{}
	if mate {
		g.phase = gameOver{winner: mover}
	}
	return MoveResult{Applied: true, Status: g.status()}, nil
}

func (g *Game) record(ply Ply) {
	g.history = append(g.history, ply)
	if ply.CapturedPiece != nil {
		g.captured.add(ply.Piece.Color, *ply.CapturedPiece)
	}
}

// settle evaluates check and checkmate for the side to move in s.
func settle(s *State) (inCheck, mate bool, err error) {
	if inCheck, err = InCheck(s); err != nil {
		return false, false, err
	}
	if !inCheck {
		return false, false, nil
	}
	mate, err = IsCheckmate(s)
	return inCheck, mate, err
}

func (g *Game) status() Status {
	st := Status{Turn: g.state.Turn, InCheck: g.inCheck}
	if over, ok := g.phase.(gameOver); ok {
		winner := over.winner
		st.GameOver = true
		st.Winner = &winner
	}
	return st
}

func (g *Game) selection() Selection {
	sel := Selection{Phase: g.phase.phase(), LegalMoves: make([]Position, 0)}
	if p, ok := g.phase.(selected); ok {
		sel.Selected = ptr(p.from)
		sel.LegalMoves = append(sel.LegalMoves, p.dests...)
	}
	return sel
}

func contains(squares []Position, sq Position) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
