package model

type Side string

const (
	Kingside  Side = "kingside"
	Queenside Side = "queenside"
)

const kingHomeCol = 4

// CastlingRights records, per color and side, whether neither the king nor
// that side's rook has left its home square.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func allCastlingRights() CastlingRights {
	return CastlingRights{true, true, true, true}
}

func (r CastlingRights) Has(color Color, side Side) bool {
	switch {
	case color == White && side == Kingside:
		return r.WhiteKingside
	case color == White && side == Queenside:
		return r.WhiteQueenside
	case color == Black && side == Kingside:
		return r.BlackKingside
	case color == Black && side == Queenside:
		return r.BlackQueenside
	}
	return false
}

func (r *CastlingRights) revoke(color Color, side Side) {
	switch {
	case color == White && side == Kingside:
		r.WhiteKingside = false
	case color == White && side == Queenside:
		r.WhiteQueenside = false
	case color == Black && side == Kingside:
		r.BlackKingside = false
	case color == Black && side == Queenside:
		r.BlackQueenside = false
	}
}

type castleSide struct {
	side    Side
	rookCol int
	rookTo  int
	kingTo  int
	between []int // must be empty
	path    []int // king transit incl. landing, must not be attacked
}

var castleSides = []castleSide{
	{side: Kingside, rookCol: 7, rookTo: 5, kingTo: 6, between: []int{5, 6}, path: []int{5, 6}},
	{side: Queenside, rookCol: 0, rookTo: 3, kingTo: 2, between: []int{1, 2, 3}, path: []int{3, 2}},
}

// DeriveCastlingRights grants a right wherever the king and the rook still
// stand on their home squares.
func DeriveCastlingRights(b *Board) CastlingRights {
	var rights CastlingRights
	for _, color := range []Color{White, Black} {
		row := color.homeRow()
		king := b.at(Position{Row: row, Col: kingHomeCol})
		if king.Type != King || king.Color != color {
			continue
		}
		for _, cs := range castleSides {
			rook := b.at(Position{Row: row, Col: cs.rookCol})
			if rook.Type == Rook && rook.Color == color {
				switch {
				case color == White && cs.side == Kingside:
					rights.WhiteKingside = true
				case color == White && cs.side == Queenside:
					rights.WhiteQueenside = true
				case color == Black && cs.side == Kingside:
					rights.BlackKingside = true
				case color == Black && cs.side == Queenside:
					rights.BlackQueenside = true
				}
			}
		}
	}
	return rights
}

// State is the rules-relevant part of a game. It is a plain value; copying it
// yields an independent position to simulate on.
type State struct {
	Board     Board
	Turn      Color
	EnPassant Position
	Castling  CastlingRights
}

func NewState() State {
	return State{
		Board:     NewStandardBoard(),
		Turn:      White,
		EnPassant: NoPosition,
		Castling:  allCastlingRights(),
	}
}

// castlingMoves returns the king destinations reachable by castling.
func castlingMoves(s *State, king Piece) []Position {
	row := king.Color.homeRow()
	if king.Position != (Position{Row: row, Col: kingHomeCol}) {
		return nil
	}
	enemy := king.Color.Opponent()
	if IsAttacked(&s.Board, king.Position, enemy) {
		return nil
	}
	moves := []Position{}
	for _, cs := range castleSides {
		if !s.Castling.Has(king.Color, cs.side) {
			continue
		}
		rook := s.Board.at(Position{Row: row, Col: cs.rookCol})
		if rook.Type != Rook || rook.Color != king.Color {
			continue
		}
		if !castleLaneClear(s, row, cs, enemy) {
			continue
		}
		moves = append(moves, Position{Row: row, Col: cs.kingTo})
	}
	return moves
}

func castleLaneClear(s *State, row int, cs castleSide, enemy Color) bool {
	for _, col := range cs.between {
		if !s.Board.at(Position{Row: row, Col: col}).Empty() {
			return false
		}
	}
	for _, col := range cs.path {
		if IsAttacked(&s.Board, Position{Row: row, Col: col}, enemy) {
			return false
		}
	}
	return true
}

func isPromotion(piece Piece, to Position) bool {
	return piece.Type == Pawn && to.Row == piece.Color.lastRow()
}

func validPromotion(t PieceType) bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// apply performs the structural part of a move on s: relocation, the castling
// rook, en passant capture, castling rights and the en passant target. It
// neither switches the turn nor resolves promotion.
func (s *State) apply(from, to Position) Ply {
	piece := s.Board.at(from)
	ply := Ply{Piece: piece, From: from, To: to}
	if captured := s.Board.at(to); !captured.Empty() {
		ply.CapturedPiece = &captured
	}
	s.Board.relocate(from, to)

	switch piece.Type {
	case King:
		ply.CastleRookMove = s.handleCastle(from, to)
	case Pawn:
		if ply.CapturedPiece == nil && to == s.EnPassant && from.Col != to.Col {
			// the captured pawn sits beside the mover, one rank behind to
			victimSq := Position{Row: from.Row, Col: to.Col}
			victim := s.Board.at(victimSq)
			s.Board.clear(victimSq)
			ply.CapturedPiece = &victim
			ply.EnPassant = true
		}
	}

	s.updateCastlingRights(piece, from, to)

	s.EnPassant = NoPosition
	if piece.Type == Pawn && abs(to.Row-from.Row) == 2 {
		s.EnPassant = Position{Row: (from.Row + to.Row) / 2, Col: from.Col}
	}
	return ply
}

func (s *State) handleCastle(from, to Position) *CastleRookMove {
	if abs(to.Col-from.Col) != 2 {
		return nil
	}
	for _, cs := range castleSides {
		if to.Col != cs.kingTo {
			continue
		}
		rookMove := &CastleRookMove{
			From: Position{Row: from.Row, Col: cs.rookCol},
			To:   Position{Row: from.Row, Col: cs.rookTo},
		}
		s.Board.relocate(rookMove.From, rookMove.To)
		return rookMove
	}
	return nil
}

func (s *State) updateCastlingRights(piece Piece, from, to Position) {
	if piece.Type == King {
		s.Castling.revoke(piece.Color, Kingside)
		s.Castling.revoke(piece.Color, Queenside)
	}
	// a rook leaving its corner, or being captured there
	for _, color := range []Color{White, Black} {
		for _, cs := range castleSides {
			corner := Position{Row: color.homeRow(), Col: cs.rookCol}
			if from == corner || to == corner {
				s.Castling.revoke(color, cs.side)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
