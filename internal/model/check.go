package model

import "fmt"

// AttackSet returns the squares piece threatens. Pawns threaten their two
// forward diagonals and the king its raw neighbourhood; every other piece
// threatens its pseudo-legal destinations.
func AttackSet(b *Board, piece Piece) []Position {
	switch piece.Type {
	case Pawn:
		return pawnAttacks(piece)
	case King:
		return kingRawSquares(piece)
	default:
		return PseudoLegalMoves(b, piece, NoPosition)
	}
}

// Attacker returns the first piece of color by that attacks sq.
func Attacker(b *Board, sq Position, by Color) (Piece, bool) {
	for _, piece := range b.Pieces(by) {
		for _, target := range AttackSet(b, piece) {
			if target == sq {
				return piece, true
			}
		}
	}
	return Piece{}, false
}

func IsAttacked(b *Board, sq Position, by Color) bool {
	_, ok := Attacker(b, sq, by)
	return ok
}

// IsCheck reports whether king is attacked where it stands.
func IsCheck(b *Board, king Piece) bool {
	return IsAttacked(b, king.Position, king.Color.Opponent())
}

// IsCheckAt reports whether king would be attacked on sq, evaluated on the
// board as it is now.
func IsCheckAt(b *Board, king Piece, sq Position) bool {
	return IsAttacked(b, sq, king.Color.Opponent())
}

// FindKing locates color's king. A board without one is ErrInvalidState.
func FindKing(b *Board, color Color) (Piece, error) {
	for _, piece := range b.cells {
		if piece.Type == King && piece.Color == color {
			return piece, nil
		}
	}
	return Piece{}, fmt.Errorf("no %s king on board: %w", color, ErrInvalidState)
}
