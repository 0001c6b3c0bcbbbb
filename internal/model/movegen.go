package model

type direction struct {
	dr, dc int
}

var (
	rookDirs   = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs   = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// PseudoLegalMoves returns the destinations piece can reach by its movement
// pattern, ignoring whether its own king is left in check. Castling is not
// included; see castlingMoves. enPassant may be NoPosition.
func PseudoLegalMoves(b *Board, piece Piece, enPassant Position) []Position {
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, piece, enPassant)
	case Knight:
		return stepMoves(b, piece, knightDirs)
	case Bishop:
		return slidingMoves(b, piece, bishopDirs)
	case Rook:
		return slidingMoves(b, piece, rookDirs)
	case Queen:
		return append(slidingMoves(b, piece, bishopDirs), slidingMoves(b, piece, rookDirs)...)
	case King:
		return stepMoves(b, piece, kingDirs)
	default:
		return nil
	}
}

func pawnMoves(b *Board, piece Piece, enPassant Position) []Position {
	moves := []Position{}
	fwd := piece.Color.forward()
	from := piece.Position

	// Forward 1, then forward 2 from the starting rank
	one := from.add(fwd, 0)
	if one.Valid() && b.at(one).Empty() {
		moves = append(moves, one)
		two := from.add(2*fwd, 0)
		if from.Row == piece.Color.pawnRow() && b.at(two).Empty() {
			moves = append(moves, two)
		}
	}
	for _, dc := range []int{-1, 1} {
		target := from.add(fwd, dc)
		if !target.Valid() {
			continue
		}
		if occupant := b.at(target); !occupant.Empty() && occupant.Color != piece.Color {
			moves = append(moves, target)
		} else if target == enPassant {
			moves = append(moves, target)
		}
	}
	return moves
}

// pawnAttacks are the two forward diagonals, whatever stands on them.
func pawnAttacks(piece Piece) []Position {
	attacks := make([]Position, 0, 2)
	for _, dc := range []int{-1, 1} {
		if target := piece.Position.add(piece.Color.forward(), dc); target.Valid() {
			attacks = append(attacks, target)
		}
	}
	return attacks
}

func stepMoves(b *Board, piece Piece, dirs []direction) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := piece.Position.add(dir.dr, dir.dc)
		if !target.Valid() {
			continue
		}
		if occupant := b.at(target); occupant.Empty() || occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slidingMoves(b *Board, piece Piece, dirs []direction) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := piece.Position.add(dir.dr, dir.dc)
		for target.Valid() {
			occupant := b.at(target)
			if occupant.Empty() {
				moves = append(moves, target)
			} else {
				if occupant.Color != piece.Color {
					moves = append(moves, target)
				}
				break
			}
			target = target.add(dir.dr, dir.dc)
		}
	}
	return moves
}

// kingRawSquares is every on-board neighbour of the king, occupied or not.
func kingRawSquares(piece Piece) []Position {
	squares := make([]Position, 0, 8)
	for _, dir := range kingDirs {
		if target := piece.Position.add(dir.dr, dir.dc); target.Valid() {
			squares = append(squares, target)
		}
	}
	return squares
}
