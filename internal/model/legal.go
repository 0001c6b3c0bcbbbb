package model

import "fmt"

// LegalMoves returns the destinations of the piece on from that do not leave
// its own king in check. Each candidate is played on a copy of s and the
// copy's king is rescanned.
func LegalMoves(s *State, from Position) ([]Position, error) {
	if !from.Valid() {
		return nil, moveError(ErrInvalidSquare, from, NoPosition)
	}
	piece := s.Board.at(from)
	if piece.Empty() {
		return []Position{}, nil
	}
	king, err := FindKing(&s.Board, piece.Color)
	if err != nil {
		return nil, err
	}

	candidates := PseudoLegalMoves(&s.Board, piece, s.EnPassant)
	if piece.Type == King {
		// a king may not step onto a square attacked right now
		safe := candidates[:0]
		for _, to := range candidates {
			if !IsCheckAt(&s.Board, king, to) {
				safe = append(safe, to)
			}
		}
		candidates = append(safe, castlingMoves(s, king)...)
	}

	legal := make([]Position, 0, len(candidates))
	for _, to := range candidates {
		sim := *s
		sim.apply(from, to)
		simKing := king
		if piece.Type == King {
			simKing = sim.Board.at(to)
		}
		if !IsCheck(&sim.Board, simKing) {
			legal = append(legal, to)
		}
	}
	return legal, nil
}

// AllLegalMoves returns every legal move for the side to move.
func AllLegalMoves(s *State) ([]SimpleMove, error) {
	moves := []SimpleMove{}
	for _, piece := range s.Board.Pieces(s.Turn) {
		dests, err := LegalMoves(s, piece.Position)
		if err != nil {
			return nil, err
		}
		for _, to := range dests {
			moves = append(moves, SimpleMove{From: piece.Position, To: to})
		}
	}
	return moves, nil
}

// InCheck reports whether the side to move is in check.
func InCheck(s *State) (bool, error) {
	king, err := FindKing(&s.Board, s.Turn)
	if err != nil {
		return false, err
	}
	return IsCheck(&s.Board, king), nil
}

// IsCheckmate reports whether the side to move is in check with no legal
// move. A side with no legal move that is not in check is not reported.
func IsCheckmate(s *State) (bool, error) {
	inCheck, err := InCheck(s)
	if err != nil || !inCheck {
		return false, err
	}
	for _, piece := range s.Board.Pieces(s.Turn) {
		dests, err := LegalMoves(s, piece.Position)
		if err != nil {
			return false, fmt.Errorf("checkmate scan: %w", err)
		}
		if len(dests) > 0 {
			return false, nil
		}
	}
	return true, nil
}
