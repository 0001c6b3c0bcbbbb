package model

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var boardOpt = cmp.AllowUnexported(Board{})

// sq parses "e2" style square names.
func sq(name string) Position {
	return Position{Row: 8 - int(name[1]-'0'), Col: int(name[0] - 'a')}
}

func squares(names ...string) []Position {
	out := make([]Position, 0, len(names))
	for _, n := range names {
		out = append(out, sq(n))
	}
	return out
}

var letterTypes = map[byte]PieceType{'K': King, 'Q': Queen, 'R': Rook, 'B': Bishop, 'N': Knight, 'P': Pawn}

// place builds a board from codes like "wKe1" or "bPd7".
func place(t *testing.T, codes ...string) Board {
	t.Helper()
	var b Board
	for _, code := range codes {
		color := White
		if code[0] == 'b' {
			color = Black
		}
		pt, ok := letterTypes[code[1]]
		if !ok {
			t.Fatalf("bad piece code %q", code)
		}
		if err := b.Set(sq(code[2:]), Piece{Type: pt, Color: color}); err != nil {
			t.Fatalf("place %q: %v", code, err)
		}
	}
	return b
}

func sortSquares(in []Position) []Position {
	out := append([]Position(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func assertSquares(t *testing.T, got, want []Position) {
	t.Helper()
	if diff := cmp.Diff(sortSquares(want), sortSquares(got)); diff != "" {
		t.Errorf("squares mismatch (-want +got):\n%s", diff)
	}
}

func mustPlay(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		from, to := sq(m[:2]), sq(m[len(m)-2:])
		res, err := g.AttemptMove(from, to)
		if err != nil {
			t.Fatalf("AttemptMove(%s) error: %v", m, err)
		}
		if !res.Applied {
			t.Fatalf("AttemptMove(%s) not applied", m)
		}
	}
}

// toFEN renders the rules state for the external oracle.
func toFEN(s *State) string {
	var sb strings.Builder
	letters := map[PieceType]byte{King: 'k', Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n', Pawn: 'p'}
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := s.Board.at(Position{Row: row, Col: col})
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			l := letters[p.Type]
			if p.Color == White {
				l -= 'a' - 'A'
			}
			sb.WriteByte(l)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	if s.Turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	rights := ""
	if s.Castling.WhiteKingside {
		rights += "K"
	}
	if s.Castling.WhiteQueenside {
		rights += "Q"
	}
	if s.Castling.BlackKingside {
		rights += "k"
	}
	if s.Castling.BlackQueenside {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)
	if s.EnPassant.Valid() {
		sb.WriteString(" " + s.EnPassant.String())
	} else {
		sb.WriteString(" -")
	}
	sb.WriteString(" 0 1")
	return sb.String()
}
