package model

import (
	"errors"
	"math/rand"
	"testing"
)

// rayAttacked scans outward from target for attackers, independently of
// the move generator.
func rayAttacked(b *Board, target Position, by Color) bool {
	hits := func(pos Position, types ...PieceType) bool {
		p := b.at(pos)
		if p.Empty() || p.Color != by {
			return false
		}
		for _, t := range types {
			if p.Type == t {
				return true
			}
		}
		return false
	}
	for _, dirs := range []struct {
		dirs  []direction
		types []PieceType
	}{
		{rookDirs, []PieceType{Rook, Queen}},
		{bishopDirs, []PieceType{Bishop, Queen}},
	} {
		for _, d := range dirs.dirs {
			pos := target.add(d.dr, d.dc)
			for pos.Valid() {
				if !b.at(pos).Empty() {
					if hits(pos, dirs.types...) {
						return true
					}
					break
				}
				pos = pos.add(d.dr, d.dc)
			}
		}
	}
	for _, d := range knightDirs {
		if pos := target.add(d.dr, d.dc); pos.Valid() && hits(pos, Knight) {
			return true
		}
	}
	for _, d := range kingDirs {
		if pos := target.add(d.dr, d.dc); pos.Valid() && hits(pos, King) {
			return true
		}
	}
	// an attacking pawn sits one step behind target from its own view
	for _, dc := range []int{-1, 1} {
		if pos := target.add(-by.forward(), dc); pos.Valid() && hits(pos, Pawn) {
			return true
		}
	}
	return false
}

func TestIsAttackedMatchesRayScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 12; game++ {
		g := NewGame()
		for ply := 0; ply < 60; ply++ {
			s := g.state
			for _, by := range []Color{White, Black} {
				for row := 0; row < 8; row++ {
					for col := 0; col < 8; col++ {
						pos := Position{Row: row, Col: col}
						if occ := s.Board.at(pos); !occ.Empty() && occ.Color == by {
							continue
						}
						if got, want := IsAttacked(&s.Board, pos, by), rayAttacked(&s.Board, pos, by); got != want {
							t.Fatalf("game %d ply %d: IsAttacked(%v, %s) = %v, ray scan %v\n%s",
								game, ply, pos, by, got, want, toFEN(&s))
						}
					}
				}
			}
			if !playRandom(t, g, rng) {
				break
			}
		}
	}
}

// playRandom plays one random legal move, promoting to a queen. It returns
// false when the side to move has nothing to play or the game ended.
func playRandom(t *testing.T, g *Game, rng *rand.Rand) bool {
	t.Helper()
	if g.Snapshot().GameOver {
		return false
	}
	moves, err := AllLegalMoves(&g.state)
	if err != nil {
		t.Fatalf("AllLegalMoves: %v", err)
	}
	if len(moves) == 0 {
		return false
	}
	m := moves[rng.Intn(len(moves))]
	res, err := g.AttemptMove(m.From, m.To)
	if err != nil {
		t.Fatalf("AttemptMove(%v-%v): %v\n%s", m.From, m.To, err, toFEN(&g.state))
	}
	if res.RequiresPromotion {
		if _, err := g.ResolvePromotion(Queen); err != nil {
			t.Fatalf("ResolvePromotion: %v", err)
		}
	}
	return true
}

func TestAttacker(t *testing.T) {
	b := place(t, "wKe1", "bRe8", "bKa8", "wPd2")

	piece, ok := Attacker(&b, sq("e1"), Black)
	if !ok || piece.Type != Rook || piece.Position != sq("e8") {
		t.Errorf("Attacker(e1) = %+v, %v; want black rook on e8", piece, ok)
	}
	if _, ok := Attacker(&b, sq("d1"), Black); ok {
		t.Error("d1 reported attacked")
	}
	// pawns threaten diagonals, not their push square
	if !IsAttacked(&b, sq("c3"), White) || !IsAttacked(&b, sq("e3"), White) {
		t.Error("pawn diagonals not attacked")
	}
	if IsAttacked(&b, sq("d3"), White) {
		t.Error("pawn push square reported attacked")
	}
}

func TestIsCheck(t *testing.T) {
	b := place(t, "wKe1", "bBb4", "bKe8")
	king := b.at(sq("e1"))
	if !IsCheck(&b, king) {
		t.Error("bishop check not detected")
	}
	if IsCheckAt(&b, king, sq("f1")) {
		t.Error("f1 reported attacked")
	}
	if !IsCheckAt(&b, king, sq("d2")) {
		t.Error("d2 not reported attacked")
	}
}

func TestFindKing(t *testing.T) {
	b := place(t, "wKe1", "bQd8")
	king, err := FindKing(&b, White)
	if err != nil || king.Position != sq("e1") {
		t.Errorf("FindKing(white) = %+v, %v", king, err)
	}
	if _, err := FindKing(&b, Black); !errors.Is(err, ErrInvalidState) {
		t.Errorf("FindKing(black) error = %v, want ErrInvalidState", err)
	}
}
