package model

import (
	"encoding/json"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta a pawn of this color advances by.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// homeRow is the back rank; pawnRow is where pawns start.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) pawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

// lastRow is the rank a pawn of this color promotes on.
func (c Color) lastRow() int {
	return c.Opponent().homeRow()
}

// Position is a square as (row, col). Row 0 is black's back rank.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoPosition marks an unset optional square.
var NoPosition = Position{Row: -1, Col: -1}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) index() int {
	return p.Row*8 + p.Col
}

// String renders the square as file+rank, e.g. "e2".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

func ptr(p Position) *Position {
	if !p.Valid() {
		return nil
	}
	return &p
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
}

// Empty reports whether this is the zero piece stored in vacant cells.
func (p Piece) Empty() bool {
	return p.Type == ""
}

// Board is a flat 64-cell grid indexed by row*8+col. It holds no references,
// so plain assignment is a full copy.
type Board struct {
	cells [64]Piece
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the 32-piece starting layout.
func NewStandardBoard() Board {
	var b Board
	for col := 0; col < 8; col++ {
		for _, c := range []Color{White, Black} {
			b.put(Position{Row: c.homeRow(), Col: col}, Piece{Type: backRank[col], Color: c})
			b.put(Position{Row: c.pawnRow(), Col: col}, Piece{Type: Pawn, Color: c})
		}
	}
	return b
}

// Clone returns an independent copy.
func (b *Board) Clone() Board {
	return *b
}

// Get returns the piece at pos, or the zero piece when the cell is empty.
func (b *Board) Get(pos Position) (Piece, error) {
	if !pos.Valid() {
		return Piece{}, fmt.Errorf("get %v: %w", pos, ErrInvalidSquare)
	}
	return b.at(pos), nil
}

// Set stores piece at pos, stamping its Position. A zero piece clears the cell.
func (b *Board) Set(pos Position, piece Piece) error {
	if !pos.Valid() {
		return fmt.Errorf("set %v: %w", pos, ErrInvalidSquare)
	}
	b.put(pos, piece)
	return nil
}

func (b *Board) at(pos Position) Piece {
	return b.cells[pos.index()]
}

func (b *Board) put(pos Position, piece Piece) {
	if piece.Empty() {
		b.cells[pos.index()] = Piece{}
		return
	}
	piece.Position = pos
	b.cells[pos.index()] = piece
}

func (b *Board) clear(pos Position) {
	b.cells[pos.index()] = Piece{}
}

// relocate moves whatever stands on from to to, overwriting to.
func (b *Board) relocate(from, to Position) {
	piece := b.at(from)
	b.clear(from)
	b.put(to, piece)
}

// Pieces returns every piece of the given color in board order.
func (b *Board) Pieces(color Color) []Piece {
	pieces := make([]Piece, 0, 16)
	for _, p := range b.cells {
		if !p.Empty() && p.Color == color {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Grid returns rows of nullable pieces for rendering.
func (b Board) Grid() [][]*Piece {
	grid := make([][]*Piece, 8)
	for row := 0; row < 8; row++ {
		grid[row] = make([]*Piece, 8)
		for col := 0; col < 8; col++ {
			if p := b.at(Position{Row: row, Col: col}); !p.Empty() {
				grid[row][col] = &p
			}
		}
	}
	return grid
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Grid())
}
