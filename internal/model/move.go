package model

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply is one committed half-move as recorded in the game history.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
	Promotion      PieceType       `json:"promotion,omitempty"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// add files a piece under the color that captured it.
func (c *CapturedPieces) add(by Color, piece Piece) {
	switch by {
	case White:
		c.White = append(c.White, piece)
	case Black:
		c.Black = append(c.Black, piece)
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]Piece, 0, len(c.White)), c.White...),
		Black: append(make([]Piece, 0, len(c.Black)), c.Black...),
	}
}
