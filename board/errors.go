package board

import "errors"

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNoKing        = errors.New("each side needs exactly one king")
)
