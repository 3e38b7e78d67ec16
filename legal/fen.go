package legal

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a Board from a position string. Only the placement field is
// required; side to move, castling, en passant target and the clocks are read
// when present. Castling rights are validated but not kept.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty FEN", ErrInvalidNotation)
	}

	board := newBoard()

	// 1. Piece placement, rank 8 first
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: FEN has %d ranks, want 8", ErrInvalidNotation, len(ranks))
	}
	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return nil, fmt.Errorf("%w: empty rank description", ErrInvalidNotation)
		}
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			kind, ok := kindFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unrecognized piece character %q", ErrInvalidNotation, ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidNotation, rank+1)
			}
			if _, err := board.put(kind, NewSquare(file, rank)); err != nil {
				return nil, err
			}
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d does not have 8 columns", ErrInvalidNotation, rank+1)
		}
	}

	// 2. Side to move
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
			board.sideToMove = White
		case "b":
			board.sideToMove = Black
		default:
			return nil, fmt.Errorf("%w: side to move must be 'w' or 'b'", ErrInvalidNotation)
		}
	}

	// 3. Castling rights
	if len(fields) > 2 && fields[2] != "-" {
		for _, ch := range fields[2] {
			if !strings.ContainsRune("KQkq", ch) {
				return nil, fmt.Errorf("%w: invalid castling rights character %q", ErrInvalidNotation, ch)
			}
		}
	}

	// 4. En passant target square
	if len(fields) > 3 && fields[3] != "-" {
		target, err := ParseSquare(fields[3])
		if err != nil {
			return nil, err
		}
		if err := board.setEnPassantTarget(target); err != nil {
			return nil, err
		}
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return nil, fmt.Errorf("%w: halfmove clock is not a number", ErrInvalidNotation)
		}
		board.halfmoveClock = halfmove
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return nil, fmt.Errorf("%w: fullmove number is not a number", ErrInvalidNotation)
		}
		board.fullmoveNumber = fullmove
	}
	return board, nil
}

// setEnPassantTarget marks the pawn standing in front of target as the pawn
// that just advanced two squares.
func (b *Board) setEnPassantTarget(target Square) error {
	mover := b.sideToMove.Other()
	wantRank := 2
	if mover == Black {
		wantRank = 5
	}
	if target.Rank() != wantRank {
		return fmt.Errorf("%w: en passant square %s does not match side to move", ErrInvalidNotation, target)
	}
	fw := 1
	if mover == Black {
		fw = -1
	}
	p, ok := b.PieceAt(NewSquare(target.File(), target.Rank()+fw))
	if !ok || p.Kind != (Kind{mover, Pawn}) {
		return fmt.Errorf("%w: no pawn behind en passant square %s", ErrInvalidNotation, target)
	}
	b.epCandidate = p.ID
	return nil
}

// enPassantTarget returns the square a capturing pawn would land on.
func (b *Board) enPassantTarget() Square {
	p, ok := b.EnPassantCandidate()
	if !ok {
		return NoSquare
	}
	return NewSquare(p.Square.File(), p.Square.Rank()-p.forward())
}

// ToFEN produces the FEN string of the current position. Castling rights are
// always reported as "-".
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p, ok := b.PieceAt(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Kind.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	if b.sideToMove == White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}

	// 3. Castling rights
	sb.WriteString(" -")

	// 4. En passant square
	sb.WriteByte(' ')
	sb.WriteString(b.enPassantTarget().String())

	// 5-6. Clocks
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
