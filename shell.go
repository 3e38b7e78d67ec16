package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chess-legality/legal"
	"chess-legality/oracle"
)

func main() {
	shellLoop(os.Stdin, os.Stdout)
}

// shellLoop reads one command per line from in and answers on out until
// quit or end of input. Moves alternate between the sides.
func shellLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	game := legal.NewGame()

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit":
			return
		case "position":
			next, err := setPosition(tokens[1:])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			game = next
		case "reset":
			game.Reset()
		case "d":
			printBoard(out, game)
		case "status":
			side := game.SideToMove()
			fmt.Fprintf(out, "%s to move: %s\n", side, game.Status(side))
		case "legal":
			if err := printLegal(out, game, tokens[1:]); err != nil {
				fmt.Fprintln(out, "error:", err)
			}
		case "move":
			if len(tokens) != 2 {
				fmt.Fprintln(out, "error: usage: move <from><to>")
				continue
			}
			if err := playMove(game, tokens[1]); err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			side := game.SideToMove()
			if st := game.Status(side); st != legal.Ongoing {
				fmt.Fprintf(out, "%s: %s\n", side, st)
			}
		case "perft":
			if len(tokens) != 2 {
				fmt.Fprintln(out, "error: usage: perft <depth>")
				continue
			}
			depth, err := strconv.Atoi(tokens[1])
			if err != nil || depth < 1 {
				fmt.Fprintln(out, "error: depth must be a positive number")
				continue
			}
			fmt.Fprintf(out, "nodes %d\n", legal.Perft(game, depth))
		case "verify":
			name := "dragontooth"
			if len(tokens) > 1 {
				name = tokens[1]
			}
			ref, err := oracle.Lookup(name)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			if err := oracle.Diff(ref, game); err != nil {
				fmt.Fprintln(out, "mismatch:", err)
				continue
			}
			fmt.Fprintf(out, "ok: %s agrees\n", ref.Name())
		case "stats":
			_, _ = game.Stats().WriteTo(out)
		default:
			fmt.Fprintln(out, "error: unknown command:", line)
		}
	}
}

// setPosition handles "startpos [moves ...]" and "fen <fields> [moves ...]".
func setPosition(args []string) (*legal.Engine, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("malformed position command")
	}
	rest := args[1:]
	var fen string
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = legal.FENStartPos
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		if i == 0 {
			return nil, fmt.Errorf("invalid fen position")
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		return nil, fmt.Errorf("invalid position subcommand %q", args[0])
	}

	game, err := legal.NewEngine(fen)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return game, nil
	}
	if strings.ToLower(rest[0]) != "moves" {
		return nil, fmt.Errorf("expected moves, got %q", rest[0])
	}
	for _, mv := range rest[1:] {
		if err := playMove(game, mv); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// playMove plays a coordinate move for the side to move.
func playMove(game *legal.Engine, movestr string) error {
	m, err := legal.ParseMove(movestr)
	if err != nil {
		return err
	}
	p, ok := game.PieceAt(m.From)
	if !ok {
		return fmt.Errorf("%w: no piece on %s", legal.ErrIllegalMove, m.From)
	}
	if p.Color() != game.SideToMove() {
		return fmt.Errorf("%w: %s to move", legal.ErrIllegalMove, game.SideToMove())
	}
	return game.MovePiece(p, m.To)
}

// printLegal lists the legal moves of one piece, or of every piece of the
// side to move.
func printLegal(out io.Writer, game *legal.Engine, args []string) error {
	if len(args) > 0 {
		sq, err := legal.ParseSquare(args[0])
		if err != nil {
			return err
		}
		p, ok := game.PieceAt(sq)
		if !ok {
			return fmt.Errorf("no piece on %s", sq)
		}
		fmt.Fprintf(out, "%s:%s\n", p, squareList(game.LegalMoves(p)))
		return nil
	}
	side := game.SideToMove()
	for _, p := range game.Pieces(side) {
		if moves := game.LegalMoves(p); len(moves) > 0 {
			fmt.Fprintf(out, "%s:%s\n", p, squareList(moves))
		}
	}
	fmt.Fprintf(out, "total %d\n", game.TotalLegalMoveCount(side))
	return nil
}

func squareList(squares []legal.Square) string {
	var sb strings.Builder
	for _, sq := range squares {
		sb.WriteByte(' ')
		sb.WriteString(sq.String())
	}
	return sb.String()
}

// printBoard draws the position with rank 8 on top, followed by the FEN.
func printBoard(out io.Writer, game *legal.Engine) {
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(rank + 1))
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			if p, ok := game.PieceAt(legal.NewSquare(file, rank)); ok {
				sb.WriteByte(p.Kind.Letter())
			} else {
				sb.WriteByte('.')
			}
		}
		fmt.Fprintln(out, sb.String())
	}
	fmt.Fprintln(out, "  a b c d e f g h")
	fmt.Fprintln(out, "fen", game.FEN())
	for _, c := range [...]legal.Color{legal.White, legal.Black} {
		if checkers := game.Checkers(c); len(checkers) > 0 {
			fmt.Fprintf(out, "%s in check from", c)
			for _, p := range checkers {
				fmt.Fprintf(out, " %s", p.Square)
			}
			fmt.Fprintln(out)
		}
	}
}
