package gcode

import (
	"bufio"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: travel above the sheet
	MoveScore                   // G1 in XY below the sheet surface
	MovePlunge                  // Z going down without XY movement
	MoveRetract                 // Z going up
	MoveFeed                    // G1 in XY above the sheet surface
)

// Move represents a single parsed movement.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// Length is the XY distance covered by the move.
func (m Move) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// Parse reads G0/G1 moves from a program, tracking the absolute position.
// Other commands and comments in ";" or "( )" form are skipped.
func Parse(code string) []Move {
	var moves []Move
	curX, curY, curZ, curFeed := 0.0, 0.0, 0.0, 0.0

	sc := bufio.NewScanner(strings.NewReader(code))
	for sc.Scan() {
		line := stripComment(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(strings.ToUpper(line))
		var rapid bool
		switch fields[0] {
		case "G0", "G00":
			rapid = true
		case "G1", "G01":
		default:
			continue
		}

		x, y, z, feed := curX, curY, curZ, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(strings.ToUpper(line), -1) {
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				x = v
			case "Y":
				y = v
			case "Z":
				z = v
			case "F":
				feed = v
			}
		}

		moves = append(moves, Move{
			Type:     classify(rapid, curX, curY, curZ, x, y, z),
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      x,
			ToY:      y,
			ToZ:      z,
			FeedRate: feed,
		})
		curX, curY, curZ, curFeed = x, y, z, feed
	}
	return moves
}

func stripComment(line string) string {
	if i := strings.Index(line, ";"); i >= 0 {
		line = line[:i]
	}
	for {
		i := strings.Index(line, "(")
		if i < 0 {
			break
		}
		j := strings.Index(line[i:], ")")
		if j < 0 {
			line = line[:i]
			break
		}
		line = line[:i] + line[i+j+1:]
	}
	return strings.TrimSpace(line)
}

func classify(rapid bool, fromX, fromY, fromZ, toX, toY, toZ float64) MoveType {
	hasXY := fromX != toX || fromY != toY
	switch {
	case toZ > fromZ+0.001:
		return MoveRetract
	case rapid:
		return MoveRapid
	case toZ < fromZ-0.001 && !hasXY:
		return MovePlunge
	case toZ < 0:
		return MoveScore
	default:
		return MoveFeed
	}
}

// Stats summarises a program.
type Stats struct {
	Strokes      int     // Score moves that start after a plunge
	ScoreLength  float64 // mm scored into the sheet
	TravelLength float64 // mm moved above the sheet
}

func Summarize(moves []Move) Stats {
	var s Stats
	prev := MoveRapid
	for _, m := range moves {
		switch m.Type {
		case MoveScore:
			s.ScoreLength += m.Length()
			if prev == MovePlunge {
				s.Strokes++
			}
		case MoveRapid, MoveFeed:
			s.TravelLength += m.Length()
		}
		prev = m.Type
	}
	return s
}
