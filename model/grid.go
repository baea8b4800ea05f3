package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrFatalLoad = errors.New("map cannot be loaded")

// NoIndex is returned by Index for positions outside the grid.
const NoIndex = -1

const maxRowLength = 1 << 20

// LoadGrid parses map text, one row per line.
func LoadGrid(text string) (*Grid, error) {
	return ReadGrid(strings.NewReader(text))
}

// ReadGrid parses a rectangular map from reader. Rows must all have the same
// length and contain only terrain characters.
func ReadGrid(reader io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 4096), maxRowLength)
	scanner.Split(bufio.ScanLines)

	lines := make([]string, 0)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalLoad, err)
	}
	// trailing empty lines are not rows
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrFatalLoad)
	}

	width := len(lines[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: empty first row", ErrFatalLoad)
	}
	cells := make([]byte, 0, width*len(lines))
	for row, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrFatalLoad, row, len(line), width)
		}
		for col := 0; col < len(line); col++ {
			if !isTerrain(line[col]) {
				return nil, fmt.Errorf("%w: unexpected %q at row %d col %d", ErrFatalLoad, line[col], row, col)
			}
		}
		cells = append(cells, line...)
	}
	return &Grid{width: width, height: len(lines), cells: cells}, nil
}

func isTerrain(c byte) bool {
	switch c {
	case Void, Corridor, HWall, VWall, Passage, Floor:
		return true
	}
	return false
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Area() int   { return g.width * g.height }

// At returns the terrain at p; false when p is outside the grid.
func (g *Grid) At(p Position) (byte, bool) {
	i := g.Index(p)
	if i == NoIndex {
		return 0, false
	}
	return g.cells[i], true
}

// Cell returns the terrain at index i, or Void when i is out of range.
func (g *Grid) Cell(i int) byte {
	if i < 0 || i >= len(g.cells) {
		return Void
	}
	return g.cells[i]
}

// FloorCells lists every floor position in index order.
func (g *Grid) FloorCells() []Position {
	floors := make([]Position, 0)
	for i, c := range g.cells {
		if c == Floor {
			p, _ := g.Position(i)
			floors = append(floors, p)
		}
	}
	return floors
}

// BlocksMovement reports whether a player can not step onto c.
func BlocksMovement(c byte) bool {
	switch c {
	case Void, HWall, VWall, Passage:
		return true
	}
	return false
}

// BlocksSight reports whether c stops a line of sight.
func BlocksSight(c byte) bool {
	return c == Corridor || BlocksMovement(c)
}

func IsWall(c byte) bool {
	return c == HWall || c == VWall || c == Passage
}

func IsCorridor(c byte) bool { return c == Corridor }

func IsFloor(c byte) bool { return c == Floor }
