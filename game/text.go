package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// String renders the board as eight lines of eight symbols, row 0 first:
// '.' empty, 'w'/'W' white man/king, 'b'/'B' black man/king.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteRune(b.cells[row][col].rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads the diagram produced by String. Whitespace inside a row
// and blank lines are ignored.
func ParseBoard(text string) (*Board, error) {
	b := NewBoard()
	row := 0
	for _, line := range strings.Split(text, "\n") {
		symbols := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, line)
		if symbols == "" {
			continue
		}
		if row >= Size {
			return nil, fmt.Errorf("board has more than %d rows", Size)
		}

		runes := []rune(symbols)
		if len(runes) != Size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", row, len(runes), Size)
		}
		for col, r := range runes {
			piece, err := pieceFromRune(r)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			b.cells[row][col] = piece
		}
		row++
	}
	if row != Size {
		return nil, fmt.Errorf("board has %d rows, want %d", row, Size)
	}
	return b, nil
}

// Boards travel as eight row strings in String's notation.
func (b *Board) MarshalJSON() ([]byte, error) {
	rows := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("board must be a list of rows: %w", err)
	}
	parsed, err := ParseBoard(strings.Join(rows, "\n"))
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
