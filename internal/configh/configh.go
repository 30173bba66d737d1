// Package configh renders a resolved keyboard definition into the
// info_config.h header consumed by the firmware build. Every macro it emits
// is a guarded default: a definition supplied earlier in the build always
// wins over the generated one.
package configh

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kbforge/kbforge/internal/info"
)

// GeneratedComment is the fixed first line of every generated header.
const GeneratedComment = "/* This file was generated by the config generator. Do not edit or copy. */"

// NoPin is the placeholder emitted for an unconnected cell in a direct matrix.
const NoPin = "NO_PIN"

var (
	// ErrEmptyMatrix reports a direct pin matrix with no rows.
	ErrEmptyMatrix = errors.New("direct pin matrix has no rows")
	// ErrRaggedMatrix reports a direct pin matrix whose rows differ in length.
	ErrRaggedMatrix = errors.New("direct pin matrix rows have unequal lengths")
)

// guard wraps a single macro definition in an #ifndef/#endif pair.
func guard(name, value string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#ifndef %s\n", name)
	fmt.Fprintf(&b, "#    define %s %s\n", name, value)
	fmt.Fprintf(&b, "#endif // %s", name)
	return b.String()
}

// braceList joins pin identifiers into a brace-enclosed comma list, e.g.
// {A0,A1,A2}.
func braceList(pins []string) string {
	return "{" + strings.Join(pins, ",") + "}"
}

// DiodeDirection returns the header block that sets the diode direction.
func DiodeDirection(dir string) string {
	return guard("DIODE_DIRECTION", dir)
}

// KeyboardName returns the header blocks that set the keyboard's name.
// DESCRIPTION and PRODUCT both receive the same value.
func KeyboardName(name string) string {
	return guard("DESCRIPTION", name) + "\n\n" + guard("PRODUCT", name)
}

// Manufacturer returns the header block that sets the manufacturer.
func Manufacturer(m string) string {
	return guard("MANUFACTURER", m)
}

// DirectPins returns the header blocks for a direct-wired matrix. The column
// count is taken from the first row and every row must match it; an empty
// cell renders as NO_PIN. A grid with no rows or with ragged rows is a
// configuration error, not a malformed header.
func DirectPins(grid [][]string) (string, error) {
	if len(grid) == 0 {
		return "", ErrEmptyMatrix
	}

	colCount := len(grid[0])
	rows := make([]string, 0, len(grid))
	for i, row := range grid {
		if len(row) != colCount {
			return "", fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedMatrix, i, len(row), colCount)
		}
		cells := make([]string, len(row))
		for j, pin := range row {
			if pin == "" {
				pin = NoPin
			}
			cells[j] = pin
		}
		rows = append(rows, braceList(cells))
	}

	blocks := []string{
		guard("MATRIX_COLS", strconv.Itoa(colCount)),
		guard("MATRIX_ROWS", strconv.Itoa(len(grid))),
		guard("DIRECT_PINS", braceList(rows)),
	}
	return strings.Join(blocks, "\n\n"), nil
}

// ColPins returns the header blocks for the column pins of a scanned matrix.
func ColPins(pins []string) string {
	return guard("MATRIX_COLS", strconv.Itoa(len(pins))) + "\n\n" +
		guard("MATRIX_COL_PINS", braceList(pins))
}

// RowPins returns the header blocks for the row pins of a scanned matrix.
func RowPins(pins []string) string {
	return guard("MATRIX_ROWS", strconv.Itoa(len(pins))) + "\n\n" +
		guard("MATRIX_ROW_PINS", braceList(pins))
}

// Generate renders the complete header for one resolved keyboard definition.
// Absent fields contribute nothing; present fields are emitted in a fixed
// order so that identical records always produce identical bytes. The only
// error condition is a malformed direct matrix.
func Generate(rec *info.Record) (string, error) {
	parts := []string{GeneratedComment, "#pragma once"}

	if rec.DiodeDirection != nil {
		parts = append(parts, DiodeDirection(*rec.DiodeDirection))
	}
	if rec.KeyboardName != nil {
		parts = append(parts, KeyboardName(*rec.KeyboardName))
	}
	if rec.Manufacturer != nil {
		parts = append(parts, Manufacturer(*rec.Manufacturer))
	}

	if m := rec.Matrix; m != nil {
		if m.Direct != nil {
			block, err := DirectPins(m.Direct)
			if err != nil {
				return "", err
			}
			parts = append(parts, block)
		}
		if m.Cols != nil {
			parts = append(parts, ColPins(m.Cols))
		}
		if m.Rows != nil {
			parts = append(parts, RowPins(m.Rows))
		}
	}

	if u := rec.USB; u != nil {
		if u.VID != nil {
			parts = append(parts, guard("VENDOR_ID", *u.VID))
		}
		if u.PID != nil {
			parts = append(parts, guard("PRODUCT_ID", *u.PID))
		}
		if u.DeviceVer != nil {
			parts = append(parts, guard("DEVICE_VER", *u.DeviceVer))
		}
	}

	return strings.Join(parts, "\n\n") + "\n", nil
}
