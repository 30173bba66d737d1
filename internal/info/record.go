// Package info loads and resolves keyboard definitions. A definition is a
// tree of info.json files (JSON with comments and trailing commas allowed)
// merged from the keyboards root down to the keyboard's leaf directory, with
// an optional keymap-level overlay applied last.
package info

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

var (
	// ErrUnknownKeyboard reports a keyboard name that does not resolve to a
	// definition under the keyboards root.
	ErrUnknownKeyboard = errors.New("unknown keyboard")
	// ErrUnknownKeymap reports a keymap name with no directory under the
	// keyboard's keymaps/.
	ErrUnknownKeymap = errors.New("unknown keymap")
)

// Record is a resolved keyboard definition. Every field is optional: a nil
// field means the merged tree never mentioned it, and the corresponding
// header block is simply not emitted.
type Record struct {
	DiodeDirection *string
	KeyboardName   *string
	Manufacturer   *string
	Matrix         *MatrixPins
	USB            *USBConfig

	raw map[string]any // merged tree, kept for inspection output
}

// MatrixPins describes how the switch matrix is wired. Direct is a 2D grid
// of per-switch pins where an empty cell means "unconnected"; Cols and Rows
// are the pin lists of a scanned matrix. A keyboard may carry any
// combination.
type MatrixPins struct {
	Direct [][]string
	Cols   []string
	Rows   []string
}

// USBConfig carries the USB identifiers. Values are kept as the literal text
// that ends up in the header (typically hex strings such as "0xFEED").
type USBConfig struct {
	VID       *string
	PID       *string
	DeviceVer *string
}

// Raw returns the merged definition tree the record was projected from.
func (r *Record) Raw() map[string]any {
	return r.raw
}

// FromMap projects a merged definition tree into a Record. Scalar leaves
// tolerate both JSON strings and numbers; structural mismatches (e.g. a
// string where an object is required) are configuration errors.
func FromMap(tree map[string]any) (*Record, error) {
	rec := &Record{raw: tree}

	if v, ok := tree["diode_direction"]; ok {
		s, err := scalar(v, "diode_direction")
		if err != nil {
			return nil, err
		}
		rec.DiodeDirection = &s
	}
	if v, ok := tree["keyboard_name"]; ok {
		s, err := scalar(v, "keyboard_name")
		if err != nil {
			return nil, err
		}
		rec.KeyboardName = &s
	}
	if v, ok := tree["manufacturer"]; ok {
		s, err := scalar(v, "manufacturer")
		if err != nil {
			return nil, err
		}
		rec.Manufacturer = &s
	}

	if v, ok := tree["matrix_pins"]; ok {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("matrix_pins: expected an object, got %T", v)
		}
		matrix := &MatrixPins{}
		if d, ok := m["direct"]; ok {
			grid, err := pinGrid(d)
			if err != nil {
				return nil, err
			}
			matrix.Direct = grid
		}
		if c, ok := m["cols"]; ok {
			pins, err := pinList(c, "matrix_pins.cols")
			if err != nil {
				return nil, err
			}
			matrix.Cols = pins
		}
		if r, ok := m["rows"]; ok {
			pins, err := pinList(r, "matrix_pins.rows")
			if err != nil {
				return nil, err
			}
			matrix.Rows = pins
		}
		rec.Matrix = matrix
	}

	if v, ok := tree["usb"]; ok {
		u, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("usb: expected an object, got %T", v)
		}
		usb := &USBConfig{}
		if vid, ok := u["vid"]; ok {
			s, err := scalar(vid, "usb.vid")
			if err != nil {
				return nil, err
			}
			usb.VID = &s
		}
		if pid, ok := u["pid"]; ok {
			s, err := scalar(pid, "usb.pid")
			if err != nil {
				return nil, err
			}
			usb.PID = &s
		}
		if dv, ok := u["device_ver"]; ok {
			s, err := scalar(dv, "usb.device_ver")
			if err != nil {
				return nil, err
			}
			usb.DeviceVer = &s
		}
		rec.USB = usb
	}

	return rec, nil
}

// scalar coerces a string or numeric leaf to the literal text emitted into
// the header.
func scalar(v any, key string) (string, error) {
	switch v.(type) {
	case map[string]any, []any:
		return "", fmt.Errorf("%s: expected a scalar, got %T", key, v)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

// pinList converts a JSON sequence into pin identifiers. A null entry
// becomes the empty string.
func pinList(v any, key string) ([]string, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a sequence, got %T", key, v)
	}
	pins := make([]string, len(seq))
	for i, cell := range seq {
		if cell == nil {
			continue
		}
		s, err := scalar(cell, fmt.Sprintf("%s[%d]", key, i))
		if err != nil {
			return nil, err
		}
		pins[i] = s
	}
	return pins, nil
}

// pinGrid converts the matrix_pins.direct sequence-of-sequences into a 2D
// grid. Shape (emptiness, raggedness) is checked at generation time, not
// here.
func pinGrid(v any) ([][]string, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("matrix_pins.direct: expected a sequence of rows, got %T", v)
	}
	grid := make([][]string, len(seq))
	for i, row := range seq {
		pins, err := pinList(row, fmt.Sprintf("matrix_pins.direct[%d]", i))
		if err != nil {
			return nil, err
		}
		grid[i] = pins
	}
	return grid, nil
}
