// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const (
	// Bold is the bold font class.
	Bold FontClass = iota + 1
	// Italic is the italic font class.
	Italic
	// Monospace is the monospace font class.
	Monospace
)

const (
	// AlignLeft aligns lines to the left edge.
	AlignLeft Alignment = iota
	// AlignCenter centers lines.
	AlignCenter
	// AlignRight aligns lines to the right edge.
	AlignRight
)

const (
	// Horizontal is the line direction.
	Horizontal Axis = iota
	// Vertical is the page direction.
	Vertical
)

// ErrInvalidAlignment is returned when an alignment name is not recognized.
var ErrInvalidAlignment = errors.New("invalid alignment")

type (
	// FontClass is a text style that can be toggled on and off.
	FontClass uint8

	// Alignment is the horizontal alignment of lines.
	Alignment uint8

	// Axis is a layout direction.
	Axis uint8

	// InvalidAlignmentError is returned when an alignment name is not recognized.
	// It wraps ErrInvalidAlignment for errors.Is() compatibility.
	InvalidAlignmentError struct {
		Value string
	}

	// Command is one layout directive.
	Command interface {
		// Op is the directive name used in textual and JSON output.
		Op() string
		String() string
	}

	// Commands is the ordered output of one layout call.
	Commands []Command

	// AddText adds a run of text in the current style.
	AddText struct {
		Text string `json:"text"`
	}

	// AddSpace adds an inter-word space.
	AddSpace struct{}

	// AddSpacing adds fixed spacing along an axis.
	AddSpacing struct {
		Size float64 `json:"size"`
		Axis Axis    `json:"axis"`
	}

	// BreakLine finishes the current line.
	BreakLine struct{}

	// BreakParagraph finishes the current paragraph.
	BreakParagraph struct{}

	// BreakPage finishes the current page.
	BreakPage struct{}

	// ToggleStyle flips a font class on or off for all following text.
	ToggleStyle struct {
		Class FontClass `json:"class"`
	}

	// SetAlignment changes the alignment of following paragraphs.
	SetAlignment struct {
		Align Alignment `json:"align"`
	}
)

// Error implements the error interface.
func (e *InvalidAlignmentError) Error() string {
	return fmt.Sprintf("invalid alignment %q (valid: left, center, right)", e.Value)
}

// Unwrap returns ErrInvalidAlignment.
func (e *InvalidAlignmentError) Unwrap() error { return ErrInvalidAlignment }

// ParseAlignment converts an alignment name into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignLeft, &InvalidAlignmentError{Value: s}
	}
}

func (c FontClass) String() string {
	switch c {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Monospace:
		return "monospace"
	default:
		return "FontClass(" + strconv.Itoa(int(c)) + ")"
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "Alignment(" + strconv.Itoa(int(a)) + ")"
	}
}

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MarshalText implements encoding.TextMarshaler.
func (c FontClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (AddText) Op() string        { return "add_text" }
func (AddSpace) Op() string       { return "add_space" }
func (AddSpacing) Op() string     { return "add_spacing" }
func (BreakLine) Op() string      { return "break_line" }
func (BreakParagraph) Op() string { return "break_paragraph" }
func (BreakPage) Op() string      { return "break_page" }
func (ToggleStyle) Op() string    { return "toggle_style" }
func (SetAlignment) Op() string   { return "set_alignment" }

func (c AddText) String() string        { return c.Op() + " " + strconv.Quote(c.Text) }
func (c AddSpace) String() string       { return c.Op() }
func (c AddSpacing) String() string     { return fmt.Sprintf("%s %s %gpt", c.Op(), c.Axis, c.Size) }
func (c BreakLine) String() string      { return c.Op() }
func (c BreakParagraph) String() string { return c.Op() }
func (c BreakPage) String() string      { return c.Op() }
func (c ToggleStyle) String() string    { return c.Op() + " " + c.Class.String() }
func (c SetAlignment) String() string   { return c.Op() + " " + c.Align.String() }

// MarshalJSON encodes the commands as objects tagged with their op.
func (cs Commands) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(cs))
	for _, c := range cs {
		fields, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(fields, &obj); err != nil {
			return nil, err
		}
		if obj == nil {
			obj = make(map[string]json.RawMessage, 1)
		}
		op, _ := json.Marshal(c.Op())
		obj["op"] = op
		encoded, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}
	return json.Marshal(out)
}
