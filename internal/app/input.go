package app

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Input is the message draft under composition, tracked by a byte cursor and
// a parallel column counter. The byte cursor always lands on a UTF-8 rune
// boundary; the column counter is what the render layer uses to place the
// terminal cursor. Word boundaries are single ASCII spaces only.
type Input struct {
	text   string
	cursor int
	chars  int
}

func (in *Input) Text() string { return in.text }

func (in *Input) Len() int { return len(in.text) }

// ByteOffset is the cursor position in bytes, always a rune boundary.
func (in *Input) ByteOffset() int { return in.cursor }

// CharOffset is the cursor column for the render layer.
func (in *Input) CharOffset() int { return in.chars }

// SetText replaces the buffer and parks the cursor at the end, as after a
// snapshot load.
func (in *Input) SetText(text string) {
	in.text = text
	in.End()
}

func (in *Input) InsertRune(r rune) {
	in.text = in.text[:in.cursor] + string(r) + in.text[in.cursor:]
	in.cursor += utf8.RuneLen(r)
	in.chars++
}

// MoveLeft steps back one rune. Reports false at the buffer start.
func (in *Input) MoveLeft() bool {
	if in.cursor == 0 {
		return false
	}
	idx := in.cursor - 1
	for idx > 0 && !utf8.RuneStart(in.text[idx]) {
		idx--
	}
	in.cursor = idx
	in.chars--
	return true
}

// MoveRight steps forward one rune. Reports false at the buffer end.
func (in *Input) MoveRight() bool {
	if in.cursor >= len(in.text) {
		return false
	}
	idx := in.cursor + 1
	for idx < len(in.text) && !utf8.RuneStart(in.text[idx]) {
		idx++
	}
	in.cursor = idx
	in.chars++
	return true
}

// DeleteLeft removes the rune before the cursor. Reports false at the start.
func (in *Input) DeleteLeft() bool {
	if in.cursor == 0 {
		return false
	}
	idx := in.cursor - 1
	for idx > 0 && !utf8.RuneStart(in.text[idx]) {
		idx--
	}
	in.text = in.text[:idx] + in.text[in.cursor:]
	in.cursor = idx
	in.chars--
	return true
}

// DeleteWordLeft removes the run of spaces immediately before the cursor,
// then the run of non-spaces before that. Stops at the buffer start.
func (in *Input) DeleteWordLeft() {
	for in.cursor > 0 && in.text[in.cursor-1] == ' ' {
		in.DeleteLeft()
	}
	for in.cursor > 0 && in.text[in.cursor-1] != ' ' {
		in.DeleteLeft()
	}
}

// MoveWordLeft places the cursor at the start of the word at or before it:
// back over the non-space run, back over the space run before that, then a
// single right-step when that leaves the cursor on a space.
func (in *Input) MoveWordLeft() {
	for in.cursor > 0 && in.text[in.cursor-1] != ' ' {
		in.MoveLeft()
	}
	for in.cursor > 0 && in.text[in.cursor-1] == ' ' {
		in.MoveLeft()
	}
	if in.cursor < len(in.text) && in.text[in.cursor] == ' ' {
		in.MoveRight()
	}
}

// MoveWordRight advances over one run of spaces then one run of non-spaces,
// then skips any spaces after the word, landing at the start of the next
// word or the buffer end.
func (in *Input) MoveWordRight() {
	in.stepOverWordRight()
	for in.cursor < len(in.text) && in.text[in.cursor] == ' ' {
		in.MoveRight()
	}
}

func (in *Input) stepOverWordRight() {
	for in.MoveRight() {
		if in.cursor >= len(in.text) {
			return
		}
		if in.text[in.cursor] != ' ' {
			break
		}
	}
	for in.MoveRight() {
		if in.cursor >= len(in.text) {
			return
		}
		if in.text[in.cursor] == ' ' {
			return
		}
	}
}

// TruncateFromCursor drops everything at and after the cursor.
func (in *Input) TruncateFromCursor() {
	if in.cursor < len(in.text) {
		in.text = in.text[:in.cursor]
	}
}

func (in *Input) Home() {
	in.cursor = 0
	in.chars = 0
}

// End parks the cursor after the last rune. The column counter becomes the
// display width of the whole buffer, which diverges from the incremental
// one-per-rune count when the text contains wide runes.
func (in *Input) End() {
	in.cursor = len(in.text)
	in.chars = runewidth.StringWidth(in.text)
}

// Drain empties the buffer, resets both cursor fields, and returns the
// drained text.
func (in *Input) Drain() string {
	text := in.text
	in.text = ""
	in.cursor = 0
	in.chars = 0
	return text
}
