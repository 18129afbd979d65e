package app

import (
	"testing"
	"unicode/utf8"
)

// checkCursor verifies the byte offset is a rune boundary and the column
// counter tracks the rune count of the prefix. Valid for incremental edits
// over single-column runes; End recomputes the column as display width.
func checkCursor(t *testing.T, in *Input) {
	t.Helper()
	text := in.Text()
	off := in.ByteOffset()
	if off < 0 || off > len(text) {
		t.Fatalf("cursor %d out of range for %q", off, text)
	}
	if off < len(text) && !utf8.RuneStart(text[off]) {
		t.Fatalf("cursor %d lands mid-rune in %q", off, text)
	}
	if got := utf8.RuneCountInString(text[:off]); got != in.CharOffset() {
		t.Fatalf("char offset = %d, want rune count %d for prefix of %q", in.CharOffset(), got, text)
	}
}

func typeText(in *Input, text string) {
	for _, r := range text {
		in.InsertRune(r)
	}
}

func TestInputWordMotionScenario(t *testing.T) {
	in := &Input{}
	typeText(in, "hello world")
	if in.ByteOffset() != 11 {
		t.Fatalf("cursor = %d, want 11", in.ByteOffset())
	}

	in.MoveWordLeft()
	if in.ByteOffset() != 6 {
		t.Fatalf("after first MoveWordLeft cursor = %d, want 6", in.ByteOffset())
	}
	in.MoveWordLeft()
	if in.ByteOffset() != 6 {
		t.Fatalf("after second MoveWordLeft cursor = %d, want 6", in.ByteOffset())
	}

	in.DeleteWordLeft()
	if in.Text() != "world" {
		t.Fatalf("text = %q, want %q", in.Text(), "world")
	}
	if in.ByteOffset() != 0 || in.CharOffset() != 0 {
		t.Fatalf("cursor = %d/%d, want 0/0", in.ByteOffset(), in.CharOffset())
	}
}

func TestInputCursorConsistency(t *testing.T) {
	in := &Input{}
	typeText(in, "héllo wörld")
	checkCursor(t, in)

	for in.MoveLeft() {
		checkCursor(t, in)
	}
	if in.ByteOffset() != 0 {
		t.Fatalf("cursor = %d after moving to start", in.ByteOffset())
	}
	for i := 0; i < 4; i++ {
		if !in.MoveRight() {
			t.Fatalf("MoveRight failed at step %d", i)
		}
		checkCursor(t, in)
	}
	in.InsertRune('é')
	checkCursor(t, in)
	for i := 0; i < 3; i++ {
		if !in.DeleteLeft() {
			t.Fatalf("DeleteLeft failed at step %d", i)
		}
		checkCursor(t, in)
	}
}

func TestInputMoveAtBoundaries(t *testing.T) {
	in := &Input{}
	if in.MoveLeft() || in.MoveRight() || in.DeleteLeft() {
		t.Fatalf("moves on an empty buffer must report no movement")
	}
	typeText(in, "ab")
	if in.MoveRight() {
		t.Fatalf("MoveRight at end must report no movement")
	}
	in.Home()
	if in.MoveLeft() {
		t.Fatalf("MoveLeft at start must report no movement")
	}
	if in.DeleteLeft() {
		t.Fatalf("DeleteLeft at start must report no movement")
	}
	if in.Text() != "ab" {
		t.Fatalf("text = %q, want untouched", in.Text())
	}
}

func TestInputMoveRightScansForward(t *testing.T) {
	in := &Input{}
	typeText(in, "é世x")
	in.Home()

	if !in.MoveRight() {
		t.Fatalf("MoveRight over é failed")
	}
	if in.ByteOffset() != 2 {
		t.Fatalf("cursor = %d, want 2 after two-byte rune", in.ByteOffset())
	}
	if !in.MoveRight() {
		t.Fatalf("MoveRight over 世 failed")
	}
	if in.ByteOffset() != 5 {
		t.Fatalf("cursor = %d, want 5 after three-byte rune", in.ByteOffset())
	}
}

func TestInputMoveWordRight(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		start int
		want  int
	}{
		{"start of line", "hello world", 0, 6},
		{"start of last word", "hello world", 6, 11},
		{"at end", "hello world", 11, 11},
		{"through space run", "a  b", 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := &Input{}
			in.SetText(tc.text)
			in.Home()
			for i := 0; i < tc.start; i++ {
				in.MoveRight()
			}
			in.MoveWordRight()
			if in.ByteOffset() != tc.want {
				t.Fatalf("cursor = %d, want %d", in.ByteOffset(), tc.want)
			}
		})
	}
}

func TestInputDeleteWordLeft(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"single word", "hello", ""},
		{"keeps prior word", "one two", "one "},
		{"trailing spaces", "one two   ", "one "},
		{"empty buffer", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := &Input{}
			in.SetText(tc.text)
			in.DeleteWordLeft()
			if in.Text() != tc.want {
				t.Fatalf("text = %q, want %q", in.Text(), tc.want)
			}
			checkCursor(t, in)
		})
	}
}

func TestInputOnlyASCIISpaceDelimits(t *testing.T) {
	// U+00A0 is whitespace but not a word boundary here.
	in := &Input{}
	typeText(in, "a b")
	in.DeleteWordLeft()
	if in.Text() != "" {
		t.Fatalf("text = %q, want the whole run deleted", in.Text())
	}

	in = &Input{}
	typeText(in, "a b")
	in.MoveWordLeft()
	if in.ByteOffset() != 0 {
		t.Fatalf("cursor = %d, want 0", in.ByteOffset())
	}
}

func TestInputTruncateFromCursor(t *testing.T) {
	in := &Input{}
	typeText(in, "keep drop")
	in.Home()
	for i := 0; i < 4; i++ {
		in.MoveRight()
	}
	in.TruncateFromCursor()
	if in.Text() != "keep" {
		t.Fatalf("text = %q, want %q", in.Text(), "keep")
	}
	if in.ByteOffset() != 4 {
		t.Fatalf("cursor = %d, want 4", in.ByteOffset())
	}
	in.TruncateFromCursor()
	if in.Text() != "keep" {
		t.Fatalf("truncate at end must not change text, got %q", in.Text())
	}
}

func TestInputEndUsesDisplayWidth(t *testing.T) {
	in := &Input{}
	in.SetText("世界")
	if in.ByteOffset() != 6 {
		t.Fatalf("cursor = %d, want 6", in.ByteOffset())
	}
	if in.CharOffset() != 4 {
		t.Fatalf("column = %d, want display width 4", in.CharOffset())
	}
	in.Home()
	if in.ByteOffset() != 0 || in.CharOffset() != 0 {
		t.Fatalf("cursor = %d/%d after Home, want 0/0", in.ByteOffset(), in.CharOffset())
	}
}

func TestInputDrain(t *testing.T) {
	in := &Input{}
	typeText(in, "draft text")
	got := in.Drain()
	if got != "draft text" {
		t.Fatalf("drained = %q", got)
	}
	if in.Text() != "" || in.ByteOffset() != 0 || in.CharOffset() != 0 {
		t.Fatalf("drain must reset buffer and cursor, got %q %d/%d", in.Text(), in.ByteOffset(), in.CharOffset())
	}
}
