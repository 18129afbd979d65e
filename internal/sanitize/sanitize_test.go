package sanitize

import (
	"strings"
	"testing"
)

func TestBody(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "Hello, World!",
			expected: "Hello, World!",
		},
		{
			name:     "newlines kept",
			input:    "line1\nline2",
			expected: "line1\nline2",
		},
		{
			name:     "ANSI color code",
			input:    "\x1b[31mred text\x1b[0m",
			expected: "red text",
		},
		{
			name:     "cursor position",
			input:    "\x1b[10;20Hposition",
			expected: "position",
		},
		{
			name:     "private mode set",
			input:    "\x1b[?25hvisible",
			expected: "visible",
		},
		{
			name:     "OSC window title with BEL",
			input:    "\x1b]0;My Title\x07text",
			expected: "text",
		},
		{
			name:     "OSC hyperlink",
			input:    "\x1b]8;;http://example.com\x07link\x1b]8;;\x07",
			expected: "link",
		},
		{
			name:     "charset designation",
			input:    "\x1b(Bascii",
			expected: "ascii",
		},
		{
			name:     "mouse scroll SGR sequence",
			input:    "hello\x1b[<65;113;33Mworld",
			expected: "helloworld",
		},
		{
			name:     "orphaned mouse report without ESC",
			input:    "[<65;155;38M[<65;155;38Mtext",
			expected: "text",
		},
		{
			name:     "control characters removed",
			input:    "hello\x00world\x1ftest",
			expected: "helloworldtest",
		},
		{
			name:     "DEL removed",
			input:    "hello\x7fworld",
			expected: "helloworld",
		},
		{
			name:     "carriage return dropped",
			input:    "line1\r\nline2",
			expected: "line1\nline2",
		},
		{
			name:     "tab becomes space",
			input:    "col1\tcol2",
			expected: "col1 col2",
		},
		{
			name:     "unicode preserved",
			input:    "日本語\n中文\n한국어",
			expected: "日本語\n中文\n한국어",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "repeated scroll reports",
			input:    strings.Repeat("\x1b[<65;113;33M", 26) + "user message",
			expected: "user message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Body(tt.input)
			if got != tt.expected {
				t.Errorf("Body(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "newlines flattened",
			input:    "line1\nline2",
			expected: "line1 line2",
		},
		{
			name:     "escapes stripped",
			input:    "\x1b[31m\x1b]0;Title\x07name",
			expected: "name",
		},
		{
			name:     "mixed content",
			input:    "a\tb\nc\x01d",
			expected: "a b cd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Line(tt.input)
			if got != tt.expected {
				t.Errorf("Line(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func BenchmarkBody(b *testing.B) {
	input := strings.Repeat("\x1b[<65;113;33M", 100) + "hello world\n" + strings.Repeat("test ", 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Body(input)
	}
}
