package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestTextPlainFormats(t *testing.T) {
	for _, name := range []string{"notes.txt", "README.md", "UPPER.TXT"} {
		got, err := Text(name, []byte("hello world"))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if got != "hello world" {
			t.Errorf("%s: text = %q", name, got)
		}
	}
}

func TestTextUnknownExtension(t *testing.T) {
	for _, name := range []string{"image.png", "archive.zip", "noext"} {
		if _, err := Text(name, []byte("data")); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("%s: expected ErrUnsupportedType, got %v", name, err)
		}
	}
}

func TestTextBinaryFormatsRefused(t *testing.T) {
	for _, name := range []string{"report.pdf", "brief.docx"} {
		_, err := Text(name, []byte{0x25, 0x50})
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("%s: expected ErrUnsupportedType, got %v", name, err)
		}
		if err != nil && !strings.Contains(err.Error(), "document converter") {
			t.Errorf("%s: error should point at the converter: %v", name, err)
		}
	}
}

func TestTextRejectsInvalidUTF8(t *testing.T) {
	if _, err := Text("junk.txt", []byte{0xff, 0xfe, 0x00}); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestTextTruncates(t *testing.T) {
	long := strings.Repeat("a", MaxTextChars+100)
	got, err := Text("big.txt", []byte(long))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != MaxTextChars {
		t.Errorf("length = %d, want %d", len(got), MaxTextChars)
	}
}

func TestTruncatePreservesUTF8(t *testing.T) {
	// A string of multibyte runes cut mid-sequence must shrink to the
	// previous rune boundary.
	s := strings.Repeat("ё", 100) // 2 bytes each
	got := Truncate(s, 5)
	if len(got) != 4 {
		t.Errorf("length = %d, want 4", len(got))
	}
	if !strings.HasPrefix(s, got) {
		t.Error("truncated string is not a prefix")
	}
}

func TestSupported(t *testing.T) {
	if !Supported("a.txt") || !Supported("b.md") {
		t.Error("txt/md must be supported")
	}
	if Supported("c.pdf") || Supported("d.docx") || Supported("e.png") {
		t.Error("binary formats are not natively supported")
	}
}
