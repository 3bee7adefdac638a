package ldraw

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	lberrors "github.com/matzehuels/lbcode/pkg/errors"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t  \r", nil},
		{"single", "0", []string{"0"}},
		{"collapses runs", "1  15\t0   0", []string{"1", "15", "0", "0"}},
		{"trims crlf", "0 FILE model.ldr\r", []string{"0", "FILE", "model.ldr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		tok     string
		want    LineType
		wantErr bool
	}{
		{"0", TypeComment, false},
		{"1", TypePart, false},
		{"3", TypeTriangle, false},
		{"7", LineType(7), false},
		{"x", 0, true},
		{"1.0", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseType([]string{tt.tok}, 4)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.tok, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !lberrors.Is(err, lberrors.ErrCodeInvalidFormat) {
				t.Errorf("ParseType(%q) code = %s, want INVALID_FORMAT", tt.tok, lberrors.GetCode(err))
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %d, want %d", tt.tok, got, tt.want)
		}
	}
}

func TestParsePart(t *testing.T) {
	tokens := Tokenize("1 15 10 -24 30.5 0 0 1 0 1 0 -1 0 0 3001 brick.dat")

	got, err := ParsePart(tokens, 7)
	if err != nil {
		t.Fatalf("ParsePart() error = %v", err)
	}

	want := PartLine{
		Number:   7,
		Color:    15,
		Position: Vec3{X: 10, Y: -24, Z: 30.5},
		Rotation: Matrix3{0, 0, 1, 0, 1, 0, -1, 0, 0},
		File:     "3001 brick.dat",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePart() mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePartDirectColor(t *testing.T) {
	tokens := Tokenize("1 0x2FF0000 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat")

	got, err := ParsePart(tokens, 1)
	if err != nil {
		t.Fatalf("ParsePart() error = %v", err)
	}
	if got.Color != 0x2FF0000 {
		t.Errorf("Color = %#x, want %#x", got.Color, 0x2FF0000)
	}
}

func TestParsePartErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code lberrors.Code
	}{
		{"ten tokens", "1 15 0 0 0 1 0 0 0 1", lberrors.ErrCodeInvalidFormat},
		{"missing file", "1 15 0 0 0 1 0 0 0 1 0 0 0 1", lberrors.ErrCodeInvalidFormat},
		{"bad colour", "1 red 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat", lberrors.ErrCodeInvalidNumber},
		{"bad position", "1 15 0 abc 0 1 0 0 0 1 0 0 0 1 3001.dat", lberrors.ErrCodeInvalidNumber},
		{"bad rotation", "1 15 0 0 0 1 0 0 0 1 0 0 0 one 3001.dat", lberrors.ErrCodeInvalidNumber},
		{"nan", "1 15 NaN 0 0 1 0 0 0 1 0 0 0 1 3001.dat", lberrors.ErrCodeInvalidNumber},
		{"inf", "1 15 0 0 Inf 1 0 0 0 1 0 0 0 1 3001.dat", lberrors.ErrCodeInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePart(Tokenize(tt.line), 12)
			if err == nil {
				t.Fatal("ParsePart() expected error")
			}
			if !lberrors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", lberrors.GetCode(err), tt.code)
			}
			le, ok := err.(*LineError)
			if !ok {
				t.Fatalf("error type = %T, want *LineError", err)
			}
			if le.Line != 12 {
				t.Errorf("Line = %d, want 12", le.Line)
			}
			if !strings.HasPrefix(err.Error(), "line 12: ") {
				t.Errorf("Error() = %q, want line prefix", err.Error())
			}
		})
	}
}

func TestScanner(t *testing.T) {
	src := "\uFEFF0 Untitled\n\n   \n1 15 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\r\n0 STEP\n"

	s := NewScanner(strings.NewReader(src))

	type seen struct {
		Line  int
		First string
	}
	var got []seen
	for s.Scan() {
		got = append(got, seen{s.Line(), s.Tokens()[0]})
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	want := []seen{{1, "0"}, {4, "1"}, {5, "0"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scan mismatch (-want +got):\n%s", diff)
	}
}
