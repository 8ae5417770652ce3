package parser

import "testing"

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "name,team,icetime\nA,EDM,100\n", ','},
		{"semicolon", "name;team;icetime\nA;EDM;100\n", ';'},
		{"tab", "name\tteam\ticetime\nA\tEDM\t100\n", '\t'},
		{"pipe", "name|team|icetime\nA|EDM|100\n", '|'},
		{"empty defaults to comma", "", ','},
		{"tie prefers comma", "a,b;c\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter([]byte(tt.data), 0); got != tt.want {
				t.Errorf("DetectDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidDelimiter(t *testing.T) {
	for _, d := range []rune{',', ';', '\t', '|'} {
		if !IsValidDelimiter(d) {
			t.Errorf("Expected %q to be a valid delimiter", d)
		}
	}
	if IsValidDelimiter('x') {
		t.Error("Expected 'x' to be rejected")
	}
}

func TestStripBOMAndHeaderLine(t *testing.T) {
	data := []byte("\xef\xbb\xbfname,team\r\nA,B\n")
	got := string(HeaderLine(StripBOM(data)))
	if got != "name,team" {
		t.Errorf("Expected header line 'name,team', got %q", got)
	}
}
