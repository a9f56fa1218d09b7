package graph

import (
	"strings"
	"testing"
)

func TestReadLinks(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantLinks     int
		wantMalformed int
	}{
		{
			name:      "single record",
			input:     "contig_1 + contig_2 - 55.5 10.2 3\n",
			wantLinks: 1,
		},
		{
			name: "multiple records with blank lines",
			input: "a + b - 1.0 0.1 2\n" +
				"\n" +
				"b + c + 2.0 0.2 4\n",
			wantLinks: 2,
		},
		{
			name:          "short line skipped, rest retained",
			input:         "a + b - 1.0 0.1 2\na + b\nb + c + 2.0 0.2 4\n",
			wantLinks:     2,
			wantMalformed: 1,
		},
		{
			name:          "bad numeric field",
			input:         "a + b - NaNope 0.1 2\n",
			wantLinks:     0,
			wantMalformed: 1,
		},
		{
			name:          "bad bundle size",
			input:         "a + b - 1.0 0.1 two\n",
			wantLinks:     0,
			wantMalformed: 1,
		},
		{
			name:      "extra trailing fields ignored",
			input:     "a + b - 1.0 0.1 2 trailing junk\n",
			wantLinks: 1,
		},
		{
			name:      "empty input",
			input:     "",
			wantLinks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, malformed, err := ReadLinks(strings.NewReader(tt.input), ParseOptions{})
			if err != nil {
				t.Fatalf("ReadLinks failed: %v", err)
			}
			if len(links) != tt.wantLinks {
				t.Errorf("links = %d, want %d", len(links), tt.wantLinks)
			}
			if malformed != tt.wantMalformed {
				t.Errorf("malformed = %d, want %d", malformed, tt.wantMalformed)
			}
		})
	}
}

func TestReadLinksFields(t *testing.T) {
	input := "NODE_1 + NODE_2 - 55.5 10.25 3\n"
	links, _, err := ReadLinks(strings.NewReader(input), ParseOptions{})
	if err != nil {
		t.Fatalf("ReadLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("links = %d, want 1", len(links))
	}

	l := links[0]
	if l.ContigA != "NODE_1" || l.ContigB != "NODE_2" {
		t.Errorf("contigs = %q,%q", l.ContigA, l.ContigB)
	}
	if l.OrientationA != "+" || l.OrientationB != "-" {
		t.Errorf("orientations = %q,%q", l.OrientationA, l.OrientationB)
	}
	if l.Mean != 55.5 || l.Stdev != 10.25 || l.BundleSize != 3 {
		t.Errorf("metadata = %v %v %v", l.Mean, l.Stdev, l.BundleSize)
	}
}

func TestReadLinksWarnsPerMalformedLine(t *testing.T) {
	input := "a + b - 1.0 0.1 2\nbroken\nalso broken line\n"
	var warnings []string
	_, malformed, err := ReadLinks(strings.NewReader(input), ParseOptions{
		Logger: func(msg string, args ...any) {
			warnings = append(warnings, msg)
		},
	})
	if err != nil {
		t.Fatalf("ReadLinks failed: %v", err)
	}
	if malformed != 2 {
		t.Errorf("malformed = %d, want 2", malformed)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %d, want 2", len(warnings))
	}
}
