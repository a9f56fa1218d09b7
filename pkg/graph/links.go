package graph

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/asmviz/seppairs/pkg/errors"
)

// Link is one oriented scaffolding record:
//
//	contigA orientationA contigB orientationB meanGap stdevGap bundleSize
//
// Only the contig names participate in the decomposition; orientations and
// the gap/bundle fields are pass-through metadata for downstream consumers.
type Link struct {
	ContigA      string
	OrientationA string
	ContigB      string
	OrientationB string
	Mean         float64
	Stdev        float64
	BundleSize   int
}

// linkFields is the number of whitespace-separated fields in a link record.
const linkFields = 7

// ParseOptions configures link-stream parsing.
type ParseOptions struct {
	// Logger receives a warning per malformed record. Nil disables warnings.
	Logger func(msg string, args ...any)
}

// ReadLinks parses the whitespace-separated link records from r.
//
// A malformed line (fewer than 7 fields, or unparsable numeric fields) is
// skipped with a warning and counted; all successfully parsed records are
// retained and parsing continues with the next line. Blank lines are ignored.
// The returned error is non-nil only for a read failure on r.
func ReadLinks(r io.Reader, opts ParseOptions) (links []Link, malformed int, err error) {
	warn := opts.Logger
	if warn == nil {
		warn = func(string, ...any) {}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		l, perr := parseLink(line)
		if perr != nil {
			malformed++
			warn("Skipping malformed record at line %d: %v", lineNo, errors.UserMessage(perr))
			continue
		}
		links = append(links, l)
	}
	if serr := sc.Err(); serr != nil {
		return links, malformed, errors.Wrap(errors.ErrCodeInvalidInput, serr, "read link stream")
	}
	return links, malformed, nil
}

// parseLink parses one non-empty record line. Fields beyond the seventh are
// ignored.
func parseLink(line string) (Link, error) {
	fields := strings.Fields(line)
	if len(fields) < linkFields {
		return Link{}, errors.New(errors.ErrCodeInvalidRecord,
			"expected %d fields, got %d", linkFields, len(fields))
	}

	mean, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return Link{}, errors.New(errors.ErrCodeInvalidRecord, "mean gap %q is not a number", fields[4])
	}
	stdev, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return Link{}, errors.New(errors.ErrCodeInvalidRecord, "stdev gap %q is not a number", fields[5])
	}
	bundle, err := strconv.Atoi(fields[6])
	if err != nil {
		return Link{}, errors.New(errors.ErrCodeInvalidRecord, "bundle size %q is not an integer", fields[6])
	}

	return Link{
		ContigA:      fields[0],
		OrientationA: fields[1],
		ContigB:      fields[2],
		OrientationB: fields[3],
		Mean:         mean,
		Stdev:        stdev,
		BundleSize:   bundle,
	}, nil
}
