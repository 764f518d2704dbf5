// Package trace parses the simulator's CSV request format into
// policy.Request values and normalizes raw byte offsets into page keys.
package trace

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/cachetrace/simulator/internal/policy"
	"github.com/cachetrace/simulator/pkg/cerr"
)

// minColumns is the number of comma-separated fields a row must carry
// for the trace to be considered well-formed at all. Column 0 is the
// timestamp, column 2 the offset, column 4 the op.
const minColumns = 5

// Options controls trace loading: an optional [start, end] time window
// (both bounds inclusive; a zero bound is not applied)
// and an optional page size for byte-offset-to-page-number division.
type Options struct {
	StartTime float64
	EndTime   float64
	PageSize  int // 0 disables normalization; keys stay raw offsets
}

// Loaded is the result of parsing and filtering a trace file.
type Loaded struct {
	Requests    []policy.Request
	Fingerprint uint64
	SkippedRows int
}

// Load reads a CSV trace file, applies the optional time window, and
// normalizes offsets to page numbers when opts.PageSize > 0. A header
// row (if present) is detected by its inability to parse as a valid
// data row and is skipped without counting as an error.
func Load(path string, opts Options) (*Loaded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerr.New(cerr.CodeTraceNotFound, "failed to open trace file").
			WithCause(err).
			WithDetail("path", path)
	}
	defer f.Close()

	return parse(f, opts)
}

func parse(r io.Reader, opts Options) (*Loaded, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		requests    []policy.Request
		skipped     int
		sawFirstRow bool
		digest      = xxhash.New()
	)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")

		if len(fields) < minColumns {
			if !sawFirstRow {
				return nil, cerr.New(cerr.CodeSchemaViolation, "trace row has fewer than 5 columns").
					WithDetail("columns", len(fields))
			}
			skipped++
			continue
		}

		ts, key, op, ok := parseRow(fields, opts.PageSize)
		if !ok {
			if !sawFirstRow {
				// Header row: not a data row, skip silently rather than
				// counting it as a malformed data row.
				sawFirstRow = true
				continue
			}
			skipped++
			continue
		}
		sawFirstRow = true

		if opts.EndTime > 0 && ts > opts.EndTime {
			continue
		}
		if opts.StartTime > 0 && ts < opts.StartTime {
			continue
		}

		requests = append(requests, policy.Request{Timestamp: ts, Key: key, Op: op})
		io.WriteString(digest, line) //nolint:errcheck
	}

	if err := scanner.Err(); err != nil {
		return nil, cerr.New(cerr.CodeInternal, "failed to read trace file").WithCause(err)
	}

	if len(requests) == 0 {
		return nil, cerr.New(cerr.CodeEmptySequence, "trace produced no requests after filtering")
	}

	return &Loaded{
		Requests:    requests,
		Fingerprint: digest.Sum64(),
		SkippedRows: skipped,
	}, nil
}

// parseRow extracts (timestamp, key, op) from a pre-split CSV row. ok is
// false for any unparseable numeric field or an op outside {Read, Write}
// after trimming and case normalization.
func parseRow(fields []string, pageSize int) (ts float64, key int64, op policy.Op, ok bool) {
	ts, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, 0, false
	}

	offset, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return 0, 0, 0, false
	}

	key = PageOf(offset, pageSize)

	opStr := strings.ToLower(strings.TrimSpace(fields[4]))
	switch opStr {
	case "read":
		op = policy.Read
	case "write":
		op = policy.Write
	default:
		return 0, 0, 0, false
	}

	return ts, key, op, true
}

// PageOf normalizes a raw byte offset into a page number by integer
// division when pageSize > 0; otherwise it returns the offset unchanged.
func PageOf(offset int64, pageSize int) int64 {
	if pageSize <= 0 {
		return offset
	}
	return offset / int64(pageSize)
}
