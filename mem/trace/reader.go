package trace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/mem/vm/pagesim"
)

// ErrEmptyAddress is returned when a hexadecimal prefix has no digits.
var ErrEmptyAddress = errors.New("empty address")

// MaxLineLength bounds the text in front of the comment of a trace line.
// Comments may be of any length.
const MaxLineLength = 64 * 1024

// ErrLineTooLong is returned for a line whose text in front of the comment
// exceeds MaxLineLength.
var ErrLineTooLong = fmt.Errorf("line longer than %d bytes", MaxLineLength)

// MalformedPolicy decides what a Reader does with a line that is not an
// address.
type MalformedPolicy int

const (
	// AbortOnMalformed stops reading and reports the line.
	AbortOnMalformed MalformedPolicy = iota

	// SkipMalformed logs a warning and continues with the next line.
	SkipMalformed
)

// ParseMalformedPolicy converts "abort" or "skip" into a policy.
func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch strings.ToLower(s) {
	case "abort", "":
		return AbortOnMalformed, nil
	case "skip":
		return SkipMalformed, nil
	default:
		return 0, fmt.Errorf("unknown malformed line policy %q, "+
			"must be abort or skip", s)
	}
}

func (p MalformedPolicy) String() string {
	if p == SkipMalformed {
		return "skip"
	}

	return "abort"
}

// ParseAddress parses a decimal address or a hexadecimal address prefixed
// with 0x or 0X.
func ParseAddress(text string) (uint64, error) {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		digits := text[2:]
		if digits == "" {
			return 0, ErrEmptyAddress
		}

		return strconv.ParseUint(digits, 16, 64)
	}

	if text == "" {
		return 0, ErrEmptyAddress
	}

	return strconv.ParseUint(text, 10, 64)
}

// A ReaderOption configures a Reader.
type ReaderOption func(r *Reader)

// WithMalformedPolicy sets the policy for malformed lines.
func WithMalformedPolicy(p MalformedPolicy) ReaderOption {
	return func(r *Reader) {
		r.policy = p
	}
}

// WithLogger sets the logger that receives warnings about skipped lines.
func WithLogger(logger *log.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithName sets the name used in errors and warnings.
func WithName(name string) ReaderOption {
	return func(r *Reader) {
		r.name = name
	}
}

// A Reader yields the addresses of a line-oriented trace, one per call to
// Next. Blank lines and lines starting with # are ignored. Text after a #
// on an address line is a comment.
type Reader struct {
	input   *bufio.Reader
	policy  MalformedPolicy
	logger  *log.Logger
	name    string

	line    int
	addr    uint64
	skipped int
	err     error
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{
		input:   bufio.NewReader(r),
		logger:  log.Default(),
		name:    "trace",
	}

	for _, opt := range opts {
		opt(reader)
	}

	return reader
}

// Next advances to the next address. It returns false at the end of the
// trace or on an error, which Err then reports.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	for {
		line, tooLong, err := r.readLine()
		if err == io.EOF {
			return false
		}

		if err != nil {
			r.err = pagesim.NewError(pagesim.ErrKindIO, "read trace",
				fmt.Sprintf("%s: read failed after line %d", r.name, r.line), err)
			return false
		}

		r.line++

		text, ok := addressText(line)
		if !ok {
			continue
		}

		addr := uint64(0)
		if tooLong {
			err = ErrLineTooLong
			if len(text) > 16 {
				text = text[:16] + "..."
			}
		} else {
			addr, err = ParseAddress(text)
		}

		if err == nil {
			r.addr = addr
			return true
		}

		if r.policy == SkipMalformed {
			r.skipped++
			r.logger.Printf("%s:%d: skipping malformed address %q: %v",
				r.name, r.line, text, err)

			continue
		}

		r.err = pagesim.NewError(pagesim.ErrKindMalformedTrace, "read trace",
			fmt.Sprintf("%s:%d: malformed address %q", r.name, r.line, text),
			err)

		return false
	}
}

// readLine returns the next line without its line ending. Only the text up
// to the first # is kept; the rest of the line is consumed and dropped. The
// bool return value is true if the kept text was cut at MaxLineLength.
func (r *Reader) readLine() (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
		started bool
	)

	for {
		chunk, isPrefix, err := r.input.ReadLine()
		if err != nil {
			if started && err == io.EOF {
				return string(buf), tooLong, nil
			}

			return "", false, err
		}

		started = true

		if !tooLong && bytes.IndexByte(buf, '#') < 0 {
			buf = append(buf, chunk...)

			if i := bytes.IndexByte(buf, '#'); i >= 0 {
				buf = buf[:i+1]
			} else if len(buf) > MaxLineLength {
				buf = buf[:MaxLineLength]
				tooLong = true
			}
		}

		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Address returns the address found by the last successful Next.
func (r *Reader) Address() uint64 {
	return r.addr
}

// Err returns the error that stopped the reader, if any.
func (r *Reader) Err() error {
	return r.err
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Skipped returns the number of malformed lines skipped.
func (r *Reader) Skipped() int {
	return r.skipped
}

// addressText strips leading blanks, comments and trailing whitespace. The
// bool return value is false for lines that carry no address.
func addressText(line string) (string, bool) {
	text := strings.TrimLeft(line, " \t\r")
	if text == "" || text[0] == '#' {
		return "", false
	}

	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}

	return strings.TrimRight(text, " \t\r\n"), true
}
