// Package decode reads generated files back into the bytes they embed.
package decode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/marcinbor85/gohex"
)

// Parsed is the content recovered from a generated file.
type Parsed struct {
	// Identifier is the array symbol. Empty for Intel HEX input.
	Identifier string
	// Length is the declared length constant, or len(Data) for Intel HEX.
	Length int
	// Data holds the decoded bytes in order.
	Data []byte
	// RowLengths is the number of values on each array row.
	RowLengths []int
}

var (
	lengthRe  = regexp.MustCompile(`const unsigned int (\S+)_len = (\d+);`)
	arrayRe   = regexp.MustCompile(`(?s)const unsigned char (\S+)\[\][^=]*=\s*\{\n?(.*?)\};`)
	literalRe = regexp.MustCompile(`0x([0-9a-fA-F]{2})`)
)

// File decodes the generated file at path, picking the parser from its content:
// Intel HEX files start with ':'.
func File(path string) (*Parsed, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimLeft(content, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == ':' {
		return IntelHex(bytes.NewReader(content))
	}
	return Header(bytes.NewReader(content))
}

// Header parses a generated C header.
func Header(r io.Reader) (*Parsed, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(content)

	m := lengthRe.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("length constant not found")
	}
	length, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("invalid length constant %q: %w", m[2], err)
	}

	a := arrayRe.FindStringSubmatch(text)
	if a == nil {
		return nil, fmt.Errorf("array declaration not found")
	}
	if a[1] != m[1] {
		return nil, fmt.Errorf("array %q does not match length constant %q", a[1], m[1]+"_len")
	}

	p := &Parsed{Identifier: a[1], Length: length}
	scanner := bufio.NewScanner(strings.NewReader(a[2]))
	for scanner.Scan() {
		lits := literalRe.FindAllStringSubmatch(scanner.Text(), -1)
		if len(lits) == 0 {
			continue
		}
		for _, lit := range lits {
			v, err := strconv.ParseUint(lit[1], 16, 8)
			if err != nil {
				return nil, err
			}
			p.Data = append(p.Data, byte(v))
		}
		p.RowLengths = append(p.RowLengths, len(lits))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// IntelHex parses Intel HEX records. Gaps between segments are filled with 0xff.
func IntelHex(r io.Reader) (*Parsed, error) {
	mem := gohex.NewMemory()
	if err := parseIntelHex(mem, r); err != nil {
		return nil, fmt.Errorf("failed to parse intel hex: %w", err)
	}

	var end uint32
	for _, seg := range mem.GetDataSegments() {
		if e := seg.Address + uint32(len(seg.Data)); e > end {
			end = e
		}
	}

	data := []byte{}
	if end > 0 {
		data = mem.ToBinary(0, end, 0xff)
	}
	return &Parsed{Length: len(data), Data: data}, nil
}

// parseIntelHex runs the gohex parser, turning its panics on oversized
// records into errors.
func parseIntelHex(mem *gohex.Memory, r io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed record: %v", p)
		}
	}()
	return mem.ParseIntelHex(r)
}
