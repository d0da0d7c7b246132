package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/psx/cpu"
)

// Mnemonic represents a parsed instruction mnemonic.
type Mnemonic struct {
	Value string
	// Cop is the coprocessor number of mfc0..swc3 style mnemonics.
	Cop uint8
}

func (m Mnemonic) String() string {
	if copSuffixed[m.Value] {
		return fmt.Sprintf("%s%d", m.Value, m.Cop)
	}
	return m.Value
}

// copSuffixed lists the mnemonics that take a coprocessor number.
var copSuffixed = map[string]bool{
	"mfc": true, "cfc": true, "mtc": true, "ctc": true, "lwc": true, "swc": true,
}

var (
	reLabel  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*):(.*)$`)
	reMemory = regexp.MustCompile(`^(.*)\(\s*(\$[A-Za-z0-9]+)\s*\)$`)
	reSymbol = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// ParseMnemonic splits an instruction like "MTC2" → ("mtc", 2).
func ParseMnemonic(s string) (Mnemonic, error) {
	s = strings.ToLower(s)
	if copSuffixed[s] {
		return Mnemonic{}, fmt.Errorf("%w: %s needs a coprocessor number", ErrUnknownMnemonic, s)
	}
	if n := len(s); n > 3 && copSuffixed[s[:n-1]] {
		d := s[n-1]
		if d < '0' || d > '3' {
			return Mnemonic{}, fmt.Errorf("%w: %s", ErrUnknownMnemonic, s)
		}
		return Mnemonic{Value: s[:n-1], Cop: d - '0'}, nil
	}
	return Mnemonic{Value: s}, nil
}

// registerNumbers maps register names without the '$' to numbers.
var registerNumbers = func() map[string]uint32 {
	m := map[string]uint32{"s8": cpu.RegFP}
	for i, name := range cpu.RegisterNames {
		m[name] = uint32(i)
	}
	return m
}()

// parseRegister accepts $name and $number.
func parseRegister(s string) (uint32, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "$") {
		return 0, fmt.Errorf("%w: %q", ErrBadRegister, s)
	}
	if r, ok := registerNumbers[s[1:]]; ok {
		return r, nil
	}
	n, err := strconv.ParseUint(s[1:], 10, 8)
	if err != nil || n > 31 {
		return 0, fmt.Errorf("%w: %q", ErrBadRegister, s)
	}
	return uint32(n), nil
}

// parseCopRegister accepts $number or a bare number for coprocessor
// registers.
func parseCopRegister(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n > 31 {
		return 0, fmt.Errorf("%w: coprocessor register %q", ErrBadRegister, s)
	}
	return uint32(n), nil
}

// parseMemory splits "offset($base)". An empty offset is zero.
func (asm *Assembler) parseMemory(s string) (int64, uint32, error) {
	m := reMemory.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("expected offset($base), got %q", s)
	}
	base, err := parseRegister(m[2])
	if err != nil {
		return 0, 0, err
	}
	var off int64
	if strings.TrimSpace(m[1]) != "" {
		off, err = asm.evaluate(m[1])
		if err != nil {
			return 0, 0, err
		}
	}
	if off < -0x8000 || off > 0x7FFF {
		return 0, 0, fmt.Errorf("%w: offset %d", ErrOutOfRange, off)
	}
	return off, base, nil
}

// evaluate computes an operand value: terms joined by + and -, where a term
// is a constant, a symbol, a label, or %hi()/%lo() of an expression.
func (asm *Assembler) evaluate(s string) (int64, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "%hi(") && strings.HasSuffix(s, ")"):
		v, err := asm.evaluate(s[4 : len(s)-1])
		return int64(hi(uint32(v)) & 0xFFFF), err
	case strings.HasPrefix(lower, "%lo(") && strings.HasSuffix(s, ")"):
		v, err := asm.evaluate(s[4 : len(s)-1])
		return int64(lo(uint32(v))), err
	}

	var total int64
	sign := int64(1)
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			c := s[i]
			if c == '\'' && i+2 < len(s) && s[i+2] == '\'' {
				i += 2
				continue
			}
			if (c != '+' && c != '-') || i == start {
				continue
			}
		}
		v, err := asm.term(s[start:i])
		if err != nil {
			return 0, err
		}
		total += sign * v
		if i < len(s) {
			sign = 1
			if s[i] == '-' {
				sign = -1
			}
		}
		start = i + 1
	}
	return total, nil
}

// term resolves one operand of an expression.
func (asm *Assembler) term(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty expression")
	}
	if reSymbol.MatchString(s) {
		name := strings.ToLower(s)
		if v, ok := asm.symbols[name]; ok {
			return v, nil
		}
		if addr, ok := asm.labels[name]; ok {
			return int64(addr), nil
		}
		return 0, fmt.Errorf("%w: %s", ErrUndefinedSymbol, s)
	}
	return parseConstant(s, asm)
}

// parseConstant parses character literals and numbers in decimal, $hex,
// 0x hex and %binary.
func parseConstant(s string, asm *Assembler) (int64, error) {
	s = strings.TrimSpace(s)

	// Character literal ('A')
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		return int64(s[1]), nil
	}

	// Symbol lookup
	if asm != nil {
		if val, ok := asm.symbols[strings.ToLower(s)]; ok {
			return val, nil
		}
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s = s[1:]
		base = 16
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		s = s[2:]
		base = 16
	case strings.HasPrefix(s, "%"):
		s = s[1:]
		base = 2
	}

	val, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	if neg {
		val = -val
	}
	return val, nil
}

// splitOperands splits an operand string by commas, but ignores commas inside parentheses.
func splitOperands(s string) []string {
	var result []string
	parenLevel := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			parenLevel++
		case ')':
			parenLevel--
		case ',':
			if parenLevel == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}

// stripComment removes a '#' or ';' comment outside quotes.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case quote == 0 && (c == '#' || c == ';'):
			return line[:i]
		}
	}
	return line
}
