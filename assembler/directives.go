package assembler

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// directive returns the normalized name of a directive node.
func directive(n *Node) string {
	return strings.ToLower(strings.TrimPrefix(n.Parts[0], "."))
}

// argument returns the operand text of a directive node.
func argument(n *Node) string {
	if len(n.Parts) < 2 {
		return ""
	}
	return n.Parts[1]
}

// defineSymbol handles ".equ name, value" and ".set name, value" while
// parsing, so later lines can use the symbol.
func (asm *Assembler) defineSymbol(n *Node) error {
	switch directive(n) {
	case "equ", "set":
	default:
		return nil
	}
	parts := splitOperands(argument(n))
	if len(parts) != 2 || !reSymbol.MatchString(parts[0]) {
		return fmt.Errorf("%s requires a name and a value", n.Parts[0])
	}
	v, err := asm.evaluate(parts[1])
	if err != nil {
		return err
	}
	asm.symbols[strings.ToLower(parts[0])] = v
	return nil
}

// getDirectiveSize calculates the byte size of a directive for the sizing pass.
//
// Note: pc is passed so .org and .align can be sized correctly.
func (asm *Assembler) getDirectiveSize(n *Node, pc uint32) (uint32, error) {
	switch dir := directive(n); dir {
	case "equ", "set":
		return 0, nil

	case "org":
		addr, err := asm.evaluate(argument(n))
		if err != nil {
			return 0, err
		}
		if addr < int64(pc) {
			return 0, fmt.Errorf("%w: .org %#x is behind %#x", ErrOutOfRange, addr, pc)
		}
		return uint32(addr) - pc, nil

	case "align":
		bits, err := asm.evaluate(argument(n))
		if err != nil {
			return 0, err
		}
		if bits < 0 || bits > 16 {
			return 0, fmt.Errorf("%w: .align %d", ErrOutOfRange, bits)
		}
		mask := uint32(1)<<bits - 1
		return -pc & mask, nil

	case "space":
		count, err := asm.evaluate(argument(n))
		if err != nil {
			return 0, fmt.Errorf("invalid count for %s: %w", n.Parts[0], err)
		}
		if count < 0 {
			return 0, fmt.Errorf("%w: negative count", ErrOutOfRange)
		}
		return uint32(count), nil

	case "byte", "half", "word", "ascii", "asciiz":
		tokens, err := splitDcValues(argument(n))
		if err != nil {
			return 0, err
		}
		if len(tokens) == 0 {
			return 0, fmt.Errorf("%s requires at least one value", n.Parts[0])
		}
		return calculateDcSize(dir, tokens), nil

	default:
		return 0, fmt.Errorf("unknown directive: %s", n.Parts[0])
	}
}

// generateDirectiveCode generates the binary data for assembler directives.
func (asm *Assembler) generateDirectiveCode(n *Node, pc uint32) ([]byte, error) {
	switch dir := directive(n); dir {
	case "equ", "set":
		return nil, nil

	case "org", "align", "space":
		// Padding; the sizing pass already measured it.
		return make([]byte, n.Size), nil

	case "byte", "half", "word", "ascii", "asciiz":
		tokens, err := splitDcValues(argument(n))
		if err != nil {
			return nil, err
		}
		return asm.assembleDc(dir, tokens)

	default:
		return nil, fmt.Errorf("unknown directive: %s", n.Parts[0])
	}
}

// calculateDcSize determines the byte size of a data directive.
func calculateDcSize(directive string, tokens []dcToken) uint32 {
	elementSize := getElementSize(directive)
	var size uint32
	for _, tok := range tokens {
		if tok.Quoted {
			size += uint32(len(tok.Value))
			if directive == "asciiz" {
				size++
			}
		} else {
			// It's a numeric value. It contributes `elementSize` bytes.
			size += elementSize
		}
	}
	return size
}

// assembleDc generates little-endian data for the data directives.
func (asm *Assembler) assembleDc(directive string, tokens []dcToken) ([]byte, error) {
	elementSize := getElementSize(directive)
	var bytesBuf []byte

	for _, tok := range tokens {
		if tok.Quoted {
			bytesBuf = append(bytesBuf, tok.Value...)
			if directive == "asciiz" {
				bytesBuf = append(bytesBuf, 0)
			}
			continue
		}

		val, err := asm.evaluate(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid constant '%s': %w", tok.Value, err)
		}
		limit := int64(1) << (8 * elementSize)
		if val < -limit/2 || val >= limit {
			return nil, fmt.Errorf("%w: %d in .%s", ErrOutOfRange, val, directive)
		}

		switch elementSize {
		case 1:
			bytesBuf = append(bytesBuf, byte(val))
		case 2:
			bytesBuf = binary.LittleEndian.AppendUint16(bytesBuf, uint16(val))
		case 4:
			bytesBuf = binary.LittleEndian.AppendUint32(bytesBuf, uint32(val))
		}
	}

	return bytesBuf, nil
}

// dcToken is one value of a data directive.
type dcToken struct {
	Value  string
	Quoted bool
}

// splitDcValues handles mixed double-quoted strings and numbers. Strings
// use Go escapes; character literals stay numeric.
func splitDcValues(s string) ([]dcToken, error) {
	var tokens []dcToken
	var cur strings.Builder
	flush := func() {
		if val := strings.TrimSpace(cur.String()); val != "" {
			tokens = append(tokens, dcToken{Value: val})
		}
		cur.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			j := i + 1
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(s) {
				return nil, fmt.Errorf("unterminated string: %s", s[i:])
			}
			str, err := strconv.Unquote(s[i : j+1])
			if err != nil {
				return nil, fmt.Errorf("bad string %s: %w", s[i:j+1], err)
			}
			tokens = append(tokens, dcToken{Value: str, Quoted: true})
			cur.Reset()
			i = j
		case '\'':
			// Character literal, copied whole so a quoted comma survives.
			end := min(i+3, len(s))
			cur.WriteString(s[i:end])
			i = end - 1
		case ',':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return tokens, nil
}

// getElementSize returns element size in bytes for data-storage directives.
func getElementSize(directive string) uint32 {
	switch directive {
	case "half":
		return 2
	case "word":
		return 4
	default:
		return 1
	}
}
