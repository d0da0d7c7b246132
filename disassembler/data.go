package disassembler

import (
	"fmt"
	"strings"
)

// isPrintableASCII checks if a byte can appear unescaped in a string
// directive.
func isPrintableASCII(b byte) bool {
	return b >= 0x20 && b <= 0x7E && b != '"' && b != '\\'
}

// analyzeAndFormatData renders a block that control flow never reached.
// NUL-terminated printable runs become .asciiz strings, aligned words
// .word directives and anything else .byte directives.
func analyzeAndFormatData(data []byte, baseAddr uint32, stringCounter *int) string {
	var sb strings.Builder
	n := len(data)
	minStrLen := 4

	for i := 0; i < n; {
		// Find printable run
		end := i
		for end < n && isPrintableASCII(data[end]) {
			end++
		}
		if end-i >= minStrLen && end < n && data[end] == 0x00 {
			fmt.Fprintf(&sb, "string%d:\n", *stringCounter)
			(*stringCounter)++
			fmt.Fprintf(&sb, "    %-8s \"%s\"\n", ".asciiz", data[i:end])
			i = end + 1
			continue
		}

		// Everything up to the next string candidate is raw data.
		next := i + 1
		for next < n && !stringAt(data, next, minStrLen) {
			next++
		}
		sb.WriteString(formatRaw(data[i:next], baseAddr+uint32(i)))
		i = next
	}

	return sb.String()
}

// stringAt reports whether a terminated string of at least minLen characters
// starts at i.
func stringAt(data []byte, i, minLen int) bool {
	end := i
	for end < len(data) && isPrintableASCII(data[end]) {
		end++
	}
	return end-i >= minLen && end < len(data) && data[end] == 0
}

// formatRaw emits .byte directives up to the next word boundary and .word
// directives, four per line, from there on.
func formatRaw(data []byte, addr uint32) string {
	var sb strings.Builder
	const wordsPerLine = 4

	for len(data) > 0 {
		if addr%4 != 0 || len(data) < 4 {
			count := min(int(4-addr%4), len(data))
			if addr%4 == 0 {
				count = len(data)
			}
			sb.WriteString(formatHexBytes(data[:count]))
			data = data[count:]
			addr += uint32(count)
			continue
		}

		var words []string
		for len(data) >= 4 && len(words) < wordsPerLine {
			v := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
			words = append(words, fmt.Sprintf("0x%08x", v))
			data = data[4:]
			addr += 4
		}
		fmt.Fprintf(&sb, "    %-8s %s\n", ".word", strings.Join(words, ", "))
	}

	return sb.String()
}

// formatHexBytes formats a slice of bytes into .byte directives, 16 bytes per line.
func formatHexBytes(data []byte) string {
	var sb strings.Builder
	const bytesPerLine = 16

	for i := 0; i < len(data); i += bytesPerLine {
		chunk := data[i:min(i+bytesPerLine, len(data))]
		parts := make([]string, len(chunk))
		for j, b := range chunk {
			parts[j] = fmt.Sprintf("0x%02x", b)
		}
		fmt.Fprintf(&sb, "    %-8s %s\n", ".byte", strings.Join(parts, ", "))
	}

	return sb.String()
}
