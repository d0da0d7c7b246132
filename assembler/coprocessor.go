package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Urethramancer/psx/cpu"
	"github.com/Urethramancer/psx/gte"
)

// gteBase is the COP2 command prefix: opcode COP2 with bit 25 set.
const gteBase = cpu.OPCOP2<<26 | 1<<25

// assembleGTE encodes a GTE command. Options are sf, lm and for mvmva the
// selectors mx=n, v=n and cv=n.
func assembleGTE(op gte.Opcode, operands []string) (uint32, error) {
	c := gte.Command{Op: op}
	for _, o := range operands {
		o = strings.ToLower(strings.TrimSpace(o))
		switch o {
		case "sf":
			c.SF = true
			continue
		case "lm":
			c.LM = true
			continue
		}

		key, val, ok := strings.Cut(o, "=")
		if !ok || op != gte.MVMVA {
			return 0, fmt.Errorf("unknown option %q for %s", o, op)
		}
		n, err := strconv.ParseUint(strings.TrimSpace(val), 0, 8)
		if err != nil || n > 3 {
			return 0, fmt.Errorf("%w: %s", ErrOutOfRange, o)
		}
		switch strings.TrimSpace(key) {
		case "mx":
			c.MX = uint8(n)
		case "v":
			c.V = uint8(n)
		case "cv":
			c.CV = uint8(n)
		default:
			return 0, fmt.Errorf("unknown option %q for %s", o, op)
		}
	}
	return gteBase | c.Encode(), nil
}
