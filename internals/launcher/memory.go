package launcher

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pbnjay/memory"
	"github.com/pkg/errors"
)

// MemoryBytes parses a java heap size like "4G", "512m" or "4096M"
func MemoryBytes(mem string) (uint64, error) {
	mem = strings.TrimSpace(mem)
	if mem == "" {
		return 0, errors.New("empty memory size")
	}
	// java sizes are binary units
	last := mem[len(mem)-1]
	if (last >= 'a' && last <= 'z') || (last >= 'A' && last <= 'Z') {
		mem += "iB"
	}
	size, err := humanize.ParseBytes(mem)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid memory size %q", mem)
	}
	return size, nil
}

// ExceedsSystemMemory reports whether mem is more than the total memory of this machine.
// It returns false if either one is unknown
func ExceedsSystemMemory(mem string) bool {
	size, err := MemoryBytes(mem)
	if err != nil {
		return false
	}
	total := memory.TotalMemory()
	return total != 0 && size > total
}
