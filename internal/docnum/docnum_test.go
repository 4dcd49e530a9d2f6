package docnum

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	at := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)

	pattern := regexp.MustCompile(`^INV-202603-[0-9A-F]{4}$`)
	got := Generate(PrefixInvoice, at)
	if !pattern.MatchString(got) {
		t.Errorf("Generate = %q, want match for %s", got, pattern)
	}

	if got := Generate(PrefixPRN, at); got[:4] != "PRN-" {
		t.Errorf("Generate with PRN prefix = %q", got)
	}
	if got := Generate(PrefixIPD, at); got[:4] != "IPD-" {
		t.Errorf("Generate with IPD prefix = %q", got)
	}
}

func TestGenerateVaries(t *testing.T) {
	at := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[Generate(PrefixInvoice, at)] = true
	}
	// 2 random bytes give 65536 values; 50 draws colliding into one value
	// would mean the randomness is broken.
	if len(seen) < 2 {
		t.Errorf("Generate produced %d distinct numbers in 50 draws", len(seen))
	}
}
