// Package docnum generates the site-local document numbers used on
// paperwork: PRN and IPD admission numbers and invoice numbers. The format
// is PREFIX-YYYYMM-XXXX with a random hex suffix, so numbers sort roughly
// by month while staying unguessable.
package docnum

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	PrefixPRN     = "PRN"
	PrefixIPD     = "IPD"
	PrefixInvoice = "INV"
)

func Generate(prefix string, at time.Time) string {
	var buf [2]byte
	_, _ = rand.Read(buf[:])
	suffix := strings.ToUpper(hex.EncodeToString(buf[:]))
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("200601"), suffix)
}
