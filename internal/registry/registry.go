// Package registry holds the static table of supported barcode symbologies.
//
// The registry is assembled once at startup and is read-only afterwards, so a
// single instance can be shared across concurrent request handlers without
// locking. Adding a symbology means adding one Entry (and a RequiredLength if
// the format only accepts fixed-length numeric payloads).
package registry

import (
	"fmt"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"
)

// QRCode is the registry key for the QR code path. It shares the registry with
// the 1D symbologies but is rendered by the QR encoder, not a bar encoder.
const QRCode = "qrcode"

// Entry describes one supported symbology.
type Entry struct {
	ID          string
	Description string

	// RequiredLength, when non-zero, enables the strict pre-check: the payload
	// must be exactly this many characters and all digits. Zero means the
	// encoder's own failure path is the only validation.
	RequiredLength int

	// Encode renders the payload as an unscaled barcode matrix. Nil for the QR
	// entry, which is dispatched to the QR encoder instead.
	Encode func(data string) (barcode.Barcode, error)
}

// Registry is the immutable format table.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// New builds the format table. Call once at startup.
func New() *Registry {
	entries := []Entry{
		{
			ID:          "code128",
			Description: "Code 128 - Variable length, alphanumeric",
			Encode:      func(data string) (barcode.Barcode, error) { return code128.Encode(data) },
		},
		{
			ID:          "code39",
			Description: "Code 39 - Variable length, alphanumeric",
			Encode:      func(data string) (barcode.Barcode, error) { return code39.Encode(data, true, true) },
		},
		{
			ID:             "ean8",
			Description:    "EAN-8 - 8 digits",
			RequiredLength: 7,
			Encode:         func(data string) (barcode.Barcode, error) { return ean.Encode(data) },
		},
		{
			ID:             "ean13",
			Description:    "EAN-13 - 13 digits",
			RequiredLength: 12,
			Encode:         func(data string) (barcode.Barcode, error) { return ean.Encode(data) },
		},
		{
			ID:          "ean14",
			Description: "EAN-14 - 14 digits",
			Encode:      encodeEAN14,
		},
		{
			ID:          "jan",
			Description: "JAN - Japanese Article Number",
			Encode:      encodeJAN,
		},
		{
			ID:             "upc",
			Description:    "UPC-A - 12 digits",
			RequiredLength: 11,
			// UPC-A is the EAN-13 symbol with a leading zero system digit.
			Encode: func(data string) (barcode.Barcode, error) { return ean.Encode("0" + data) },
		},
		{
			ID:             "isbn10",
			Description:    "ISBN-10 - 10 digits",
			RequiredLength: 9,
			// Rendered as its Bookland EAN-13 equivalent (978 prefix).
			Encode: func(data string) (barcode.Barcode, error) { return ean.Encode("978" + data) },
		},
		{
			ID:             "isbn13",
			Description:    "ISBN-13 - 13 digits",
			RequiredLength: 12,
			Encode:         encodeISBN13,
		},
		{
			ID:          "issn",
			Description: "ISSN - International Standard Serial Number",
			Encode:      encodeISSN,
		},
		{
			ID:          "itf",
			Description: "ITF - Interleaved 2 of 5",
			Encode:      func(data string) (barcode.Barcode, error) { return twooffive.Encode(data, true) },
		},
		{
			ID:          "pzn",
			Description: "PZN - Pharmazentralnummer",
			Encode:      encodePZN,
		},
		{
			ID:          QRCode,
			Description: "QR Code - 2D matrix, arbitrary data",
		},
	}

	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.ID] = e
		r.order = append(r.order, e.ID)
	}
	return r
}

// Lookup returns the entry for the given format id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// IDs returns the format ids in table order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Entries returns all entries in table order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// gtinCheckDigit computes the GS1 mod-10 check digit for a digit string.
func gtinCheckDigit(digits string) byte {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight = 4 - weight
	}
	return byte('0' + (10-sum%10)%10)
}

// encodeEAN14 renders a GTIN-14 as its ITF-14 carrier symbol.
func encodeEAN14(data string) (barcode.Barcode, error) {
	if len(data) != 13 || !allDigits(data) {
		return nil, fmt.Errorf("ean14 requires 13 digits, got %q", data)
	}
	return twooffive.Encode(data+string(gtinCheckDigit(data)), true)
}

func encodeJAN(data string) (barcode.Barcode, error) {
	if !strings.HasPrefix(data, "45") && !strings.HasPrefix(data, "49") {
		return nil, fmt.Errorf("jan requires a Japanese country prefix (45 or 49), got %q", data)
	}
	return ean.Encode(data)
}

func encodeISBN13(data string) (barcode.Barcode, error) {
	if !strings.HasPrefix(data, "978") && !strings.HasPrefix(data, "979") {
		return nil, fmt.Errorf("isbn13 requires a 978 or 979 prefix, got %q", data)
	}
	return ean.Encode(data)
}

// encodeISSN maps an ISSN to its EAN-13 carrier: 977 + first seven digits +
// "00" sequence variant, check digit supplied by the EAN encoder.
func encodeISSN(data string) (barcode.Barcode, error) {
	digits := strings.ReplaceAll(data, "-", "")
	if n := len(digits); n == 8 {
		digits = digits[:7]
	} else if n != 7 {
		return nil, fmt.Errorf("issn requires 7 or 8 characters, got %q", data)
	}
	if !allDigits(digits) {
		return nil, fmt.Errorf("issn requires numeric data, got %q", data)
	}
	return ean.Encode("977" + digits + "00")
}

// encodePZN renders a Pharmazentralnummer as Code 39 with the PZN prefix and
// its mod-11 check digit appended to the payload.
func encodePZN(data string) (barcode.Barcode, error) {
	if len(data) != 6 || !allDigits(data) {
		return nil, fmt.Errorf("pzn requires 6 digits, got %q", data)
	}
	sum := 0
	for i := 0; i < 6; i++ {
		sum += (i + 2) * int(data[i]-'0')
	}
	check := sum % 11
	if check == 10 {
		return nil, fmt.Errorf("pzn %q has no valid check digit", data)
	}
	return code39.Encode(fmt.Sprintf("PZN-%s%d", data, check), false, false)
}
