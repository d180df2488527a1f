// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

// Package entity decodes HTML character references found in markdown
// text content. Decoding is total: malformed input is passed through
// unchanged rather than producing an error.
package entity

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// namedEntities maps each recognized named reference to its literal
// replacement. Order matters: when two patterns could match at the
// same position, strings.Replacer picks the earlier entry, which gives
// the deterministic leftmost, first-registered resolution the decoder
// relies on.
var namedEntities = []string{
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&apos;", "'",
	"&#39;", "'",
	"&nbsp;", " ",
	"&copy;", "©",
	"&reg;", "®",
	"&trade;", "™",
	"&euro;", "€",
	"&pound;", "£",
	"&yen;", "¥",
	"&cent;", "¢",
	"&sect;", "§",
	"&para;", "¶",
	"&bull;", "•",
	"&middot;", "·",
	"&hellip;", "…",
	"&mdash;", "—",
	"&ndash;", "–",
	"&lsquo;", "'",
	"&rsquo;", "'",
	"&ldquo;", "“",
	"&rdquo;", "”",
	"&laquo;", "«",
	"&raquo;", "»",
	"&times;", "×",
	"&divide;", "÷",
	"&plusmn;", "±",
	"&ne;", "≠",
	"&le;", "≤",
	"&ge;", "≥",
	"&infin;", "∞",
	"&sum;", "∑",
	"&prod;", "∏",
	"&radic;", "√",
	"&larr;", "←",
	"&rarr;", "→",
	"&uarr;", "↑",
	"&darr;", "↓",
	"&harr;", "↔",
}

// namedReplacer is the shared multi-pattern matcher over the named
// entity dictionary. Built once; strings.Replacer is safe for
// concurrent use, so independent render passes share it freely.
var namedReplacer = sync.OnceValue(func() *strings.Replacer {
	return strings.NewReplacer(namedEntities...)
})

// Decode translates named and numeric HTML entities in text to their
// literal characters. Input without an ampersand is returned unchanged
// without allocation. Unrecognized or malformed entities are preserved
// byte-for-byte.
func Decode(text string) string {
	if !strings.ContainsRune(text, '&') {
		return text
	}
	result := namedReplacer().Replace(text)
	return decodeNumeric(result)
}

// decodeNumeric handles &#DDDD; (decimal) and &#xHHHH; / &#XHHHH;
// (hex) references. A malformed or out-of-range reference is emitted
// back exactly as scanned, including the &# prefix and any digits
// consumed.
func decodeNumeric(text string) string {
	if !strings.Contains(text, "&#") {
		return text
	}

	var result strings.Builder
	result.Grow(len(text))

	for position := 0; position < len(text); {
		if text[position] != '&' || position+1 >= len(text) || text[position+1] != '#' {
			_, size := utf8.DecodeRuneInString(text[position:])
			result.WriteString(text[position : position+size])
			position += size
			continue
		}

		// Consume "&#" and an optional hex marker.
		scan := position + 2
		isHex := false
		if scan < len(text) && (text[scan] == 'x' || text[scan] == 'X') {
			isHex = true
			scan++
		}

		digitsStart := scan
		terminated := false
		valid := true
		for scan < len(text) {
			character := text[scan]
			if character == ';' {
				terminated = true
				break
			}
			if (isHex && isHexDigit(character)) || (!isHex && character >= '0' && character <= '9') {
				scan++
				continue
			}
			valid = false
			break
		}
		digits := text[digitsStart:scan]

		if !valid || !terminated {
			// Emit the prefix and scanned digits literally; the
			// offending character (if any) is handled on the next
			// iteration.
			result.WriteString("&#")
			if isHex {
				result.WriteByte('x')
			}
			result.WriteString(digits)
			position = scan
			continue
		}

		// Consume the terminator.
		scan++

		if digits == "" {
			result.WriteString("&#")
			if isHex {
				result.WriteByte('x')
			}
			result.WriteString(digits)
			position = scan
			continue
		}

		base := 10
		if isHex {
			base = 16
		}
		code, err := strconv.ParseUint(digits, base, 32)
		if err == nil && utf8.ValidRune(rune(code)) {
			result.WriteRune(rune(code))
		} else {
			result.WriteString("&#")
			if isHex {
				result.WriteByte('x')
			}
			result.WriteString(digits)
			result.WriteByte(';')
		}
		position = scan
	}

	return result.String()
}

func isHexDigit(character byte) bool {
	switch {
	case character >= '0' && character <= '9':
		return true
	case character >= 'a' && character <= 'f':
		return true
	case character >= 'A' && character <= 'F':
		return true
	}
	return false
}
