// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import "testing"

func TestDecodeNamedEntities(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"&lt;div&gt;", "<div>"},
		{"fish &amp; chips", "fish & chips"},
		{"&quot;quoted&quot;", "\"quoted\""},
		{"&apos;s", "'s"},
		{"&copy; 2026", "© 2026"},
		{"1 &ne; 2 &le; 3", "1 ≠ 2 ≤ 3"},
		{"&larr; back &rarr; forward", "← back → forward"},
		{"wait &hellip; done", "wait … done"},
		{"A&nbsp;B", "A B"},
	}
	for _, test := range cases {
		if got := Decode(test.input); got != test.want {
			t.Errorf("Decode(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestDecodeNumericReferences(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"&#65;", "A"},
		{"&#233;", "é"},
		{"&#x41;", "A"},
		{"&#X41;", "A"},
		{"&#x1F600;", "😀"},
		{"before &#66; after", "before B after"},
	}
	for _, test := range cases {
		if got := Decode(test.input); got != test.want {
			t.Errorf("Decode(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestDecodeMalformedPassthrough(t *testing.T) {
	cases := []string{
		"&#xZZZ;",
		"&#99999999;",   // out of unicode range
		"&#xD800;",      // surrogate
		"&unknown;",     // unregistered name
		"&# 65;",        // space breaks the digit run
		"strip & trim",  // bare ampersand
		"&#65",          // missing terminator
	}
	for _, input := range cases {
		if got := Decode(input); got != input {
			t.Errorf("Decode(%q) = %q, want input unchanged", input, got)
		}
	}
}

func TestDecodeEmptyNumericReference(t *testing.T) {
	// The digit run is empty, so the reference is emitted literally
	// with the terminator consumed.
	if got := Decode("&#;"); got != "&#" {
		t.Errorf("Decode(%q) = %q, want %q", "&#;", got, "&#")
	}
}

func TestDecodeMixedContent(t *testing.T) {
	input := "&lt;b&gt;bold&lt;/b&gt; &amp; &#67;ode &copy;"
	want := "<b>bold</b> & Code ©"
	if got := Decode(input); got != want {
		t.Errorf("Decode(%q) = %q, want %q", input, got, want)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	inputs := []string{
		"&lt;div&gt; &amp; &#65; &copy;",
		"plain text with no references",
		"&#xZZZ; malformed stays put",
	}
	for _, input := range inputs {
		once := Decode(input)
		if twice := Decode(once); twice != once {
			t.Errorf("Decode not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestDecodeNoAmpersandFastPath(t *testing.T) {
	input := "nothing to do here"
	if got := Decode(input); got != input {
		t.Errorf("Decode(%q) = %q, want unchanged", input, got)
	}
}
