// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segment

// Table maps every byte value to the segments lit for it. Codes without a
// glyph map to None.
type Table [256]Mask

// Lookup returns the segments for c.
func (t *Table) Lookup(c byte) Mask {
	return t[c]
}

// Default is the character set of the appliance display.
//
// 0x01-0x10 light a single segment each, 0x11 lights all of them and
// 0x12/0x13 light the two interleaved halves; they are used by the end of
// line display test. Lower case letters render like their upper case
// counterpart. 0x80-0x9a hold Greek and 0xb0-0xd1 Cyrillic look-alikes.
var Default = newDefault()

// TestPattern lights every segment for every code except NUL and space.
var TestPattern = newTestPattern()

func newDefault() Table {
	t := Table{
		0x01: A1, 0x02: A2, 0x03: B, 0x04: C, 0x05: D1, 0x06: D2, 0x07: E, 0x08: F,
		0x09: G1, 0x0a: G2, 0x0b: H, 0x0c: J, 0x0d: K, 0x0e: L, 0x0f: M, 0x10: N,
		0x11: All,
		0x12: A1 | B | D1 | E | G1 | H | K | M,
		0x13: A2 | C | D2 | F | G2 | J | L | N,

		'&':  A1 | A2 | C | D1 | D2 | E | G1 | H | K | L,
		'\'': J,
		'(':  A1 | J | G1 | F, // degree sign
		')':  C | E | D1 | D2, // small u
		'*':  C | E | F | G1 | G2, // small h
		'+':  M | J | G1 | G2,
		',':  M,
		'-':  G1 | G2,
		'.':  D1,
		'/':  N | K,

		'0': A1 | A2 | B | C | D1 | D2 | E | F | K | N,
		'1': B | C | K,
		'2': A1 | A2 | D1 | D2 | E | B | G1 | G2,
		'3': A1 | A2 | D1 | D2 | C | B | G1 | G2,
		'4': B | C | G1 | G2 | F,
		'5': A1 | A2 | C | D1 | D2 | F | G1 | G2,
		'6': A1 | A2 | C | D1 | D2 | F | G1 | G2 | E,
		'7': A1 | A2 | C | B,
		'8': A1 | A2 | C | D1 | D2 | F | G1 | G2 | E | B,
		'9': A1 | A2 | C | D1 | D2 | F | G1 | G2 | B,
		':': G2 | D2,

		'A': A1 | A2 | B | C | E | F | G1 | G2,
		'B': A1 | A2 | B | C | D1 | D2 | J | M | G2,
		'C': A1 | A2 | D1 | D2 | E | F,
		'D': A1 | A2 | B | C | D1 | D2 | J | M,
		'E': A1 | A2 | D1 | D2 | E | F | G1 | G2,
		'F': A1 | A2 | E | F | G1 | G2,
		'G': A1 | A2 | G2 | C | D1 | D2 | E | F,
		'H': B | C | E | F | G1 | G2,
		'I': A1 | A2 | D1 | D2 | J | M,
		'J': B | C | D1 | D2 | E,
		'K': K | L | G1 | F | E,
		'L': D1 | D2 | E | F,
		'M': B | C | H | K | E | F,
		'N': F | E | H | L | B | C,
		'O': A1 | A2 | B | C | D1 | D2 | E | F,
		'P': A1 | A2 | B | E | F | G1 | G2,
		'Q': A1 | A2 | B | C | D1 | D2 | E | F | L,
		'R': A1 | A2 | B | L | E | F | G1 | G2,
		'S': A1 | A2 | D1 | D2 | C | F | G1 | G2,
		'T': A1 | A2 | J | M,
		'U': B | C | D1 | D2 | E | F,
		'V': F | E | N | K,
		'W': B | C | L | N | E | F,
		'X': H | L | N | K,
		'Y': H | M | K,
		'Z': A1 | A2 | D1 | D2 | N | K,

		'{': A1 | B | D1 | E | G1 | H | K | M,
		'}': A2 | C | D2 | F | N | G2 | J | L,

		0x80: A1 | A2 | B | C | E | F | G1 | G2,
		0x81: A1 | A2 | B | C | D1 | D2 | J | M | G2,
		0x82: A1 | A2 | E | F,
		0x83: F | E | H | L | D1 | D2,
		0x84: A1 | A2 | D1 | D2 | E | F | G1,
		0x85: A1 | A2 | D1 | D2 | K | N,
		0x86: B | C | E | F | G1 | G2,
		0x87: A1 | A2 | B | C | D1 | D2 | F | E | G1 | G2,
		0x88: A1 | A2 | J | M | D1 | D2,
		0x89: F | E | G1 | K | L,
		0x8a: F | E | H | L,
		0x8b: B | C | H | K | E | F,
		0x8c: F | E | H | L | B | C,
		0x8d: A1 | A2 | G1 | G2 | D1 | D2,
		0x8e: A1 | A2 | B | C | D1 | D2 | E | F,
		0x8f: A1 | A2 | B | C | E | F,
		0x90: A1 | A2 | B | E | F | G1 | G2,
		0x91: A1 | A2 | H | N | D1 | D2,
		0x92: A1 | A2 | J | M,
		0x93: F | G1 | G2 | B | M,
		0x94: A1 | A2 | B | C | D1 | D2 | E | F | J | M,
		0x95: H | K | L | N,
		0x96: F | G1 | G2 | J | B | M,
		0x97: A1 | A2 | G1 | G2 | D1 | D2 | F | B | M,
		0x98: A2 | J | G2 | M | D2 | N, // AE ligature
		0x99: E | F | A1 | G1, // small F
		0x9a: A1 | A2 | B | C | G1 | G2 | D1 | D2 | E, // turned e

		0xb0: A1 | A2 | B | C | E | F | G1 | G2,
		0xb1: A1 | A2 | C | D1 | D2 | F | G1 | G2 | E,
		0xb2: A1 | A2 | B | C | D1 | D2 | G2 | J | M,
		0xb3: A1 | A2 | E | F,
		0xb4: A1 | A2 | H | K | E | C | G1 | G2,
		0xb5: A1 | A2 | D1 | D2 | E | F | G1,
		0xb6: A1 | A2 | D1 | D2 | E | F | G1,
		0xb7: H | J | K | L | M | N,
		0xb8: A1 | A2 | D1 | D2 | B | C | G1 | G2,
		0xb9: B | C | E | F | N | K,
		0xba: B | C | E | F | N | K,
		0xbb: F | E | G1 | K | L,
		0xbc: D1 | M | J | A2 | B | C,
		0xbd: B | C | H | K | E | F,
		0xbe: B | C | E | F | G1 | G2,
		0xbf: A1 | A2 | B | C | D1 | D2 | E | F,
		0xc0: A1 | A2 | B | C | E | F,
		0xc1: A1 | A2 | B | E | F | G1 | G2,
		0xc2: A1 | A2 | D1 | D2 | E | F,
		0xc3: A1 | A2 | J | M,
		0xc4: H | N | K | E,
		0xc5: A1 | A2 | B | C | D1 | D2 | E | F | J | M,
		0xc6: H | L | N | K,
		0xc7: F | J | G1 | G2 | C,
		0xc8: B | C | G1 | G2 | F,
		0xc9: B | C | D1 | D2 | E | F | J | M,
		0xca: F | J | B | G1 | G2 | C,
		0xcb: A1 | J | M | G2 | D2 | C,
		0xcc: F | E | D1 | G1 | M | B | C,
		0xcd: F | E | D1 | D2 | G1 | G2 | C,
		0xce: A1 | A2 | D1 | D2 | C | B | G1 | G2,
		0xcf: A2 | B | C | D2 | M | J | G1 | E | F,
		0xd0: A1 | A2 | B | C | G1 | G2 | N | F,
		0xd1: A1 | A2 | D1 | D2 | J | M,
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] = t[c-'a'+'A']
	}
	return t
}

func newTestPattern() Table {
	var t Table
	for i := range t {
		t[i] = All
	}
	t[0] = None
	t[' '] = None
	return t
}
