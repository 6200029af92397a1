// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segment describes the 16-segment alphanumeric digits driven by the
// ht1632 package and the ASCII tables used to light them.
//
// Segment layout, as used by the Mask constants:
//
//	 __A1____A2__
//	|\     |     /|
//	F  H   J   K  B
//	|    \ | /    |
//	 __G1__ __G2__
//	|    / | \    |
//	E  N   M   L  C
//	|/     |     \|
//	 __D1____D2__
package segment

import (
	"fmt"
	"strings"
)

// Mask is a set of lit segments. Bit n of the mask lands in byte n of the
// controller RAM.
type Mask uint32

const (
	A1 Mask = 1 << iota // top left bar
	A2                  // top right bar
	B                   // upper right vertical
	C                   // lower right vertical
	D1                  // bottom left bar
	D2                  // bottom right bar
	E                   // lower left vertical
	F                   // upper left vertical
	G1                  // middle left bar
	G2                  // middle right bar
	H                   // upper left diagonal
	J                   // upper center vertical
	K                   // upper right diagonal
	L                   // lower right diagonal
	M                   // lower center vertical
	N                   // lower left diagonal

	// DP is the decimal point. It is not part of the 16 RAM rows.
	DP Mask = 1 << 31

	// None has every segment off.
	None Mask = 0
	// All has the 16 segments on. The decimal point is excluded.
	All Mask = 1<<Count - 1
)

// Count is the number of segments per digit.
const Count = 16

var names = [Count]string{"A1", "A2", "B", "C", "D1", "D2", "E", "F", "G1", "G2", "H", "J", "K", "L", "M", "N"}

// Has reports whether all the segments in o are lit in m.
func (m Mask) Has(o Mask) bool {
	return m&o == o
}

// Segments returns the number of lit segments, decimal point excluded.
func (m Mask) Segments() int {
	n := 0
	for i := 0; i < Count; i++ {
		if m&(1<<i) != 0 {
			n++
		}
	}
	return n
}

func (m Mask) String() string {
	if m == None {
		return "None"
	}
	var parts []string
	for i, name := range names {
		if m&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if m&DP != 0 {
		parts = append(parts, "DP")
	}
	if rest := m &^ (All | DP); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
