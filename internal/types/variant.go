//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package types

// Variant is a small closed tag selecting the rule set a Position is played
// under. It replaces any inheritance across variants: move generation,
// evaluation and search dispatch on this tag instead of on a type hierarchy.
type Variant uint8

// Constants for each supported variant.
const (
	Standard Variant = iota
	Giveaway
	Suicide
)

// IsValid checks if v is one of the known variants.
func (v Variant) IsValid() bool {
	return v <= Suicide
}

// ForcedCapture reports whether the variant requires a capture to be played
// whenever one is available (antichess and suicide share this rule).
func (v Variant) ForcedCapture() bool {
	return v == Giveaway || v == Suicide
}

// AllowsCastling reports whether castling moves may ever be generated.
func (v Variant) AllowsCastling() bool {
	return v == Standard
}

// AllowsKingPromotion reports whether a pawn may promote to a king, which
// antichess and suicide both permit since the king carries no special
// check/mate status in either variant.
func (v Variant) AllowsKingPromotion() bool {
	return v == Giveaway || v == Suicide
}

var variantToString = [3]string{"standard", "giveaway", "suicide"}

// String returns the UCI_Variant option spelling for v.
func (v Variant) String() string {
	if !v.IsValid() {
		return "standard"
	}
	return variantToString[v]
}

// VariantFromString parses the XBoard/UCI variant names into a Variant.
// "normal" and "standard" both map to Standard; "suicide" maps to Suicide;
// "giveaway" maps to Giveaway. Unknown names return Standard, ok=false.
func VariantFromString(s string) (Variant, bool) {
	switch s {
	case "standard", "normal":
		return Standard, true
	case "giveaway":
		return Giveaway, true
	case "suicide":
		return Suicide, true
	default:
		return Standard, false
	}
}
