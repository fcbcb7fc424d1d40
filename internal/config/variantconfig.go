/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

// variantConfiguration is a data structure to hold the configuration for
// the rule variant played and the peripheral search helpers specific to it.
type variantConfiguration struct {
	// Variant selects the rule set: "standard", "giveaway" or "suicide".
	Variant string

	// Proof-number search - used to resolve wins/losses in antichess and
	// suicide positions that are forced but deep for alpha-beta to see.
	UsePNS          bool
	PnsTimeFraction float64
	PnsNodeBudget   uint64

	// Endgame tablebase lookup
	UseEgtb bool
	EgtbPath string
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Variant.Variant = "standard"

	Settings.Variant.UsePNS = true
	Settings.Variant.PnsTimeFraction = 0.25
	Settings.Variant.PnsNodeBudget = 2_000_000

	Settings.Variant.UseEgtb = false
	Settings.Variant.EgtbPath = "./assets/egtb"
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupVariant() {

}
