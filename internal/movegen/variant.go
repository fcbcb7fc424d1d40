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

package movegen

import (
	"github.com/frankkopp/variantchess/internal/moveslice"
	"github.com/frankkopp/variantchess/internal/position"
	. "github.com/frankkopp/variantchess/internal/types"
)

// GenerateLegalMovesVariant generates legal moves for the position's
// variant. Standard chess defers to GenerateLegalMoves (check/pin legality).
// Antichess and suicide share a forced-capture generator instead: if any
// capture is available to any own piece, only captures are legal; otherwise
// every pseudo-legal non-capture is legal, since neither variant has a
// concept of check or pins - every pseudo-legal move is a legal one.
func (mg *Movegen) GenerateLegalMovesVariant(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	if p.Variant() == Standard {
		return mg.GenerateLegalMoves(p, mode)
	}

	mg.legalMoves.Clear()

	mg.pseudoLegalMoves.Clear()
	mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
	mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
	mg.generateMoves(p, GenCap, mg.pseudoLegalMoves)
	mg.generateVariantKingPromotions(p, GenCap, mg.pseudoLegalMoves)

	if mg.pseudoLegalMoves.Len() > 0 {
		// a capture exists somewhere on the board: it must be played, so
		// nothing else is legal, even if the caller only asked for GenNonCap.
		if mode&GenCap == 0 {
			return mg.legalMoves
		}
		mg.orderVariantMoves(p, mg.pseudoLegalMoves, mg.legalMoves)
		return mg.legalMoves
	}

	if mode&GenNonCap == 0 {
		return mg.legalMoves
	}

	mg.pseudoLegalMoves.Clear()
	mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
	mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
	mg.generateMoves(p, GenNonCap, mg.pseudoLegalMoves)
	mg.generateVariantKingPromotions(p, GenNonCap, mg.pseudoLegalMoves)
	mg.orderVariantMoves(p, mg.pseudoLegalMoves, mg.legalMoves)
	return mg.legalMoves
}

// orderVariantMoves scores and sorts src, antichess/suicide's move-ordering
// rule: tt_move and the two killers rank above everything else, and every
// other move ranks by -count_of_opponent_replies_after_this_move - giving
// the opponent as few replies as possible ranks first. Neither variant has
// a concept of check or material safety, so the SEE/PST scoring the standard
// branch uses for the same purpose does not apply here. Scored moves are
// appended to dst in order, with the internal sort value stripped.
func (mg *Movegen) orderVariantMoves(p *position.Position, src *moveslice.MoveSlice, dst *moveslice.MoveSlice) {
	src.ForEach(func(i int) {
		m := src.At(i).MoveOf()
		switch {
		case m == mg.pvMove:
			src.Set(i, m.SetValue(ValueMax))
		case m == mg.killerMoves[0]:
			src.Set(i, m.SetValue(ValueMax-1))
		case m == mg.killerMoves[1]:
			src.Set(i, m.SetValue(ValueMax-2))
		default:
			p.DoMove(m)
			replies := mg.countLegalRepliesVariant(p)
			p.UndoMove()
			src.Set(i, m.SetValue(Value(-replies)))
		}
	})
	src.Sort()
	src.ForEach(func(i int) {
		dst.PushBack(src.At(i).MoveOf())
	})
}

// countLegalRepliesVariant counts the opponent's legal replies in p, for
// orderVariantMoves' ordering heuristic. Only the count is needed so this
// generates into a local scratch slice rather than mg.pseudoLegalMoves,
// which the caller may itself be iterating over.
func (mg *Movegen) countLegalRepliesVariant(p *position.Position) int {
	scratch := moveslice.NewMoveSlice(MaxMoves)
	mg.generatePawnMoves(p, GenCap, scratch)
	mg.generateKingMoves(p, GenCap, scratch)
	mg.generateMoves(p, GenCap, scratch)
	mg.generateVariantKingPromotions(p, GenCap, scratch)
	if scratch.Len() > 0 {
		return scratch.Len()
	}
	mg.generatePawnMoves(p, GenNonCap, scratch)
	mg.generateKingMoves(p, GenNonCap, scratch)
	mg.generateMoves(p, GenNonCap, scratch)
	mg.generateVariantKingPromotions(p, GenNonCap, scratch)
	return scratch.Len()
}

// HasAnyCaptureVariant reports whether the side to move has at least one
// capturing move available - the test that decides, for antichess and
// suicide, whether captures are forced this turn.
func (mg *Movegen) HasAnyCaptureVariant(p *position.Position) bool {
	mg.pseudoLegalMoves.Clear()
	mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
	mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
	mg.generateMoves(p, GenCap, mg.pseudoLegalMoves)
	return mg.pseudoLegalMoves.Len() > 0
}

// generateVariantKingPromotions appends pawn promotions to King, which
// antichess and suicide allow but standard chess does not. Mirrors the
// queen/knight/rook/bishop promotion generation in generatePawnMoves.
func (mg *Movegen) generateVariantKingPromotions(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	if !p.Variant().AllowsKingPromotion() {
		return
	}

	nextPlayer := p.NextPlayer()
	myPawns := p.PiecesBb(nextPlayer, Pawn)
	gamePhase := p.GamePhase()
	piece := MakePiece(nextPlayer, Pawn)

	if mode&GenCap != 0 {
		oppPieces := p.OccupiedBb(nextPlayer.Flip())
		for _, dir := range []Direction{West, East} {
			promCaptures := ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+dir) &
				oppPieces & nextPlayer.PromotionRankBb()
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				value := p.GetPiece(toSquare).ValueOf() - p.GetPiece(fromSquare).ValueOf() +
					PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, King, value+King.ValueOf()))
			}
		}
	}

	if mode&GenNonCap != 0 {
		promMoves := ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) &
			^p.OccupiedAll() & nextPlayer.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000) + King.ValueOf()
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, King, value))
		}
	}
}
