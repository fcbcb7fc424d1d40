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

// Package egtb implements lookup into the 2-piece antichess endgame
// tablebase: a directory of precomputed perfect-play files, one per
// material configuration, indexed by a deterministic function of the
// board.
package egtb

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/frankkopp/variantchess/internal/logging"
	"github.com/frankkopp/variantchess/internal/position"
	. "github.com/frankkopp/variantchess/internal/types"
)

var log = myLogging.GetLog()
var out = message.NewPrinter(language.German)

// MaxPieces is the largest total piece count this tablebase covers.
const MaxPieces = 2

// entrySize is the on-disk size of one packed entry: moves_to_end (u16),
// best_move (u16), result (i8) plus one pad byte.
const entrySize = 6

// Result is the stored perfect-play outcome for the side to move.
type Result int8

// Constants for Result.
const (
	ResultLoss Result = -1
	ResultDraw Result = 0
	ResultWin  Result = 1
)

// Entry is one decoded tablebase record.
type Entry struct {
	MovesToEnd uint16
	BestMove   Move
	Result     Result
}

// pieceOrder lists the 12 piece/color combinations in the fixed iteration
// order the index formula uses: by signed piece value ascending, i.e.
// Black's pieces (negative) from pawn up to king, then White's pieces
// (positive) from king up to pawn.
var pieceOrder = [12]Piece{
	MakePiece(Black, Pawn), MakePiece(Black, Knight), MakePiece(Black, Bishop),
	MakePiece(Black, Rook), MakePiece(Black, Queen), MakePiece(Black, King),
	MakePiece(White, King), MakePiece(White, Queen), MakePiece(White, Rook),
	MakePiece(White, Bishop), MakePiece(White, Knight), MakePiece(White, Pawn),
}

// piecePrimes are the per-slot primes the board description id multiplies
// together, position-matched with pieceOrder.
var piecePrimes = [12]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

func pieceSlot(p Piece) int {
	for i, o := range pieceOrder {
		if o == p {
			return i
		}
	}
	return -1
}

// DescID computes the board-description id: the product, over every
// occupied square, of the prime assigned to the piece on that square.
func DescID(p *position.Position) uint64 {
	id := uint64(1)
	bb := p.OccupiedAll()
	for bb != 0 {
		sq := bb.Lsb()
		bb = bb.PopSquare(sq)
		slot := pieceSlot(p.GetPiece(sq))
		id *= piecePrimes[slot]
	}
	return id
}

// Index computes the egtb lookup index for p: the side to move selects
// a 64^numPieces-sized block, offset within the block by the occupied
// square of each piece in the fixed iteration order, each weighted by
// 64^k for its position in that order.
func Index(p *position.Position) uint64 {
	numPieces := p.OccupiedAll().PopCount()
	block := uint64(1)
	for i := 0; i < numPieces; i++ {
		block *= 64
	}
	index := uint64(p.NextPlayer()) * block

	weight := uint64(1)
	for _, piece := range pieceOrder {
		bb := p.PiecesBb(piece.ColorOf(), piece.TypeOf())
		if bb == 0 {
			continue
		}
		sq := bb.Lsb()
		index += uint64(sq) * weight
		weight *= 64
	}
	return index
}

// Table is a loaded-on-demand directory of tablebase files, one per
// board-description id, keyed by DescID.
type Table struct {
	mu      sync.RWMutex
	dir     string
	loaded  map[uint64][]Entry
	missing map[uint64]bool
}

// NewTable creates a Table rooted at dir. Files are read lazily, the
// first time a given board description id is looked up.
func NewTable(dir string) *Table {
	return &Table{
		dir:     dir,
		loaded:  make(map[uint64][]Entry),
		missing: make(map[uint64]bool),
	}
}

// Lookup returns the stored entry for p's exact position, if the
// tablebase for p's material configuration is present and p's index is
// within it. Positions with more than MaxPieces pieces always miss.
func (t *Table) Lookup(p *position.Position) (Entry, bool) {
	if p.OccupiedAll().PopCount() > MaxPieces {
		return Entry{}, false
	}
	descID := DescID(p)
	entries, ok := t.entriesFor(descID)
	if !ok {
		return Entry{}, false
	}
	idx := Index(p)
	if idx >= uint64(len(entries)) {
		return Entry{}, false
	}
	return entries[idx], true
}

func (t *Table) entriesFor(descID uint64) ([]Entry, bool) {
	t.mu.RLock()
	if entries, ok := t.loaded[descID]; ok {
		t.mu.RUnlock()
		return entries, true
	}
	if t.missing[descID] {
		t.mu.RUnlock()
		return nil, false
	}
	t.mu.RUnlock()

	entries, err := t.load(descID)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		log.Debugf(out.Sprintf("egtb: no table for desc id %d (%s)", descID, err))
		t.missing[descID] = true
		return nil, false
	}
	t.loaded[descID] = entries
	return entries, true
}

func (t *Table) load(descID uint64) ([]Entry, error) {
	path := filepath.Join(t.dir, fmt.Sprintf("%d.egtb", descID))
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw)%entrySize != 0 {
		return nil, fmt.Errorf("egtb: %s has size %d, not a multiple of %d", path, len(raw), entrySize)
	}
	entries := make([]Entry, len(raw)/entrySize)
	for i := range entries {
		rec := raw[i*entrySize : (i+1)*entrySize]
		entries[i] = Entry{
			MovesToEnd: binary.LittleEndian.Uint16(rec[0:2]),
			BestMove:   Move(binary.LittleEndian.Uint16(rec[2:4])),
			Result:     Result(int8(rec[4])),
		}
	}
	return entries, nil
}
