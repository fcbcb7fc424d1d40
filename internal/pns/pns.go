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

// Package pns implements proof-number search, used to resolve forced
// wins and losses in antichess/suicide positions that plain alpha-beta
// only sees very deep in the tree because every reply is forced.
package pns

import (
	"sync"

	"github.com/frankkopp/workerpool"

	myLogging "github.com/frankkopp/variantchess/internal/logging"
	"github.com/frankkopp/variantchess/internal/movegen"
	"github.com/frankkopp/variantchess/internal/position"
	. "github.com/frankkopp/variantchess/internal/types"
)

var log = myLogging.GetLog()

// infinity is the saturating proof/disproof number used for proven nodes.
const infinity = ^uint32(0)

// Result is the outcome a Solve() call proved for the side to move at
// the root, from that side's own perspective.
type Result int

// Constants for Result.
const (
	Unknown Result = iota
	Win
	Loss
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

type nodeKind uint8

const (
	orNode  nodeKind = iota // the side whose win we are trying to prove is on move
	andNode                 // the opponent is on move
)

// pnsNode is addressed by index into Solver.arena - never by pointer -
// so the arena can grow via append without invalidating references held
// across goroutines mid-expansion.
type pnsNode struct {
	parent   int32
	children []int32
	move     Move
	kind     nodeKind
	proof    uint32
	disproof uint32
	expanded bool
	terminal bool
}

// Solver runs proof-number search over a bounded arena of nodes.
// Create with NewSolver, release the worker pool with Close when done.
type Solver struct {
	arena []pnsNode
	mg    *movegen.Movegen
	pool  *workerpool.WorkerPool
}

// NewSolver creates a Solver whose node expansions fan out onto a worker
// pool sized to workers.
func NewSolver(workers int) *Solver {
	if workers < 1 {
		workers = 1
	}
	return &Solver{
		mg:   movegen.NewMoveGen(),
		pool: workerpool.New(workers),
	}
}

// Close releases the solver's worker pool.
func (s *Solver) Close() {
	s.pool.StopWait()
}

// Solve runs proof-number search from p's current position until the
// root is proved or nodeBudget node expansions have been spent, and
// reports the result from the perspective of p's side to move.
// p is mutated during the search but restored to its original state
// before Solve returns.
func (s *Solver) Solve(p *position.Position, nodeBudget uint64) Result {
	s.arena = s.arena[:0]

	root := s.newNode(-1, MoveNone, orNode)
	s.evaluateLeaf(root, p)

	var expansions uint64
	for s.arena[root].proof != 0 && s.arena[root].disproof != 0 && expansions < nodeBudget {
		depth := s.selectMPN(root, p)
		if depth < 0 {
			break
		}
		s.expand(depth, p)
		s.backPropagate(depth)
		// unwind back to root for the next selection pass
		for i := 0; i < s.pathLength(depth); i++ {
			p.UndoMove()
		}
		expansions++
	}

	log.Debugf("pns solve: %d expansions, proof=%d disproof=%d", expansions, s.arena[root].proof, s.arena[root].disproof)

	switch {
	case s.arena[root].proof == 0:
		return Win
	case s.arena[root].disproof == 0:
		return Loss
	default:
		return Unknown
	}
}

// MoveOutcome is the proved (or still-unproved) result of one root move,
// from the attacker's perspective.
type MoveOutcome struct {
	Move   Move
	Result Result
}

// RootOutcomes reports the result proved so far for each of the root's
// immediate children (one per root move). Call after Solve. A move whose
// subtree was never reached stays Unknown.
func (s *Solver) RootOutcomes() []MoveOutcome {
	if len(s.arena) == 0 {
		return nil
	}
	root := s.arena[0]
	outcomes := make([]MoveOutcome, 0, len(root.children))
	for _, c := range root.children {
		child := s.arena[c]
		r := Unknown
		switch {
		case child.proof == 0:
			r = Win
		case child.disproof == 0:
			r = Loss
		}
		outcomes = append(outcomes, MoveOutcome{Move: child.move, Result: r})
	}
	return outcomes
}

func (s *Solver) newNode(parent int32, move Move, kind nodeKind) int32 {
	s.arena = append(s.arena, pnsNode{parent: parent, move: move, kind: kind, proof: 1, disproof: 1})
	return int32(len(s.arena) - 1)
}

func (s *Solver) pathLength(idx int32) int {
	n := 0
	for idx >= 0 && s.arena[idx].parent >= 0 {
		n++
		idx = s.arena[idx].parent
	}
	return n
}

// selectMPN walks from root to the most-proving unexpanded node, applying
// each chosen move to p along the way so p matches the returned node's
// position. Returns -1 if root has no children to choose from.
func (s *Solver) selectMPN(root int32, p *position.Position) int32 {
	n := root
	for s.arena[n].expanded {
		children := s.arena[n].children
		if len(children) == 0 {
			return -1
		}
		best := children[0]
		for _, c := range children[1:] {
			if s.arena[n].kind == orNode {
				if s.arena[c].proof < s.arena[best].proof {
					best = c
				}
			} else {
				if s.arena[c].disproof < s.arena[best].disproof {
					best = c
				}
			}
		}
		p.DoMove(s.arena[best].move)
		n = best
	}
	return n
}

// expand generates every legal move from p (which must match node idx's
// position) and evaluates each resulting child position in parallel on
// the worker pool, each against its own cloned position.
func (s *Solver) expand(idx int32, p *position.Position) {
	node := &s.arena[idx]
	if node.terminal {
		return
	}
	node.expanded = true

	childKind := andNode
	if node.kind == andNode {
		childKind = orNode
	}

	moves := s.mg.GenerateLegalMovesVariant(p, movegen.GenAll)
	children := make([]int32, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		children[i] = s.newNode(idx, moves.At(i), childKind)
	}
	node.children = children

	var wg sync.WaitGroup
	for i := 0; i < moves.Len(); i++ {
		childIdx := children[i]
		move := moves.At(i)
		wg.Add(1)
		s.pool.Submit(func() {
			defer wg.Done()
			child := p.Clone()
			child.DoMove(move)
			s.evaluateLeaf(childIdx, child)
		})
	}
	wg.Wait()
}

// evaluateLeaf sets a freshly created node's proof/disproof numbers from
// the position it represents: terminal (no legal move, resolved per the
// variant's stuck-wins / suicide piece-count rule) nodes get saturated
// proof/disproof values (a draw is infinite in both); interior unexpanded
// nodes start at one for the side to move and at the side to move's number
// of legal moves for the other side (proof=1, disproof=moves at an orNode,
// the reverse at an andNode).
func (s *Solver) evaluateLeaf(idx int32, p *position.Position) {
	node := &s.arena[idx]

	// expand runs this on several workers at once and a Movegen is not
	// safe for concurrent use, so every call generates with its own
	moves := movegen.NewMoveGen().GenerateLegalMovesVariant(p, movegen.GenAll)
	if moves.Len() != 0 {
		n := uint32(moves.Len())
		if node.kind == orNode {
			node.proof, node.disproof = 1, n
		} else {
			node.proof, node.disproof = n, 1
		}
		return
	}

	node.terminal = true
	win, draw := stuckResult(p)

	// a win for the side to move here is a win for the attacker only when
	// the attacker is also the one on move (orNode); at an andNode the
	// opponent is on move, so the attacker's fortune is the opposite one.
	attackerWins := win
	if node.kind == andNode {
		attackerWins = !win
	}

	switch {
	case draw:
		node.proof, node.disproof = infinity, infinity
	case attackerWins:
		node.proof, node.disproof = 0, infinity
	default:
		node.proof, node.disproof = infinity, 0
	}
}

// stuckResult resolves the spec's terminal rule for a side to move with
// no legal moves: antichess ("giveaway") always wins; suicide draws on
// equal piece counts and loses when the side to move still has more
// pieces than the opponent.
func stuckResult(p *position.Position) (win bool, draw bool) {
	switch p.Variant() {
	case Giveaway:
		return true, false
	case Suicide:
		us := p.NextPlayer()
		ourCount := p.OccupiedBb(us).PopCount()
		theirCount := p.OccupiedBb(us.Flip()).PopCount()
		switch {
		case ourCount == theirCount:
			return false, true
		case ourCount > theirCount:
			return false, false
		default:
			return true, false
		}
	default:
		return false, false
	}
}

func (s *Solver) recompute(idx int32) {
	node := &s.arena[idx]
	if node.terminal || !node.expanded {
		return
	}
	if node.kind == orNode {
		proof := infinity
		var disproof uint32
		for _, c := range node.children {
			if s.arena[c].proof < proof {
				proof = s.arena[c].proof
			}
			disproof = addSat(disproof, s.arena[c].disproof)
		}
		node.proof, node.disproof = proof, disproof
	} else {
		disproof := infinity
		var proof uint32
		for _, c := range node.children {
			if s.arena[c].disproof < disproof {
				disproof = s.arena[c].disproof
			}
			proof = addSat(proof, s.arena[c].proof)
		}
		node.proof, node.disproof = proof, disproof
	}
}

// backPropagate recomputes proof/disproof numbers from the given node up
// to the root.
func (s *Solver) backPropagate(leaf int32) {
	n := leaf
	for n >= 0 {
		s.recompute(n)
		n = s.arena[n].parent
	}
}

func addSat(a, b uint32) uint32 {
	if a == infinity || b == infinity {
		return infinity
	}
	sum := uint64(a) + uint64(b)
	if sum >= uint64(infinity) {
		return infinity
	}
	return uint32(sum)
}
