// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

// programKind tags which of Program's three shapes a given value holds,
// mirroring [ControlKind] but at the level of an individual suspended
// computation rather than the whole machine state.
type programKind uint8

const (
	progKindValue programKind = iota
	progKindError
	progKindYield
)

// Program is a defunctionalized, CPS-style computation: a chain of
// [Frame]s built by [ProgReturn], [ProgBind], [ProgMap], [ProgThen],
// [ProgError], and [ProgYield]. [Program.ToSuspended] walks the chain
// iteratively (no Go call-stack growth) to produce the "suspended
// computation" contract §6 requires: start/send/throw/close.
//
// Program is immutable; every constructor returns a new value sharing
// structure with its argument, the same way [Env] extension does.
type Program struct {
	kind  programKind
	val   Value
	err   error
	frame Frame
}

// ProgReturn builds a Program that completes immediately with v.
func ProgReturn(v Value) Program {
	return Program{kind: progKindValue, val: v, frame: ReturnFrame{}}
}

// ProgError builds a Program that fails immediately with err.
func ProgError(err error) Program {
	return Program{kind: progKindError, err: err, frame: ReturnFrame{}}
}

// ProgYield builds a Program that immediately suspends, surfacing y as
// an [CtrlEffectYield] for Level 2 to classify. [Perform] is the usual
// entry point for this constructor; [ProgYield] is exported so control
// primitives and the driver package can construct yields directly.
func ProgYield(y Value) Program {
	return Program{kind: progKindYield, val: y, frame: ReturnFrame{}}
}

// ProgBind sequences p, then passes its result to f to obtain the
// Program that continues. If f's result itself yields, the resumption
// value flows back into f's Program, not into p.
func ProgBind(p Program, f func(Value) Program) Program {
	p.frame = ChainFrames(p.frame, &BindFrame{F: f, Next: ReturnFrame{}})
	return p
}

// ProgMap applies a pure transformation to p's eventual result.
func ProgMap(p Program, f func(Value) Value) Program {
	p.frame = ChainFrames(p.frame, &MapFrame{F: f, Next: ReturnFrame{}})
	return p
}

// ProgThen runs p, discards its result, then runs second.
func ProgThen(p Program, second Program) Program {
	p.frame = ChainFrames(p.frame, &ThenFrame{Second: second, Next: ReturnFrame{}})
	return p
}

// SuspendKind tags which of the three outcomes a suspended-computation
// operation (Start/Send/Throw) produced.
type SuspendKind uint8

const (
	// SuspendYield means the computation produced a value pending
	// classification by Level 2 (an effect, a nested program, or a
	// control-primitive marker).
	SuspendYield SuspendKind = iota
	// SuspendReturn means the computation completed normally.
	SuspendReturn
	// SuspendError means the computation raised an error.
	SuspendError
)

// SuspendOutcome is the result of Start/Send/Throw on a
// [SuspendedComputation]: exactly one of Yield, ReturnValue, or Err is
// meaningful, selected by Kind.
type SuspendOutcome struct {
	Kind        SuspendKind
	Yield       Value
	ReturnValue Value
	Err         error
}

// SuspendedComputation is the opaque "generator" contract §6 describes:
// a paused computation that can be advanced by sending it a value,
// throwing an error into it, or asked to finalize. [Program.ToSuspended]
// is the only constructor the core uses.
type SuspendedComputation interface {
	Start() SuspendOutcome
	Send(v Value) SuspendOutcome
	Throw(err error) SuspendOutcome
	Close()
}

// ToSuspended builds the suspended-computation view of p. p itself is
// never mutated; the returned value carries its own cursor into the
// frame chain.
func (p Program) ToSuspended() SuspendedComputation {
	return &progComputation{prog: p}
}

type progComputation struct {
	prog    Program
	pending Frame
	started bool
}

func (c *progComputation) Start() SuspendOutcome {
	c.started = true
	out, rest := evalProgram(c.prog.kind, c.prog.val, c.prog.err, c.prog.frame)
	c.pending = rest
	return out
}

func (c *progComputation) Send(v Value) SuspendOutcome {
	out, rest := evalProgram(progKindValue, v, nil, c.pending)
	c.pending = rest
	return out
}

func (c *progComputation) Throw(err error) SuspendOutcome {
	out, rest := evalProgram(progKindError, nil, err, c.pending)
	c.pending = rest
	return out
}

// Close is a no-op: Program computations hold no native resources (no
// goroutines, no file descriptors) to release. It exists so callers that
// treat every [SuspendedComputation] uniformly — in particular the
// implicit-abandonment path of Level 2 — never need to special-case this
// implementation.
func (c *progComputation) Close() {}

// isTerminalFrame reports whether frame represents "nothing left to do".
func isTerminalFrame(frame Frame) bool {
	if frame == nil {
		return true
	}
	_, ok := frame.(ReturnFrame)
	return ok
}

// popFrame extracts the next real frame to process from frame, flattening
// nested chainedFrame links on the way. It returns [ReturnFrame]{} as the
// real frame when frame is already terminal.
func popFrame(frame Frame) (real Frame, rest Frame) {
	for {
		if isTerminalFrame(frame) {
			return ReturnFrame{}, ReturnFrame{}
		}
		cf, ok := frame.(*chainedFrame)
		if !ok {
			return frame, ReturnFrame{}
		}
		if nested, ok := cf.first.(*chainedFrame); ok {
			frame = &chainedFrame{first: nested.first, rest: ChainFrames(nested.rest, cf.rest)}
			continue
		}
		return cf.first, cf.rest
	}
}

// evalProgram iteratively drives a Program's frame chain from an initial
// (kind, val, err) tuple until it reaches a terminal value, an error, or a
// yield. It never recurses, so chain length is bounded only by memory.
func evalProgram(kind programKind, val Value, err error, frame Frame) (SuspendOutcome, Frame) {
	for {
		switch kind {
		case progKindError:
			return SuspendOutcome{Kind: SuspendError, Err: err}, ReturnFrame{}
		case progKindYield:
			return SuspendOutcome{Kind: SuspendYield, Yield: val}, frame
		case progKindValue:
			if isTerminalFrame(frame) {
				return SuspendOutcome{Kind: SuspendReturn, ReturnValue: val}, ReturnFrame{}
			}
			real, rest := popFrame(frame)
			switch f := real.(type) {
			case ReturnFrame:
				frame = rest
			case *BindFrame:
				next := f.F(val)
				kind, val, err = next.kind, next.val, next.err
				frame = ChainFrames(ChainFrames(next.frame, f.Next), rest)
			case *MapFrame:
				val = f.F(val)
				frame = ChainFrames(f.Next, rest)
			case *ThenFrame:
				next := f.Second
				kind, val, err = next.kind, next.val, next.err
				frame = ChainFrames(ChainFrames(next.frame, f.Next), rest)
			default:
				panic("kont: unknown program frame in chain")
			}
		}
	}
}
