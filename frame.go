// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

// Frame is a defunctionalized continuation frame internal to [Program]: the
// "what remains to be done once a value becomes available" half of a
// suspended computation. It is unrelated to the machine's K stack (see
// [KFrame]) — a Program's own frame chain is what [Program.ToSuspended]
// walks between yields, not the handler/dispatch stack the CESK rules
// operate over.
type Frame interface {
	frame() // unexported marker method
}

// ReturnFrame is the identity element of frame composition: "nothing more
// to do". [ChainFrames] treats it specially so chaining stays O(1).
type ReturnFrame struct{}

func (ReturnFrame) frame() {}

// BindFrame represents monadic bind: run F on the current value to obtain
// the next Program, then continue with Next.
type BindFrame struct {
	F    func(Value) Program
	Next Frame
}

func (*BindFrame) frame() {}

// MapFrame applies a pure transformation to the current value.
type MapFrame struct {
	F    func(Value) Value
	Next Frame
}

func (*MapFrame) frame() {}

// ThenFrame sequences Second after the current value, discarding it.
type ThenFrame struct {
	Second Program
	Next   Frame
}

func (*ThenFrame) frame() {}

// ChainFrames links two frame chains together, first then second. Either
// operand being ReturnFrame is elided so chaining stays O(1) and never
// grows the chain with no-op links.
func ChainFrames(first, second Frame) Frame {
	if _, ok := first.(ReturnFrame); ok {
		return second
	}
	if _, ok := second.(ReturnFrame); ok {
		return first
	}
	return &chainedFrame{first: first, rest: second}
}

// chainedFrame represents a frame followed by more frames, built without
// mutating either operand.
type chainedFrame struct {
	first Frame
	rest  Frame
}

func (*chainedFrame) frame() {}
