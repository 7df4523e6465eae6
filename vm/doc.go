/*
Package vm implements the core of Froth, a small concatenative,
stack-based language.

The package owns the tokenizer, the operand stack, the byte-addressable
linear memory, the variable map, the word table, the evaluator, the
flow-capture control constructs (if, macro, jump, reljump), and the
error/catch subsystem. It does not own a GUI, a network transport, or
an event loop: those are host concerns layered on top through a
pluggable word table (WithWordTable), an output sink
(flushio.WriteFlusher, via WithOutput), and repeated calls to Tick.

A VM is built with New, fed source with WithSource or WithSourceReader,
and driven one line at a time with Tick, or to completion with
RunUntilEnd.
*/
package vm
