// Package cpu implements the processor and assembler for the Blue computer.
//
// The Blue computer is a 16-bit accumulator machine with 4096 words of
// memory. Each instruction word carries a 4-bit opcode and a 12-bit
// address field, and every instruction cycle is driven by an 8-tick clock.
// The processor alternates between a fetch phase, where the instruction is
// latched from memory, and an execute phase, where memory operands are
// read or written. Processor registers are the program counter (PC),
// accumulator (A), ALU latch (Z), switch register (SR), memory address and
// buffer registers (MAR, MBR), instruction register (IR), the I/O device
// selector, data-in and data-out registers (DSL, DIL, DOL), and flags.
//
// The assembler provides a small assembly language for the Blue instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
