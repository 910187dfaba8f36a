// Package grammar generates candidate expressions from a small arithmetic,
// comparison and bitwise grammar.
//
// Valid expressions are built as tagged shapes (Literal, Variable,
// BinaryOp, FunctionCall, Conditional) and rendered with fixed templates.
// Invalid expressions are drawn from shapes that stress error handling:
// noise, malformed literals, unbalanced brackets, sandbox escapes and calls
// to undefined functions.
package grammar
