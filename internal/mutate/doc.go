// Package mutate implements the textual mutation engine: character-level
// edits (delete, insert, flip), structural rewrites and operator
// substitution over an expression seed.
//
// The engine is purely textual. A mutation may return its input unchanged;
// callers compare the result with the seed before treating it as novel.
package mutate
