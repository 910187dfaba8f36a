// Package evaluator is a small sandboxed evaluator for Python-flavoured
// arithmetic, comparison, bitwise and boolean expressions.
//
// Назначение: вычислить одно выражение над фиксированным набором имён и
// функций и вернуть значение либо ошибку с закрытым видом (protocol.ErrorKind).
//
// Не делает: присваивания, атрибуты, индексацию, импорт, лямбды, коллекции.
//
// The evaluator never panics on user input: resource limits on powers,
// shifts, string repetition and integer printing keep it bounded, and any
// internal panic is reported as an unexpected error.
package evaluator
