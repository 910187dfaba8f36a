// Package fuzztests houses Go fuzz harnesses for the pieces of exprfuzz
// that must survive arbitrary input: the evaluator behind the reference
// target and the mutation engine.
//
// Назначение: прогонять произвольные байты через вычислитель и мутатор и
// ловить паники, выход за алфавит и неограниченный рост.
//
// Не делает: запуск процессов, запись файлов, выполнение CLI.
//
// Зависимости: internal/evaluator, internal/mutate, internal/corpus.
package fuzztests
