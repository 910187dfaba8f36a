// Package campaign drives a fuzz campaign: it runs a fixed number of
// trials, feeds interesting candidates back into the corpus queue and
// tallies outcomes.
//
// Назначение: связать селектор стратегий, оракул и очередь корпуса в один
// цикл испытаний и вернуть сводку.
//
// Не делает: загрузку корпуса с диска, печать сводки, разбор конфигурации.
//
// Selection is serial. Only target execution runs on the worker pool, so
// the selector's random source is never shared between goroutines.
package campaign
