// Package templating substitutes named {{name}} placeholders in a template
// string with bound values. A bound value is either literal text or another
// Template, so resolution can descend through a graph of templates that
// share each other by pointer: mutating an inner Template is visible the
// next time any outer Template resolves.
//
// A Template resolves bindings in insertion order and, under the default
// FirstOccurrence policy, replaces only the first occurrence of each marker.
// Markers without a binding are left verbatim. Re-entering a Template that
// is already being resolved fails with a CycleError instead of recursing
// forever.
//
// Templates and Bindings do no internal locking. Callers sharing a graph
// between goroutines must serialize mutation and resolution themselves.
package templating
