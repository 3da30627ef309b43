// Package analyzer classifies raw printer protocol frames for
// diagnostics and keeps rolling traffic statistics.
//
// Classification is purely informational: it never influences command
// sequencing, and Classify is a total function over arbitrary byte
// slices. The statistics aggregator keeps only rolling counters, never
// per-packet history, so its memory use is bounded regardless of
// traffic volume.
package analyzer
