// Package coverage implements greedy maximum-coverage selection.
//
// Select repeatedly takes the molecule adding the most not-yet-covered
// categories, breaking ties by the lowest library index, until the target
// count is reached or nothing new can be covered. It is single-threaded and
// deterministic: the same entries and target always give the same
// Selection. It never imports pipeline, writers or cli; keep it domain-only.
package coverage
