// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package invariants reports whether the expensive structural self checks
// of the weight-balanced tree are compiled in.
//
// Build or test with -tags invariants (or -race) to enable them. When
// enabled, every mutating tree operation walks the whole tree afterwards
// and panics on the first violated invariant.
package invariants
