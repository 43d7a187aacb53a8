// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

//go:build invariants || race

package invariants

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = true
