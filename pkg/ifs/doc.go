// Package ifs implements the chaos-game engine for iterated function systems.
//
// # Overview
//
// An iterated function system (IFS) is a finite set of weighted affine maps.
// Repeatedly applying a randomly chosen map to a running point makes the
// orbit settle onto the system's attractor, a self-similar set such as the
// Sierpinski triangle or the Barnsley fern. This package provides:
//
//   - [Affine]: a single weighted 2D affine map with a hue tag
//   - [System]: a validated, immutable collection of maps with a
//     precomputed cumulative-weight table for weighted selection
//   - [Generate]: the chaos game itself, producing hue-tagged [Point]s
//   - [Catalog]: the compiled-in set of named systems
//   - [State]: the presentation layer's current selection and point count
//
// # Generating points
//
//	sys, _ := ifs.Default().Lookup("fern")
//	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
//	points := ifs.Generate(sys, 50000, rng)
//
// Every call is an independent run: the orbit starts at the origin, the first
// [BurnIn] iterations are discarded, and exactly n points are emitted. The
// random source is injected, so a seeded source reproduces the output
// exactly.
//
// # Interactive use
//
// A [State] holds what the user picked. Presentation code mutates it from
// input events and calls [State.Regenerate] once per frame:
//
//	st, err := ifs.NewState(ifs.Default(), ifs.WithSelection("dragon"))
//	if err != nil {
//	    return err
//	}
//	if err := st.SetCount(20000); err != nil {
//	    return err
//	}
//	points := st.Regenerate()
package ifs
