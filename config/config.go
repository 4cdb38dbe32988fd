// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package config holds the solver's tunable parameters and binds them to
// command-line flags, mirroring fill_default_params and the CLI surface of
// §6.
package config

import (
	"encoding/hex"
	"errors"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/dblokhin/cuckatoo-solver/trim"
	"github.com/spf13/pflag"
)

// Params is the recognized configuration surface of §6's
// fill_default_params, ported field-for-field. Fields named after a GPU
// launch shape (*Blocks, *TPB) are kept as tuning-only knobs that this
// port folds into trim.Params.Workers rather than literal kernel launch
// dimensions — a CPU scheduler has nothing to launch a block onto.
type Params struct {
	// Device is the accelerator index. This port has no device
	// enumeration of its own; it is kept so a caller's existing tooling
	// (dashboards, per-GPU log tags) keeps working unmodified.
	Device int

	// EdgeBits is N, the puzzle size.
	EdgeBits uint

	// ProofSize is L, the target cycle length.
	ProofSize int

	// Variant selects Cuckatoo or Cuckaroo.
	Variant cuckoo.Variant

	// Header is the 80-byte (or hex-decoded) header to solve against.
	Header []byte

	// Nonce is the first nonce of the enumerated range (§6's `nonce`).
	Nonce uint64

	// Range is how many consecutive nonces to try (§6's `range`); each
	// one gets a fresh MutateHeader + Solve.
	Range uint64

	// NTrims is the configured number of leaf-pruning rounds, of the same
	// parity as ProofSize/2 per §6. Neither TrimParams nor
	// solve.Context reads it: a Solve always runs solve's fixed
	// defaultTrimRounds rounds.
	NTrims int

	// SeedBlocks/RecoverBlocks/RecoverTPB are launch-shape tuning knobs
	// (§6's genablocks/recoverblocks/recovertpb family, collapsed to
	// three). A positive SeedBlocks becomes trim.Params.Workers, which
	// solve.Context also passes to solve.Recover; RecoverBlocks and
	// RecoverTPB are not read anywhere.
	SeedBlocks    int
	RecoverBlocks int
	RecoverTPB    int

	// CPULoad mirrors §6's cpuload: if true, worker goroutines are not
	// expected to block on I/O between passes (kept as a hint for
	// schedulers/metrics; this port's goroutines never block regardless).
	CPULoad bool

	// MutateNonce mirrors §6: if true, the header's last 4 bytes are
	// overwritten with the nonce (little-endian) before each attempt.
	MutateNonce bool

	// MaxSols caps how many candidate cycles FindCycles records per
	// attempt (§4.7's MAXSOLS).
	MaxSols int
}

// Default returns the typical production configuration (§6): Cuckatoo,
// N=29, L=42, a single trim attempt at nonce 0 over the whole range.
func Default() Params {
	return Params{
		Device:        0,
		EdgeBits:      29,
		ProofSize:     42,
		Variant:       cuckoo.Cuckatoo,
		Nonce:         0,
		Range:         1,
		NTrims:        8,
		SeedBlocks:    0,
		RecoverBlocks: 0,
		RecoverTPB:    0,
		CPULoad:       true,
		MutateNonce:   true,
		MaxSols:       8,
	}
}

// BindFlags registers the literal CLI flags of §6
// (-d -h -m -n -r -U -Z -z -c) onto fs, defaulting from p. Call Parse on
// fs, then ApplyHex to decode the header flag.
func (p *Params) BindFlags(fs *pflag.FlagSet) *string {
	fs.IntVarP(&p.Device, "device", "d", p.Device, "accelerator index (kept for compatibility; unused on this CPU port)")
	headerHex := fs.StringP("header", "h", "", "hex-encoded header bytes")
	fs.IntVarP(&p.NTrims, "ntrims", "m", p.NTrims, "number of leaf-pruning trim rounds (recorded only; the solver runs a fixed round count)")
	fs.Uint64VarP(&p.Nonce, "nonce", "n", p.Nonce, "first nonce of the enumerated range")
	fs.Uint64VarP(&p.Range, "range", "r", p.Range, "number of consecutive nonces to try")
	fs.IntVarP(&p.SeedBlocks, "seedblocks", "U", p.SeedBlocks, "seed pass launch-shape tuning (maps to worker count)")
	fs.IntVarP(&p.RecoverBlocks, "recoverblocks", "Z", p.RecoverBlocks, "nonce recovery launch-shape tuning (kept for compatibility; unused on this CPU port)")
	fs.IntVarP(&p.RecoverTPB, "recovertpb", "z", p.RecoverTPB, "nonce recovery threads-per-block tuning (kept for compatibility; unused on this CPU port)")
	fs.BoolVarP(&p.CPULoad, "cpuload", "c", p.CPULoad, "host-thread spin hint (kept for compatibility; unused on this CPU port)")

	return headerHex
}

// ApplyHex decodes a hex header flag value (as returned by BindFlags) into
// p.Header. An empty string leaves p.Header untouched.
func (p *Params) ApplyHex(headerHex string) error {
	if headerHex == "" {
		return nil
	}

	decoded, err := hex.DecodeString(headerHex)
	if err != nil {
		return errors.New("config: invalid hex header: " + err.Error())
	}

	p.Header = decoded
	return nil
}

// TrimParams builds the trim.Params this configuration implies.
func (p Params) TrimParams() trim.Params {
	tp := trim.DefaultParams(p.EdgeBits, p.ProofSize, p.Variant)
	if p.SeedBlocks > 0 {
		tp.Workers = p.SeedBlocks
	}
	return tp
}
