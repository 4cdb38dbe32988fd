// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/dblokhin/cuckatoo-solver/config"
	"github.com/dblokhin/cuckatoo-solver/consensus"
	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/dblokhin/cuckatoo-solver/solve"
	"github.com/dblokhin/cuckatoo-solver/trim"
	"github.com/dblokhin/cuckatoo-solver/tui"
)

func init() {
	logrus.SetOutput(os.Stdout)
}

func main() {
	cfg := config.Default()
	fs := pflag.NewFlagSet("cuckatoo-solver", pflag.ExitOnError)

	headerHex := cfg.BindFlags(fs)
	edgeBits := fs.Uint("edgebits", cfg.EdgeBits, "N, the puzzle size")
	proofSize := fs.Int("proofsize", cfg.ProofSize, "L, the target cycle length")
	cuckaroo := fs.Bool("cuckaroo", false, "use the Cuckaroo variant instead of Cuckatoo")
	useTUI := fs.Bool("tui", false, "render a live trim-progress view instead of log lines")
	logLevel := fs.String("log-level", "info", "logrus level: debug, info, warn, error")
	showStats := fs.BoolP("stats", "s", false, "print the resolved configuration and exit 0 without solving")

	if err := fs.Parse(os.Args[1:]); err != nil {
		logrus.WithError(err).Fatal("failed to parse flags")
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("invalid --log-level")
	}
	logrus.SetLevel(level)

	cfg.EdgeBits = *edgeBits
	cfg.ProofSize = *proofSize
	if *cuckaroo {
		cfg.Variant = cuckoo.Cuckaroo
	}

	if err := cfg.ApplyHex(*headerHex); err != nil {
		logrus.WithError(err).Fatal("invalid header")
	}
	if len(cfg.Header) == 0 {
		cfg.Header = make([]byte, 80)
	}

	if *showStats {
		fmt.Printf("%+v\n", cfg)
		os.Exit(0)
	}

	run(cfg, *useTUI)
}

func run(cfg config.Params, useTUI bool) {
	params := cfg.TrimParams()
	ctx := solve.NewContext(params, cfg.Variant, cfg.MaxSols)
	defer ctx.Close()

	var obs trim.Observer
	var program *tea.Program
	var updates chan tui.PassUpdate

	if useTUI {
		updates = make(chan tui.PassUpdate, 64)
		obs = tui.Observer(updates)
		program = tea.NewProgram(tui.NewModel(updates))
		go func() {
			if _, err := program.Run(); err != nil {
				logrus.WithError(err).Error("tui exited with error")
			}
		}()
	} else {
		obs = func(pass int, kind string, survivors int) {
			logrus.WithFields(logrus.Fields{
				"pass":      pass,
				"kind":      kind,
				"survivors": survivors,
			}).Debug("trim progress")
		}
	}

	found := 0
	var samples []consensus.Sample
	for n := cfg.Nonce; n < cfg.Nonce+cfg.Range; n++ {
		header := append([]byte(nil), cfg.Header...)
		if cfg.MutateNonce {
			cuckoo.MutateHeader(header, uint32(n))
		}

		result, err := ctx.Solve(context.Background(), header, obs)
		if err != nil {
			logrus.WithError(err).WithField("nonce", n).Warn("solve attempt did not complete")
			continue
		}

		for _, nonces := range result.Proofs {
			proof := consensus.NewProof(nonces)
			difficulty := proof.ToDifficulty()
			fmt.Printf("nonce=%d proof=%v cyclehash=%x difficulty=%d\n", n, proof.Nonces, proof.Hash(), difficulty.IntoNum())
			samples = append(samples, consensus.Sample{Timestamp: time.Now(), Difficulty: difficulty})
			found++
		}
	}

	if updates != nil {
		close(updates)
	}
	if program != nil {
		program.Wait()
	}

	if len(samples) > 0 {
		// NextDifficulty wants samples ordered latest-to-oldest; samples
		// was appended oldest-first as nonces were tried in order.
		latestFirst := make([]consensus.Sample, len(samples))
		for i, s := range samples {
			latestFirst[len(samples)-1-i] = s
		}

		next := consensus.NextDifficulty(latestFirst)
		fmt.Printf("next difficulty (retarget over %d sample(s)): %d\n", len(samples), next.IntoNum())
	}

	if found == 0 {
		os.Exit(1)
	}
}
