// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/konpaku-ming/netsim/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the built-in demo design",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	runCmd.Flags().Uint64Var(&config.Cycles, "cycles", config.Cycles, "clock cycles to run")
	runCmd.Flags().StringVar(&config.VCD, "vcd", "", "write a VCD waveform to this file")
	runCmd.Flags().StringVar(&config.DB, "db", "", "record the trace in this SQLite database")
	rootCmd.AddCommand(runCmd)
}

func run() error {
	t, tab, err := buildTop()
	if err != nil {
		return err
	}
	m := t.m
	if err := m.Settle(); err != nil {
		return err
	}

	var recs []trace.Recorder
	if config.VCD != "" {
		f, err := os.Create(config.VCD)
		if err != nil {
			return errors.Wrap(err, "creating waveform file")
		}
		defer f.Close()
		recs = append(recs, trace.NewVCD(f))
	}
	var db *trace.SQLiteRecorder
	if config.DB != "" {
		if db, err = trace.NewSQLite(config.DB); err != nil {
			return err
		}
		recs = append(recs, db)
	}
	var probe *trace.Probe
	if len(recs) > 0 {
		if probe, err = trace.New(m, tab, config.Watch, recs...); err != nil {
			return err
		}
		defer probe.Close()
	}
	if db != nil {
		slog.Info("recording trace", "db", config.DB, "run", db.RunID())
	}

	// reset sequence: one half period high, one low
	m.Set(t.rst, 1)
	m.Set(t.rstn, 0)
	m.Tick()
	m.Set(t.rst, 0)
	m.Set(t.rstn, 1)
	m.Tock()

	start := time.Now()
	for i := uint64(0); i < config.Cycles; i++ {
		m.TickTock()
		if probe != nil {
			if err := probe.Sample(); err != nil {
				return err
			}
		}
		if m.Store().GetBool(t.executed) {
			slog.Info("cycle", "n", m.Get(t.cycles), "cnt", m.Get(t.cntRd))
		}
		if m.Finished() {
			slog.Info("finish raised", "cycle", m.Get(t.cycles))
			break
		}
	}
	elapsed := time.Since(start)

	slog.Info("done",
		"cycles", humanize.Comma(int64(m.Cycles())),
		"steps", humanize.Comma(int64(m.Steps())),
		"elapsed", elapsed,
		"rate", humanize.SI(float64(m.Cycles())/elapsed.Seconds(), "Hz"))
	return nil
}
