/*
DESCRIPTION
  stegplot renders the coarse-search score profile of a captured WAV file
  as a PNG, for diagnosing failed or marginal synchronization.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package stegplot is a diagnostic companion to stegdec: it sweeps the
// coarse-search offsets a decode pass would try and plots the resulting
// preamble match score, so a marginal or failed lock can be inspected
// visually instead of purely from log output.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/covertaudio/steg/audio"
	"github.com/covertaudio/steg/modem"
)

func main() {
	out := flag.String("out", "sync_profile.png", "output PNG path")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: stegplot captured.wav")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "stegplot:", err)
		os.Exit(1)
	}
	samples, sampleRate, err := audio.Read(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "stegplot:", err)
		os.Exit(1)
	}

	p := modem.DefaultParams()
	p.SampleRate = sampleRate
	conditioned := modem.FrontEnd(samples, p)

	pts, err := scoreProfile(conditioned, p)
	if err != nil {
		fmt.Fprintln(os.Stderr, "stegplot:", err)
		os.Exit(1)
	}

	if err := render(pts, *out); err != nil {
		fmt.Fprintln(os.Stderr, "stegplot:", err)
		os.Exit(1)
	}
}

// scoreProfile recomputes the best-of-both-polarities preamble match score
// at every offset CoarseSearch would visit, without its early-stop
// shortcut, so the full profile is visible even when a lock is found
// quickly.
func scoreProfile(samples []float32, p modem.Params) (plotter.XYs, error) {
	spb := p.SamplesPerBit()
	preBits := p.PreambleBits()
	n := len(samples)

	searchMax := int(math.Round(p.SearchSeconds * float64(p.SampleRate)))
	if searchMax > n {
		searchMax = n
	}
	step := spb / p.CoarseStepFrac
	if step < 1 {
		step = 1
	}

	var pts plotter.XYs
	for off := 0; off+preBits*spb <= n && off < searchMax; off += step {
		best := 0
		for _, invert := range [2]bool{false, true} {
			score := 0
			for b := 0; b < preBits; b++ {
				expected := b % 2
				got := modem.DetectSymbol(samples, off+b*spb, p)
				if invert {
					got ^= 1
				}
				if got == expected {
					score++
				}
			}
			if score > best {
				best = score
			}
		}
		pts = append(pts, plotter.XY{X: float64(off) / float64(p.SampleRate), Y: float64(best) / float64(preBits)})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("stegplot: capture too short to search (%d samples)", n)
	}
	return pts, nil
}

func render(pts plotter.XYs, path string) error {
	pl := plot.New()
	pl.Title.Text = "coarse preamble match score"
	pl.X.Label.Text = "offset (s)"
	pl.Y.Label.Text = "score / PreambleBits()"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("stegplot: build line: %w", err)
	}
	pl.Add(line)
	pl.Add(plotter.NewGrid())

	return pl.Save(8*vg.Inch, 4*vg.Inch, path)
}
