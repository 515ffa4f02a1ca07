/*
DESCRIPTION
  stegenc encodes a short message as an encrypted BFSK waveform, optionally
  superimposed on a cover recording, and writes it as a WAV file.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package stegenc is the command-line encoder: it frames, encrypts, and
// modulates a message into a WAV file suitable for playback over a
// telephone-quality audio link.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/covertaudio/steg/audio"
	"github.com/covertaudio/steg/modem"
	"github.com/covertaudio/steg/receiver"
)

const (
	logPath      = "stegenc.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
)

func main() {
	out := flag.String("out", "encoded_signal.wav", "output WAV path")
	rate := flag.Int("rate", 44100, "output sample rate, Hz")
	logLevel := flag.Int("logLevel", int(logging.Info), "log level (0=Debug .. 4=Fatal)")
	flag.Parse()

	log := newLogger(int8(*logLevel))

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: stegenc \"message\" [cover.wav]")
		os.Exit(1)
	}
	message := []byte(args[0])

	var cover []float32
	if len(args) > 1 {
		f, err := os.Open(args[1])
		if err != nil {
			log.Error("could not open cover file", "path", args[1], "error", err.Error())
			os.Exit(1)
		}
		var err2 error
		cover, _, err2 = audio.Read(f)
		f.Close()
		if err2 != nil {
			log.Error("could not decode cover file", "path", args[1], "error", err2.Error())
			os.Exit(1)
		}
	}

	p := modem.DefaultParams()
	p.SampleRate = *rate

	signal, err := receiver.Encode(message, cover, p)
	if err != nil {
		log.Error("encode failed", "error", err.Error())
		os.Exit(1)
	}

	w, err := os.Create(*out)
	if err != nil {
		log.Error("could not create output file", "path", *out, "error", err.Error())
		os.Exit(1)
	}
	defer w.Close()

	if err := audio.Write(w, signal, p.SampleRate); err != nil {
		log.Error("could not write WAV", "error", err.Error())
		os.Exit(1)
	}

	log.Info("encoded message", "bytes", len(message), "samples", len(signal), "out", *out)
}

func newLogger(level int8) logging.Logger {
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	return logging.New(level, io.MultiWriter(fileLog, os.Stderr), true)
}
