/*
DESCRIPTION
  stegdec recovers an encrypted message from a captured WAV waveform:
  signal conditioning, preamble/magic synchronization, frame decode,
  integrity check, and decryption.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

// Package stegdec is the command-line decoder: it reads a WAV file,
// conditions the waveform, synchronizes, decodes the frame, and prints the
// recovered plaintext.
package main

import (
	"errors"
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
	logPath      = "stegdec.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
)

func main() {
	logLevel := flag.Int("logLevel", int(logging.Info), "log level (0=Debug .. 4=Fatal)")
	flag.Parse()

	log := newLogger(int8(*logLevel))

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: stegdec encoded.wav")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		log.Error("could not open input file", "path", args[0], "error", err.Error())
		os.Exit(1)
	}
	samples, sampleRate, err := audio.Read(f)
	f.Close()
	if err != nil {
		log.Error("could not decode WAV", "path", args[0], "error", err.Error())
		os.Exit(1)
	}

	p := modem.DefaultParams()
	p.SampleRate = sampleRate

	plain, diag, err := receiver.Decode(samples, p)
	reportDiagnostics(log, diag)
	if err != nil {
		log.Error("decode failed", "error", err.Error())
		reportFailureKind(log, err)
		os.Exit(1)
	}

	fmt.Println(string(plain))
}

func reportDiagnostics(log logging.Logger, diag receiver.Diagnostics) {
	log.Debug("coarse sync", "offset", diag.Coarse.Offset, "invert", diag.Coarse.Invert,
		"score", diag.Coarse.Score, "preBits", diag.Coarse.PreBits)
	if diag.HasRefined {
		log.Debug("refined sync", "position", diag.Refined.Position, "invert", diag.Refined.Invert)
	}
	if diag.WireCRC != 0 || diag.ComputedCRC != 0 {
		log.Debug("crc", "wire", diag.WireCRC, "computed", diag.ComputedCRC)
	}
}

func reportFailureKind(log logging.Logger, err error) {
	var magicErr *modem.MagicNotFoundError
	var badLen *receiver.BadLenError
	var crcErr *receiver.CrcMismatchError
	switch {
	case errors.As(err, &magicErr):
		log.Error("magic not found during refinement", "bestScore", magicErr.BestScore, "preBits", magicErr.PreBits)
	case errors.As(err, &badLen):
		log.Error("bad frame length", "len", badLen.Len, "max", badLen.Max)
	case errors.As(err, &crcErr):
		log.Error("crc mismatch", "wire", crcErr.Want, "computed", crcErr.Got)
	}
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
