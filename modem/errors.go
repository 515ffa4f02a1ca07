/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the error kinds raised before and during
  synchronization.

LICENSE
  Copyright (C) 2026 the steg project authors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the steg project authors.
*/

package modem

import "fmt"

// ConfigError is returned by Params.Validate when the configuration
// violates an invariant (spb < 40, REP even) and decoding/encoding cannot
// proceed.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "modem: config: " + e.Msg
}

// SyncNotFoundError is returned by CoarseSearch when no preamble candidate
// was found anywhere in the search window.
type SyncNotFoundError struct{}

func (e *SyncNotFoundError) Error() string {
	return "modem: preamble not found within search window"
}

// MagicNotFoundError is returned by Refine when no (delta, polarity)
// candidate within +/- one symbol of the coarse offset decodes to the
// magic token. It carries the coarse search's best score for diagnostics.
type MagicNotFoundError struct {
	BestScore int
	PreBits   int
}

func (e *MagicNotFoundError) Error() string {
	return fmt.Sprintf("modem: magic not found during refinement (best coarse score %d/%d)", e.BestScore, e.PreBits)
}
