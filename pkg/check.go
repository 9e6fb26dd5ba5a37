package lfscheck

import "fmt"

// Outcome classifies a change check.
type Outcome int

const (
	// OutcomeUnchanged means the digest matches the stored one; the
	// image does not need to be regenerated.
	OutcomeUnchanged Outcome = iota
	// OutcomeFirstRun means no usable prior state existed; the digest
	// was persisted as the new baseline.
	OutcomeFirstRun
	// OutcomeChanged means the digest differs from the stored one;
	// the stored state was overwritten with the new digest.
	OutcomeChanged
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeFirstRun:
		return "first-run"
	case OutcomeChanged:
		return "changed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// StateWriteError reports that the new digest could not be persisted.
// The check itself completed; callers distinguish this from other
// failures because "content changed but the new baseline was not
// saved" needs its own exit status.
type StateWriteError struct {
	Err error
}

func (e *StateWriteError) Error() string {
	return fmt.Sprintf("failed to persist digest: %v", e.Err)
}

func (e *StateWriteError) Unwrap() error { return e.Err }

// CheckResult carries the digests involved in a check.
type CheckResult struct {
	Outcome  Outcome
	Digest   string // Digest of the tree as it is now
	Previous string // Stored digest, empty on first run
}

// Checker ties the fingerprinter and the state store together.
type Checker struct {
	fingerprinter *Fingerprinter
	store         *StateStore
}

// NewChecker builds a checker from configuration: read buffer size
// and ignore patterns come from cfg, which may be a default-only
// Config. The ignore pattern file is compiled eagerly so a bad
// pattern fails here rather than mid-walk.
func NewChecker(cfg *Config) (*Checker, error) {
	var ignore *IgnoreManager
	if patternPath := cfg.GetIgnoreConfig().Patterns; patternPath != "" {
		ignore = NewIgnoreManager(patternPath)
		if err := ignore.Load(); err != nil {
			return nil, err
		}
	}

	return &Checker{
		fingerprinter: NewFingerprinter(cfg.GetFingerprintConfig().Buffer, ignore),
		store:         NewStateStore(),
	}, nil
}

// Check fingerprints root and compares the digest against the state
// at statePath. On a first run or a change the new digest is saved
// before returning; a failed save returns the partially filled result
// together with a *StateWriteError. A missing root returns a
// *NotFoundError and touches no state.
func (c *Checker) Check(root, statePath string) (*CheckResult, error) {
	digest, err := c.fingerprinter.ComputeDigest(root)
	if err != nil {
		return nil, err
	}
	result := &CheckResult{Digest: digest}

	previous, ok := c.store.Load(statePath)
	if !ok {
		result.Outcome = OutcomeFirstRun
		if err := c.store.Save(statePath, digest); err != nil {
			return result, &StateWriteError{Err: err}
		}
		return result, nil
	}

	result.Previous = previous
	if digest == previous {
		result.Outcome = OutcomeUnchanged
		return result, nil
	}

	result.Outcome = OutcomeChanged
	if err := c.store.Save(statePath, digest); err != nil {
		return result, &StateWriteError{Err: err}
	}
	return result, nil
}
