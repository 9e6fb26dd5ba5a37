// Package lfscheck decides whether a littlefs filesystem image needs
// to be regenerated by fingerprinting the staging directory and
// comparing the digest against the one persisted from the previous
// build.
//
// # Core API
//
// Fingerprint a directory:
//
//	digest, err := lfscheck.ComputeDigest("/path/to/littlefs")
//
// Full change check against a state file:
//
//	cfg, _ := lfscheck.LoadConfig("")
//	checker, _ := lfscheck.NewChecker(cfg)
//	result, err := checker.Check("/path/to/littlefs", "/path/to/state.json")
//	if result.Outcome != lfscheck.OutcomeUnchanged {
//		// rebuild the image
//	}
//
// The digest byte stream is fixed: MD5 over each file's
// slash-separated relative path followed by its content, files of a
// directory in lexicographic order before its subdirectories, also in
// lexicographic order. Changing the stream would invalidate every
// previously persisted digest, so it is not configurable.
//
// # Configuration
//
// Behaviour that does not affect the digest (read buffer size,
// verbosity, ignore patterns) can be set through an optional INI
// config file, see LoadConfig.
package lfscheck
