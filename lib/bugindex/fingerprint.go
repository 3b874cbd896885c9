// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/graveyard/lib/codec"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

// Fingerprint is a BLAKE3 digest of a dataset's deterministic CBOR
// encoding.
type Fingerprint [32]byte

// fingerprintDomainKey separates dataset fingerprints from any other
// BLAKE3 use of the same bytes. ASCII, zero-padded to 32 bytes.
var fingerprintDomainKey = [32]byte{
	'g', 'r', 'a', 'v', 'e', 'y', 'a', 'r', 'd', '.', 'd', 'a', 't', 'a', 's', 'e',
	't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func computeFingerprint(bugs []bug.Bug) (Fingerprint, error) {
	encoded, err := codec.Marshal(bugs)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding dataset for fingerprint: %w", err)
	}
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("bugindex: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint, nil
}

// String returns the full hex encoding.
func (fingerprint Fingerprint) String() string {
	return hex.EncodeToString(fingerprint[:])
}

// Short returns the first 12 hex characters, for headers and logs.
func (fingerprint Fingerprint) Short() string {
	return fingerprint.String()[:12]
}

// MarshalText encodes the fingerprint as hex so it reads naturally in
// JSON and YAML output.
func (fingerprint Fingerprint) MarshalText() ([]byte, error) {
	return []byte(fingerprint.String()), nil
}
