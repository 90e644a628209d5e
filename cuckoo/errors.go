package cuckoo

import "errors"

// ErrFull is returned by Insert when max kicks evictions failed to seat the
// displaced fingerprint. The filter is left holding exactly the same
// multiset of fingerprints it held before the call.
var ErrFull = errors.New("cuckoo: eviction chain exceeded max kicks")

// ErrInvalidFingerprintWidth is returned by New when f is outside [1, 64].
var ErrInvalidFingerprintWidth = errors.New("cuckoo: fingerprint width must be between 1 and 64")

// ErrInvalidEntriesPerBucket is returned by New when b is zero.
var ErrInvalidEntriesPerBucket = errors.New("cuckoo: entries per bucket must be at least 1")

// ErrInvalidCapacity is returned by New when capacity is zero.
var ErrInvalidCapacity = errors.New("cuckoo: capacity must be at least 1")
