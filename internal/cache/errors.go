package cache

import "errors"

// ErrStorage marks failures of the persistent tier. Cache methods log these
// and carry on; Store implementations wrap their errors with it.
var ErrStorage = errors.New("cache storage failure")

// ErrMalformedEntry reports a persisted value that is not a valid entry blob.
var ErrMalformedEntry = errors.New("malformed cache entry")
