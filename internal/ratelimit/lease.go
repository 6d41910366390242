package ratelimit

import "sync"

// Lease is the receipt for one consumed token. Release must be called once
// the call it admitted has finished; extra calls are no-ops. Releasing never
// returns the token to the bucket.
type Lease struct {
	bucket *Bucket
	once   sync.Once
}

// Acquired reports whether a token was debited.
func (l *Lease) Acquired() bool {
	return l != nil && l.bucket != nil
}

// Release ends the lease.
func (l *Lease) Release() {
	if !l.Acquired() {
		return
	}

	l.once.Do(l.bucket.release)
}
