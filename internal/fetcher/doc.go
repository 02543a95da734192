// Package fetcher retrieves JSON documents through the response cache.
//
// FetchWithCache consults the cache first and, on a miss, performs a single
// HTTP GET per URL no matter how many callers ask concurrently. Successful
// payloads are written to both cache tiers before waiting callers are
// released; failures are reported to every waiter and leave no trace, so the
// next call retries from scratch.
//
// Failures are *Error values classified as ErrTransport (the request never
// completed), ErrNetwork (non-2xx status), or ErrDecode (body is not JSON).
package fetcher
