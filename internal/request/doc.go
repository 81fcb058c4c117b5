// Package request drives single logical HTTP requests against the songmatch
// backend on behalf of every screen and command.
//
// # Overview
//
// A Coordinator is bound to one endpoint, method, body and timeout at
// construction. Callers register up to four callbacks and call Initiate. The
// coordinator performs the network attempt on its own goroutine, classifies
// the result and either resolves to exactly one terminal callback or waits
// and retries.
//
//	c := request.New(endpoint, request.WithTimeout(5*time.Second))
//	c.OnLoading(func() { spinner.Show() })
//	c.OnSuccess(func(body request.Payload) { render(body) })
//	c.OnError(func(status int, body request.Payload) { showError(status, body) })
//	c.OnFail(func(err error) { showFailure(err) })
//	c.Initiate()
//
// # Callbacks
//
// Each event kind has a single slot; registering again replaces the previous
// handler. Slots are read when the event fires, so a handler registered after
// Initiate still receives the terminal callback of a pending sequence. An
// outcome that was already delivered is never replayed.
//
// Per logical request the order is always:
//
//   - OnLoading at most once, synchronously inside Initiate
//   - zero or more silent retries
//   - exactly one of OnSuccess, OnError or OnFail
//
// Terminal callbacks run on the coordinator goroutine. The in-flight flag is
// cleared after the terminal callback returns, so calling Initiate from inside
// a terminal callback is a no-op.
//
// # Classification
//
// The Transport classifies every physical attempt into a Kind:
//
//   - KindSuccess: 2xx with a JSON body, or no body under WithEmptySuccess
//   - KindApplicationError: any other status; never retried
//   - KindTransportFailure: unreachable host, timeout, reset; retried
//   - KindParseFailure: 2xx whose body is empty, not JSON or over the size
//     limit; never retried
//   - KindUnclassified: anything else; delivered to OnFail
//
// # Retries
//
// Transport failures are retried twice. The wait before retry k is 2^(k-1)
// seconds (1s, then 2s), so a logical request makes at most three physical
// attempts. Every attempt gets the full per-attempt timeout. The retry
// counter is reset by each Initiate.
//
// # Single flight
//
// Initiate while a sequence is outstanding does nothing. This is the only
// coordination a Coordinator offers; independent call sites should use
// independent coordinators.
//
// # Disposal
//
// Close disposes the coordinator. A pending backoff wait is abandoned, no
// further callbacks fire for the current sequence and later Initiate calls
// are ignored. An attempt that is already on the wire is allowed to finish;
// its outcome is discarded.
package request
