// Package stream bridges push-style terminal callbacks into a pull-style
// event stream.
//
// An EventStream registers a data listener and a resize listener on a
// source.Source. The data listener decodes raw bytes incrementally, keeping
// a private partial-sequence buffer across chunks; both listeners append to
// one shared FIFO inbox and wake the suspended consumer, if any.
//
// Consumers either drive Poll with their own Waker or use Next / All, which
// park on the stream's internal channel waker and honor context cancellation.
// Cursor position replies travel through the same byte stream and are
// dropped before reaching consumers.
//
// Close revokes both listeners; events already queued stay drainable.
package stream
