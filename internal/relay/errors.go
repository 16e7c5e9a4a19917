package relay

import "errors"

// ErrMalformedUpdate marks an inbound event without a chat, user key or text.
// Such events are logged and dropped without a reply.
var ErrMalformedUpdate = errors.New("malformed inbound update")
