package session

// DefaultMaxHistorySize is used when the store is built with a non-positive bound.
const DefaultMaxHistorySize = 5
