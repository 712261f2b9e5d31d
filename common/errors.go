package common

import "errors"

// ErrQueueIsFull is returned when a submission would take the queue past its size limit.
// Better fail fast, and tell the requester, than let the queue grow without bound.
// Nothing from the rejected submission is inserted.
var ErrQueueIsFull = errors.New("queue is full, rejecting new items")

// ErrQueueIsClosed is returned when submitting after `Close()`
var ErrQueueIsClosed = errors.New("queue is already closed")

// ErrParamShouldBePositive is returned when sizeLimit given is zero or negative
var ErrParamShouldBePositive = errors.New("sizeLimit given should be positive")
