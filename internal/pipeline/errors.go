package pipeline

import "fmt"

// The four failure classes below are terminal for the request that raised
// them and non-fatal for the pipeline: the drain loop reports the failure
// and moves on to the next queued request. None of them is retried.

// EncodeError reports a request that could not be converted to the wire
// format.
type EncodeError struct {
	Reason string
}

func (e *EncodeError) Error() string {
	return "encode request: " + e.Reason
}

// NetworkError reports a transport-level failure: DNS, refused connection,
// timeout, or a non-2xx status from the service.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServiceError carries the reason string of a response the service itself
// marked as failed.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return "service: " + e.Message
}

// DecodeError reports a response body or image payload that could not be
// decoded.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode response: %s: %v", e.Reason, e.Err)
	}
	return "decode response: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
