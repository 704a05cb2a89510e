package errortypes

import "fmt"

// Timeout should be used to flag that a network call failed to return a response
// before the client-side timeout expired. There is no retry; the operator
// re-invokes the action manually.
type Timeout struct {
	Message string
}

func (err *Timeout) Error() string {
	return err.Message
}

func (err *Timeout) Code() int {
	return TimeoutErrorCode
}

func (err *Timeout) Severity() Severity {
	return SeverityFatal
}

// BadInput should be used when returning errors which are caused by bad input:
// a required or conditionally-required field is missing, or a value is outside
// its declared bounds or enum. These are detected entirely client-side, before
// any network call is made.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// BadServerResponse should be used when a network responded with a malformed or
// unexpected body (e.g. an envelope that is not JSON, or is missing the status
// fields). This should not be used for connection errors.
type BadServerResponse struct {
	Message string
}

func (err *BadServerResponse) Error() string {
	return err.Message
}

func (err *BadServerResponse) Code() int {
	return BadServerResponseErrorCode
}

func (err *BadServerResponse) Severity() Severity {
	return SeverityFatal
}

// TransportError covers connection-level failures (DNS, refused connections,
// resets). Surfaced to the operator as-is.
type TransportError struct {
	Message string
}

func (err *TransportError) Error() string {
	return err.Message
}

func (err *TransportError) Code() int {
	return TransportErrorCode
}

func (err *TransportError) Severity() Severity {
	return SeverityFatal
}

// BusinessError is a non-zero status or code returned by a network's API. The
// raw code and message are always preserved; Hint carries a friendlier
// explanation for known codes without hiding the original.
type BusinessError struct {
	NetworkCode int
	Message     string
	Hint        string
}

func (err *BusinessError) Error() string {
	if err.Hint != "" {
		return fmt.Sprintf("network error %d: %s (%s)", err.NetworkCode, err.Message, err.Hint)
	}
	return fmt.Sprintf("network error %d: %s", err.NetworkCode, err.Message)
}

func (err *BusinessError) Code() int {
	return BusinessErrorCode
}

func (err *BusinessError) Severity() Severity {
	return SeverityFatal
}

// ResolutionError flags that an iTunes numeric app ID could not be mapped to a
// usable package name via the reference catalog. Callers must treat this as
// "no slot name" and never fall back to the raw numeric ID.
type ResolutionError struct {
	Message string
}

func (err *ResolutionError) Error() string {
	return err.Message
}

func (err *ResolutionError) Code() int {
	return ResolutionErrorCode
}

func (err *ResolutionError) Severity() Severity {
	return SeverityFatal
}

// UnsupportedOperation is returned when an operation (app or unit creation) is
// requested for a network that does not support it.
type UnsupportedOperation struct {
	Message string
}

func (err *UnsupportedOperation) Error() string {
	return err.Message
}

func (err *UnsupportedOperation) Code() int {
	return UnsupportedOperationErrorCode
}

func (err *UnsupportedOperation) Severity() Severity {
	return SeverityFatal
}
