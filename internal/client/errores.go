package client

import "fmt"

// The three failure domains of a fetch, from the outside in:
//
//   ErrorRed        — transport failure, no response was received
//   ErrorHTTP       — a response arrived with a non-2xx status
//   ErrorAplicacion — a 2xx response whose payload is unusable
//                     (success=false or the expected shape is missing)
//
// Callers branch with errors.As; only view-level code turns these into
// human-readable render state.

// ErrorRed wraps a transport-level failure.
type ErrorRed struct {
	Err error
}

func (e *ErrorRed) Error() string { return "error de conexion: " + e.Err.Error() }
func (e *ErrorRed) Unwrap() error { return e.Err }

// ErrorHTTP carries the status code and, when the server sent one, its
// error message.
type ErrorHTTP struct {
	Status  int
	Mensaje string
}

func (e *ErrorHTTP) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("error del servidor: %d", e.Status)
}

// ErrorAplicacion means the response parsed but did not satisfy the contract.
type ErrorAplicacion struct {
	Motivo string
}

func (e *ErrorAplicacion) Error() string { return e.Motivo }

// ErrorValidacion is a client-side form rejection: no request was sent.
// Campo names the offending field category, not an individual input.
type ErrorValidacion struct {
	Campo   string
	Mensaje string
}

func (e *ErrorValidacion) Error() string { return e.Mensaje }
