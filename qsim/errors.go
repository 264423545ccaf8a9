package qsim

import "errors"

// Sentinel errors returned by the engine. Every message carries the "qsim:"
// prefix; callers match them with errors.Is because most call sites wrap them
// with the operation and the offending dimensions.
var (
	// ErrDimensionMismatch reports matrix, vector or circuit dimensions that are
	// incompatible for the requested operation.
	ErrDimensionMismatch = errors.New("qsim: dimension mismatch")

	// ErrQubitOutOfRange reports a qubit index outside [0, n).
	ErrQubitOutOfRange = errors.New("qsim: qubit out of range")

	// ErrIndexOutOfRange reports element or amplitude access outside valid bounds.
	ErrIndexOutOfRange = errors.New("qsim: index out of range")

	// ErrEmptyState is returned when a state vector is built from no amplitudes.
	ErrEmptyState = errors.New("qsim: empty state vector")

	// ErrZeroNormState is returned when amplitudes cannot be normalized.
	ErrZeroNormState = errors.New("qsim: zero-norm state vector")

	// ErrDivisionByZero is returned by complex division by a zero-magnitude divisor.
	ErrDivisionByZero = errors.New("qsim: division by zero")

	// ErrInvalidQubitCount is returned for registers of zero or fewer qubits.
	ErrInvalidQubitCount = errors.New("qsim: qubit count must be positive")

	// ErrTooManyQubits is returned when a register exceeds the circuit ceiling
	// or HardMaxQubits.
	ErrTooManyQubits = errors.New("qsim: qubit count exceeds ceiling")

	// ErrInvalidShots is returned by Measure for a non-positive shot count.
	ErrInvalidShots = errors.New("qsim: shot count must be positive")

	// ErrUnknownGate is returned for gate names outside the gate table.
	ErrUnknownGate = errors.New("qsim: unknown gate")

	// ErrGateArity is returned when a known gate gets the wrong number of
	// angle parameters.
	ErrGateArity = errors.New("qsim: wrong number of gate parameters")

	// ErrUnsupportedLayout is returned for multi-qubit gates whose qubits are not
	// adjacent in ascending order; embedding never permutes basis labels.
	ErrUnsupportedLayout = errors.New("qsim: unsupported qubit layout")
)
