package employee

import "errors"

var (
	ErrNotFound     = errors.New("employee not found")
	ErrIDRequired   = errors.New("employee id is required")
	ErrIDAssigned   = errors.New("employee id is assigned by the store")
	ErrUnknownField = errors.New("unknown employee field")
	ErrRejected     = errors.New("employee record rejected by the store")
)

// StoreError is any failure reported by a record store: transport, auth,
// missing document or a rejected write. Its message is the cause's message
// unchanged so it can be shown to the operator as-is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return "store " + e.Op + " failed"
	}
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStoreError tags err as a StoreError for op unless it already is one.
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ValidationError is raised locally before any store call.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
