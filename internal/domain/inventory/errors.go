package inventory

import "fmt"

// NotFoundError reports that no medicine matched the given lookup key
// (a name from a prescription, or an id from a direct operation).
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("medicine %q not found in inventory", e.Key)
}

// InsufficientStockError reports an issuance that would exceed the remaining
// stock of a medicine. Requested is the net increase asked for; Remaining is
// what was on the shelf when the row was locked.
type InsufficientStockError struct {
	Name      string
	Requested int
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %q: requested %d, remaining %d",
		e.Name, e.Requested, e.Remaining)
}

// ValidationError reports malformed input rejected before any store access.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
