package errs

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	// lending rule violations
	ErrNoCopies        = errors.New("no copies of the book available")
	ErrAlreadyBorrowed = errors.New("reader has already borrowed this book and has not returned it")
	ErrBorrowLimit     = errors.New("reader cannot take more than 3 books")
	ErrNotBorrowed     = errors.New("reader did not borrow this book or already returned it")

	ErrEmailTaken  = errors.New("email already registered")
	ErrISBNTaken   = errors.New("isbn already registered")
	ErrHasLoans    = errors.New("loan records still reference this record")
	ErrInvalidCred = errors.New("invalid email or password")
)

// IsConflict reports whether err is a business-rule violation that the
// HTTP boundary translates to 409.
func IsConflict(err error) bool {
	for _, e := range []error{
		ErrNoCopies, ErrAlreadyBorrowed, ErrBorrowLimit, ErrNotBorrowed,
		ErrEmailTaken, ErrISBNTaken, ErrHasLoans,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
