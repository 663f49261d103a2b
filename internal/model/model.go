package model

import (
	"time"
)

type Book struct {
	ID              int     `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	Author          string  `json:"author" db:"author"`
	PublicationYear *int    `json:"publication_year" db:"publication_year"`
	ISBN            *string `json:"isbn" db:"isbn"`
	CopiesQuantity  int     `json:"copies_quantity" db:"copies_quantity"`
	Description     string  `json:"description" db:"description"`
}

type Reader struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

type Librarian struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

// BorrowedBook is a loan record. It is created active when a copy is
// handed out and closed (is_active=false, return_date set) when the
// copy comes back; closed records are kept forever.
type BorrowedBook struct {
	ID         int        `json:"id" db:"id"`
	BorrowDate time.Time  `json:"borrow_date" db:"borrow_date"`
	ReturnDate *time.Time `json:"return_date" db:"return_date"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	BookID     int        `json:"book_id" db:"book_id"`
	ReaderID   int        `json:"reader_id" db:"reader_id"`
}

// ReaderLoan is an active loan joined with the borrowed book.
type ReaderLoan struct {
	BorrowedBook
	BookName   string `json:"book_name" db:"book_name"`
	BookAuthor string `json:"book_author" db:"book_author"`
}

type CreateBookRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Author          string  `json:"author" validate:"required,max=100"`
	PublicationYear *int    `json:"publication_year"`
	ISBN            *string `json:"isbn" validate:"omitempty,max=13"`
	CopiesQuantity  *int    `json:"copies_quantity" validate:"omitempty,gte=0"`
	Description     string  `json:"description" validate:"max=500"`
}

// Apply merges a patch into the book: nil request fields keep the
// stored values.
func (b *Book) Apply(req UpdateBookRequest) {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.PublicationYear != nil {
		b.PublicationYear = req.PublicationYear
	}
	if req.ISBN != nil {
		b.ISBN = req.ISBN
	}
	if req.CopiesQuantity != nil {
		b.CopiesQuantity = *req.CopiesQuantity
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
}

// Apply merges a patch into the reader, same contract as Book.Apply.
func (r *Reader) Apply(req UpdateReaderRequest) {
	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Email != nil {
		r.Email = *req.Email
	}
}

/// UpdateBookRequest is a merge patch: nil fields keep the stored value.
type UpdateBookRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	Author          *string `json:"author" validate:"omitempty,max=100"`
	PublicationYear *int    `json:"publication_year"`
	ISBN            *string `json:"isbn" validate:"omitempty,max=13"`
	CopiesQuantity  *int    `json:"copies_quantity" validate:"omitempty,gte=0"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
}

type CreateReaderRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type UpdateReaderRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type CreateLibrarianRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
