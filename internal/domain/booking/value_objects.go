package booking

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"barbershop-booking/internal/domain/availability"
)

const (
	DateLayout             = "2006-01-02"
	MaxCustomerNameLength  = 100
	MaxCustomerPhoneLength = 32
	MaxNoteLength          = 500
)

var (
	ErrEmptyCustomerName    = errors.New("customer name cannot be empty")
	ErrCustomerNameTooLong  = errors.New("customer name is too long")
	ErrCustomerPhoneTooLong = errors.New("customer phone is too long")
	ErrNoteTooLong          = errors.New("note is too long")
	ErrInvalidDate          = errors.New("invalid booking date")
)

// ParseDate reads a calendar day in DateLayout. The result is midnight UTC and
// only its year, month and day are meaningful.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// StartsAt places a calendar day and a time of day on the timeline of loc.
func StartsAt(date time.Time, t availability.TimeOfDay, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(t.Minutes()) * time.Minute)
}

type Customer struct {
	name  string
	phone string
}

func NewCustomer(name, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return Customer{}, ErrEmptyCustomerName
	}
	if utf8.RuneCountInString(name) > MaxCustomerNameLength {
		return Customer{}, ErrCustomerNameTooLong
	}
	if len(phone) > MaxCustomerPhoneLength {
		return Customer{}, ErrCustomerPhoneTooLong
	}
	return Customer{name: name, phone: phone}, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Phone() string { return c.phone }

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}
