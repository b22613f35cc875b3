package errs

// Sentinel errors shared by the command and query use cases. Handlers map them
// to status codes with Is.
var (
	ErrBarberNotFound  = New("barber not found")
	ErrServiceNotFound = New("service not found")
	ErrBookingNotFound = New("booking not found")

	ErrInvalidConfiguration = New("barber working window is misconfigured")
	ErrInvalidInput         = New("invalid input")

	ErrSlotUnavailable = New("slot is no longer available")
	ErrInvalidSlot     = New("requested start time is not bookable")
	ErrAlreadyCanceled = New("booking is already canceled")

	ErrDatabaseOperationFailed = New("database operation failed")
)
