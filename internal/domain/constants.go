package domain

// Business validation constants
const (
	MaxPurposeLength      = 255
	MaxResourceNameLength = 255
	MaxDescriptionLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// StoredStatuses статусы, которые могут храниться в БД
var StoredStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
}

// VisibleToGuestStatuses статусы чужих бронирований, которые видит гость
var VisibleToGuestStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
