package constants

// Pagination
const (
	// PageSize is the fixed number of descriptions returned per page.
	// It is a server-side constant to bound response size; clients
	// cannot override it.
	PageSize = 50

	// MaxCursorLength is the maximum accepted length of an encoded
	// pagination cursor.
	MaxCursorLength = 128
)

// Field length limits
const (
	TitleMinLength   = 1
	TitleMaxLength   = 100
	ContentMinLength = 1
	ContentMaxLength = 5000

	// ChannelIDLength is the exact length of a channel identifier.
	ChannelIDLength = 24
)
