package constants

// Export download metadata.
const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	XLSXExt         = "xlsx"
)
