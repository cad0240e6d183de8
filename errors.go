package dashboard

import "errors"

// Validation errors raised by the chart pipeline. They are returned wrapped,
// test them with errors.Is.
var (
	// ErrUnsupportedRange is returned for a range identifier outside the supported set.
	ErrUnsupportedRange = errors.New("unsupported range")
	// ErrUnsupportedMode is returned for an unknown display mode.
	ErrUnsupportedMode = errors.New("unsupported display mode")
	// ErrLengthMismatch is returned when a subject and its baseline differ in length.
	ErrLengthMismatch = errors.New("subject and baseline length mismatch")
	// ErrSeriesLengthMismatch is returned when a series does not have one value per label.
	ErrSeriesLengthMismatch = errors.New("series and labels length mismatch")
	// ErrZeroOrigin is returned when a relative transform is applied to a series starting at zero.
	ErrZeroOrigin = errors.New("series origin is zero")
	// ErrInvalidPath is returned for path parameters outside their domain.
	ErrInvalidPath = errors.New("invalid path parameters")
	// ErrUnknownAsset is returned when a symbol is not in the catalog.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrUnsupportedBreakdown is returned for an unknown allocation breakdown.
	ErrUnsupportedBreakdown = errors.New("unsupported allocation breakdown")
)

// isValidation reports whether err comes from invalid input rather than from
// a failing data source.
func isValidation(err error) bool {
	for _, target := range []error{ErrUnsupportedRange, ErrUnsupportedMode, ErrInvalidPath, ErrUnknownAsset, ErrUnsupportedBreakdown} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
