package preference

import "errors"

var (
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrPreferenceNotFound = errors.New("preference not found")
)
