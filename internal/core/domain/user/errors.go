package user

import "errors"

var ErrPermissionDenied = errors.New("permission denied")
