package reminder

import "errors"

var ErrParseStatus = errors.New("invalid status")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ParseStatus(value string) (Status, error) {
	switch value {
	case "pending":
		return StatusPending, nil
	case "delivered":
		return StatusDelivered, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return StatusUnknown, ErrParseStatus
	}
}

var (
	StatusUnknown   = Status{}
	StatusPending   = Status{v: "pending"}
	StatusDelivered = Status{v: "delivered"}
	StatusCancelled = Status{v: "cancelled"}
)
