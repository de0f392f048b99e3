package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Marketplace domain errors. These are reported conditions, not fatal ones:
// handlers map them to 4xx responses and the store state is unchanged when
// they fire.
var (
	ErrNegativeBalance = errors.New("balance would go negative")
	ErrMissingSkill    = errors.New("missing required skill")
	ErrSelfSubmission  = errors.New("cannot submit to own project")
	ErrProjectClosed   = errors.New("project is not open")
	ErrAlreadyAssigned = errors.New("project already has an assigned freelancer")
	ErrAlreadyAwarded  = errors.New("submission already resolved")
	ErrInvalidWallet   = errors.New("invalid wallet address")
	ErrInvalidPrize    = errors.New("invalid prize amount")
)

func NewNegativeBalanceError(wallet string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrNegativeBalance,
		Details:    fmt.Sprintf("Adjustment rejected: balance for %s would go negative", wallet),
		Field:      "balance",
	}
}

func NewMissingSkillError(skill string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrMissingSkill,
		Details:    fmt.Sprintf("Missing required skill: %s", skill),
		Field:      "skills",
	}
}

func NewSelfSubmissionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrSelfSubmission,
	}
}

func NewProjectClosedError(status string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrProjectClosed,
		Details:    fmt.Sprintf("Project status is %q", status),
		Field:      "status",
	}
}

func NewAlreadyAssignedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrAlreadyAssigned,
		Field:      "assigned_freelancer",
	}
}

func NewAlreadyAwardedError(status string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrAlreadyAwarded,
		Details:    fmt.Sprintf("Submission status is %q", status),
		Field:      "status",
	}
}

func NewInvalidWalletError(wallet string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidWallet,
		Details:    fmt.Sprintf("%q is not a valid wallet address", wallet),
		Field:      "wallet_address",
	}
}

func NewInvalidPrizeError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidPrize,
		Details:    reason,
		Field:      "prize_amount",
	}
}

func IsNegativeBalance(err error) bool {
	return errors.Is(err, ErrNegativeBalance)
}

func IsMissingSkill(err error) bool {
	return errors.Is(err, ErrMissingSkill)
}

func IsAlreadyAwarded(err error) bool {
	return errors.Is(err, ErrAlreadyAwarded)
}
