package domain

import "errors"

var (
	ErrStagingDealNotFound = errors.New("staging deal not found")
	ErrClientNameRequired  = errors.New("client name is required")
	ErrDealTitleRequired   = errors.New("deal title is required")
	ErrInvalidStatus       = errors.New("invalid deal status")
)
