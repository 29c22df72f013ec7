package actions

import "errors"

var (
	ErrInvalidSpec             = errors.New("invalid action spec")
	ErrInvalidRecipientAddress = errors.New("invalid recipient address")
	ErrInvalidAccount          = errors.New("invalid account")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrSpecNotFound            = errors.New("app not found")
	ErrTransactionBuildFailed  = errors.New("failed to build transaction")
	ErrStorageFailure          = errors.New("storage failure")
)
