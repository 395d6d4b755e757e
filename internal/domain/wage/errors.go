package wage

import "errors"

var (
	ErrBatchNotFound      = errors.New("approval batch not found")
	ErrRecordNotFound     = errors.New("wage record not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
