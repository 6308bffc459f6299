package common

import "fmt"

// StoreErrType enumerates the failure modes of the in-memory indexes.
type StoreErrType uint32

const (
	// KeyNotFound means the requested key is not indexed.
	KeyNotFound StoreErrType = iota
	// TooLate means the item falls below the current window.
	TooLate
	// UnknownParticipant means the creator is not part of the peer-set.
	UnknownParticipant
	// Empty means the collection holds nothing yet.
	Empty
	// KeyAlreadyExists means the key is indexed already.
	KeyAlreadyExists
)

// StoreErr is the error returned by indexes and caches. It records which data
// type was being accessed and with what key.
type StoreErr struct {
	dataType string
	errType  StoreErrType
	key      string
}

// NewStoreErr creates a StoreErr.
func NewStoreErr(dataType string, errType StoreErrType, key string) StoreErr {
	return StoreErr{
		dataType: dataType,
		errType:  errType,
		key:      key,
	}
}

// Error implements the error interface.
func (e StoreErr) Error() string {
	m := ""
	switch e.errType {
	case KeyNotFound:
		m = "Not Found"
	case TooLate:
		m = "Too Late"
	case UnknownParticipant:
		m = "Unknown Participant"
	case Empty:
		m = "Empty"
	case KeyAlreadyExists:
		m = "Key Already Exists"
	}

	return fmt.Sprintf("%s, %s, %s", e.dataType, e.key, m)
}

// Is checks that an error is of type StoreErr and that its code matches the
// provided StoreErrType.
func Is(err error, t StoreErrType) bool {
	storeErr, ok := err.(StoreErr)
	return ok && storeErr.errType == t
}
