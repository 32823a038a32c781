package internal

import (
	"encoding/gob"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/iam"
)

// Error kind codes for the identity store. Where IAM itself defines the
// matching error code, that constant is reused directly so that errors
// produced here are byte-identical to what a real IAM service would return.
// AccessDenied and Validation have no iam package constants (they are
// generic AWS API errors, not IAM-specific ones), so they are declared
// locally using the same spelling AWS uses on the wire.
const (
	ErrCodeAccessDenied   = "AccessDeniedException"
	ErrCodeEntityExists   = iam.ErrCodeEntityAlreadyExistsException
	ErrCodeNoSuchEntity   = iam.ErrCodeNoSuchEntityException
	ErrCodeDeleteConflict = iam.ErrCodeDeleteConflictException
	ErrCodeLimitExceeded  = iam.ErrCodeLimitExceededException
	ErrCodeValidation     = "ValidationError"
	ErrCodeServiceFailure = iam.ErrCodeServiceFailureException
)

// NewError builds an awserr.Error carrying one of the ErrCode* kinds above.
func NewError(code, message string, cause error) error {
	return awserr.New(code, message, cause)
}

// Code returns the ErrCode* kind of err, or "" if err is not one of ours.
func Code(err error) string {
	if e, ok := err.(awserr.Error); ok {
		return e.Code()
	}
	return ""
}

// Is reports whether err carries the given ErrCode* kind.
func Is(err error, code string) bool {
	return Code(err) == code
}

// FromErrno maps a POSIX-style filesystem error to one of the ErrCode* kinds.
// It is used only as a fallback: every code path in the store that can
// anticipate a specific failure (missing account, name collision, ...)
// constructs the precise error kind itself before the filesystem ever
// returns. FromErrno exists for the failures that slip past that -- a
// permission change racing a read, disk-full on write, and so on.
func FromErrno(op, path string, err error) error {
	switch {
	case err == nil:
		return nil
	case isNotExist(err):
		return NewError(ErrCodeNoSuchEntity, fmt.Sprintf("%s: %s: no such entity", op, path), err)
	case isExist(err):
		return NewError(ErrCodeEntityExists, fmt.Sprintf("%s: %s: already exists", op, path), err)
	case isPermission(err):
		return NewError(ErrCodeAccessDenied, fmt.Sprintf("%s: %s: unauthorized", op, path), err)
	default:
		return NewError(ErrCodeServiceFailure, fmt.Sprintf("%s: %s: %v", op, path, err), err)
	}
}

func init() {
	gob.Register(new(strErr))
	gob.Register(new(wireErr))
}

// EncodableError returns a representation of err that can be round-tripped
// through encoding/gob, for use by cachesock's socket protocol. awserr.Error
// values carry unexported fields and function values that gob cannot
// encode, so they are flattened to their code/message/cause triple.
func EncodableError(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *strErr, *wireErr:
		return err
	case awserr.Error:
		var cause error
		if oe := e.OrigErr(); oe != nil {
			cause = EncodableError(oe)
		}
		return &wireErr{Code_: e.Code(), Message_: e.Message(), Cause_: cause}
	default:
		return &strErr{Err: err.Error()}
	}
}

type strErr struct{ Err string }

func (e *strErr) Error() string { return e.Err }

type wireErr struct {
	Code_    string
	Message_ string
	Cause_   error
}

func (e *wireErr) Error() string     { return e.getErr().Error() }
func (e *wireErr) Code() string      { return e.Code_ }
func (e *wireErr) Message() string   { return e.Message_ }
func (e *wireErr) OrigErr() error    { return e.Cause_ }
func (e *wireErr) getErr() awserr.Error {
	return awserr.New(e.Code_, e.Message_, e.Cause_)
}
