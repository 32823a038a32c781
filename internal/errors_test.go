package internal

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/stretchr/testify/assert"
)

func TestNewErrorAndCode(t *testing.T) {
	err := NewError(ErrCodeNoSuchEntity, "no such entity: bob", nil)
	assert.Equal(t, ErrCodeNoSuchEntity, Code(err))
	assert.True(t, Is(err, ErrCodeNoSuchEntity))
	assert.False(t, Is(err, ErrCodeAccessDenied))
	assert.Equal(t, "", Code(errors.New("plain")))
}

func TestEncodableErrorRoundTrip(t *testing.T) {
	assert.Nil(t, EncodableError(nil))

	cause := errors.New("disk full")
	src := awserr.New(ErrCodeServiceFailure, "write failed", cause)
	enc := EncodableError(src)

	we, ok := enc.(*wireErr)
	if assert.True(t, ok) {
		assert.Equal(t, ErrCodeServiceFailure, we.Code())
		assert.Equal(t, "write failed", we.Message())
		assert.EqualError(t, we.OrigErr(), "disk full")
	}

	// Re-encoding an already-encodable error is a no-op, matching the
	// cachesock wire protocol which may pass an error through twice (once
	// when it crosses the socket, once if it is logged locally after).
	assert.True(t, EncodableError(enc) == enc)
}

func TestEncodableErrorPlain(t *testing.T) {
	enc := EncodableError(errors.New("boom"))
	se, ok := enc.(*strErr)
	if assert.True(t, ok) {
		assert.Equal(t, "boom", se.Error())
	}
}
