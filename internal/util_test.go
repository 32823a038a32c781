package internal

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime(t *testing.T) {
	d := time.Now().Sub(Time())
	assert.True(t, d >= 0)
	assert.True(t, d <= 1500*time.Millisecond)
}

func TestJSON(t *testing.T) {
	assert.Equal(t, "{}\n", JSON(struct{}{}))

	// HTML characters must not be escaped; creation_date/arn values routinely
	// contain '<' inside ARNs logged via internal.JSON.
	assert.Equal(t, "{\n  \"ARN\": \"arn:aws:iam:r1:user/<tmp>\"\n}\n",
		JSON(struct{ ARN string }{"arn:aws:iam:r1:user/<tmp>"}))
}

func TestFromErrno(t *testing.T) {
	assert.Nil(t, FromErrno("read", "/x", nil))

	_, statErr := os.Stat("/nonexistent/account/path.json")
	err := FromErrno("read", "/nonexistent/account/path.json", statErr)
	assert.Equal(t, ErrCodeNoSuchEntity, Code(err))
	assert.True(t, Is(err, ErrCodeNoSuchEntity))
}
