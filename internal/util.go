package internal

import (
	"bytes"
	"encoding/json"
	"os"
	"sync/atomic"
	"time"
)

var now atomic.Value

func init() {
	now.Store(time.Now())
	go func() {
		t := time.Now()
		d := t.Truncate(time.Second).Add(time.Second).Sub(t)
		if d < 250*time.Millisecond {
			d += time.Second
		}
		now.Store(<-time.After(d))
		for t := range time.Tick(time.Second) {
			now.Store(t)
		}
	}()
}

// Time returns the current time. It is much faster than time.Now() under
// heavy concurrent use (every CreateUser/CreateAccessKey call needs a
// creation timestamp), at a resolution of one second.
func Time() time.Time {
	return now.Load().(time.Time)
}

// JSON returns a pretty, HTML-unescaped representation of v for log
// messages and CLI output.
func JSON(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
	return buf.String()
}

func isNotExist(err error) bool   { return os.IsNotExist(err) }
func isExist(err error) bool      { return os.IsExist(err) }
func isPermission(err error) bool { return os.IsPermission(err) }
