// Package cachesock implements identity.CacheInvalidator as a client/server
// pair that exchanges encoding/gob messages over a local Unix domain socket,
// carrying cache-invalidation events to an out-of-process access-key cache.
package cachesock

import (
	"context"
	"encoding/gob"
	"net"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// Request is a single invalidation request sent over the socket.
type Request struct {
	AccessKey string
}

// Response carries the server's result for a Request. Errors are passed
// through internal.EncodableError so that awserr.Error values survive the
// gob round trip (they carry unexported fields gob cannot encode directly).
type Response struct {
	Err error
}

func init() {
	gob.Register(new(Request))
	gob.Register(new(Response))
	gob.Register(new(internal.LogMsg))
}

// Client dials addr once and reuses the connection for every invalidation.
// It implements identity.CacheInvalidator.
type Client struct {
	addr string
	mu   chanMutex
	conn net.Conn
	enc  *gob.Encoder
	dec  *gob.Decoder
}

// chanMutex is a 1-buffered channel used as a mutex. It serializes
// Invalidate and Close on conn: Close waits for an in-flight Invalidate to
// finish.
type chanMutex chan struct{}

func newChanMutex() chanMutex {
	c := make(chanMutex, 1)
	c <- struct{}{}
	return c
}

func (c chanMutex) Lock()   { <-c }
func (c chanMutex) Unlock() { c <- struct{}{} }

// NewClient returns a Client that will dial addr lazily on first use.
func NewClient(addr string) *Client {
	return &Client{addr: addr, mu: newChanMutex()}
}

// Invalidate sends a single invalidation request and waits for the ack. The
// context is not wired into the socket round trip (net.Conn has no
// context-aware Read/Write); callers needing a hard deadline should wrap
// the client or close it from a watchdog goroutine.
func (c *Client) Invalidate(ctx context.Context, accessKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		conn, err := net.Dial("unix", c.addr)
		if err != nil {
			return err
		}
		c.conn = conn
		c.enc = gob.NewEncoder(conn)
		c.dec = gob.NewDecoder(conn)
	}
	if err := c.enc.Encode(&Request{AccessKey: accessKey}); err != nil {
		c.reset()
		return err
	}
	var resp Response
	if err := c.dec.Decode(&resp); err != nil {
		c.reset()
		return err
	}
	return resp.Err
}

// reset drops the connection so the next Invalidate redials. Callers must
// hold mu.
func (c *Client) reset() {
	c.conn.Close()
	c.conn, c.enc, c.dec = nil, nil, nil
}

// Close releases the underlying connection, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.enc, c.dec = nil, nil, nil
	return err
}
