package cachesock

import (
	"context"
	"encoding/gob"
	"io"
	"net"
	"os"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// Handler is called for every invalidation request received by Listen.
type Handler func(ctx context.Context, accessKey string) error

// Listen opens a Unix domain socket at addr and serves invalidation
// requests with h until the listener is closed. Each connection carries a
// sequence of request/response pairs, served inline; the protocol has no
// long-running session state.
func Listen(addr string, h Handler) (net.Listener, error) {
	os.Remove(addr)
	l, err := net.Listen("unix", addr)
	if err != nil {
		return nil, err
	}
	go acceptLoop(l, h)
	return l, nil
}

func acceptLoop(l net.Listener, h Handler) {
	for {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		go serveConn(conn, h)
	}
}

func serveConn(conn net.Conn, h Handler) {
	defer conn.Close()
	dec := gob.NewDecoder(conn)
	enc := gob.NewEncoder(conn)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if err != io.EOF {
				internal.Log.W("cachesock: decode error: %v", err)
			}
			return
		}
		err := h(context.Background(), req.AccessKey)
		resp := Response{Err: internal.EncodableError(err)}
		if encErr := enc.Encode(&resp); encErr != nil {
			internal.Log.W("cachesock: encode error: %v", encErr)
			return
		}
	}
}
