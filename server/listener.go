package server

import (
	"net"
	"time"

	"github.com/golang/glog"
)

// newTCPListener mirrors Server.ListenAndServe's keep-alive behavior so the
// console can serve multiple servers from one process.
func newTCPListener(address string) (net.Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	if casted, ok := ln.(*net.TCPListener); ok {
		ln = &tcpKeepAliveListener{casted}
	} else {
		glog.Warning("net.Listen(\"tcp\", addr) did not return a *net.TCPListener. Keep-alives will not be set.")
	}
	return ln, nil
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln *tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}

	tc.SetKeepAlive(true)
	tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}
