package main

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"
)

type keepAliveListener struct {
	net.Listener

	period time.Duration
}

type keepAliveSetter interface {
	SetKeepAlive(bool) error
	SetKeepAlivePeriod(time.Duration) error
}

func (ln *keepAliveListener) Accept() (net.Conn, error) {
	conn, err := ln.Listener.Accept()
	if err != nil {
		return nil, err
	}

	if kc, ok := conn.(keepAliveSetter); ok {
		if ln.period < 0 {
			kc.SetKeepAlive(false)
		} else {
			kc.SetKeepAlive(true)
			kc.SetKeepAlivePeriod(ln.period)
		}
	}

	return conn, nil
}

// newListener opens a TCP listener on addr. Keep-alive tuning happens on
// the raw connections, the connection limit is enforced around that.
func (a *theApp) newListener(addr string) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	if period := a.config.Server.ListenKeepAlive; period != 0 {
		l = &keepAliveListener{Listener: l, period: period}
	}

	if limit := a.config.General.MaxConns; limit > 0 {
		l = netutil.LimitListener(l, limit)
	}

	return l, nil
}

func (a *theApp) newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       a.config.Server.ReadTimeout,
		ReadHeaderTimeout: a.config.Server.ReadHeaderTimeout,
		WriteTimeout:      a.config.Server.WriteTimeout,
	}
}
