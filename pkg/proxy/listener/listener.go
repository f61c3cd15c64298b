/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package listener provides the HTTP listeners for the frontend and metrics
// ports. Frontend connections are counted and optionally capped.
package listener

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/logger"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"

	"golang.org/x/net/netutil"
)

// Listener is the hydra net.Listener implementation
type Listener struct {
	net.Listener
	name   string
	server *http.Server
	log    logging.Logger
}

type countedConn struct {
	net.Conn
	once sync.Once
}

func (o *countedConn) Close() error {
	err := o.Conn.Close()
	o.once.Do(func() {
		metrics.FrontendActiveConnections.Dec()
		metrics.FrontendConnectionClosed.Inc()
	})
	return err
}

// Accept implements Listener.Accept
func (l *Listener) Accept() (net.Conn, error) {

	metrics.FrontendConnectionRequested.Inc()

	c, err := l.Listener.Accept()
	if err != nil {
		metrics.FrontendConnectionFailed.Inc()
		return c, err
	}

	metrics.FrontendActiveConnections.Inc()
	metrics.FrontendConnectionAccepted.Inc()

	return &countedConn{Conn: c}, nil
}

// ListenerGroup is a collection of listeners
type ListenerGroup struct {
	members       map[string]*Listener
	mu sync.Mutex
}

// NewListenerGroup returns a new ListenerGroup
func NewListenerGroup() *ListenerGroup {
	return &ListenerGroup{
		members: make(map[string]*Listener),
	}
}

// NewListener creates a new network listener which obeys the configured max
// connection limit.
//
// The limit is applied by wrapping the listener with a netutil.LimitListener,
// which blocks in Accept whenever clients go above the limit.
func NewListener(listenAddress string, listenPort, connectionsLimit int,
	log logging.Logger) (net.Listener, error) {

	listener, err := net.Listen("tcp", net.JoinHostPort(listenAddress, strconv.Itoa(listenPort)))
	if err != nil {
		// so we can exit one level above, this usually means that the port is in use
		return nil, err
	}

	if connectionsLimit > 0 {
		listener = netutil.LimitListener(listener, connectionsLimit)
		metrics.FrontendMaxConnections.Set(float64(connectionsLimit))
	}

	log.Debug("starting listener", logging.Pairs{
		"connectionsLimit": connectionsLimit,
		"address":          listenAddress,
		"port":             listenPort,
	})

	return listener, nil
}

// Get returns the listener if it exists
func (lg *ListenerGroup) Get(name string) *Listener {
	lg.mu.Lock()
	l, ok := lg.members[name]
	lg.mu.Unlock()
	if ok {
		return l
	}
	return nil
}

// Listen binds a new HTTP listener serving router and adds it to the listener
// group. It does not accept connections until Serve is called.
func (lg *ListenerGroup) Listen(listenerName, address string, port, connectionsLimit int,
	readHeaderTimeout time.Duration, router http.Handler, log logging.Logger) (*Listener, error) {
	if log == nil {
		log = logger.Logger()
	}
	nl, err := NewListener(address, port, connectionsLimit, log)
	if err != nil {
		log.ErrorSynchronous("http listener startup failed",
			logging.Pairs{"listenerName": listenerName, "detail": err})
		return nil, err
	}
	l := &Listener{
		Listener: nl,
		name:     listenerName,
		log:      log,
		server: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
	lg.mu.Lock()
	lg.members[listenerName] = l
	lg.mu.Unlock()
	return l, nil
}

// Serve accepts connections on the named listener until it is closed. A
// listener closed by DrainAndClose returns nil.
func (lg *ListenerGroup) Serve(listenerName string) error {
	l := lg.Get(listenerName)
	if l == nil {
		return errors.ErrNoSuchListener
	}
	if l.Listener == nil {
		return errors.ErrNilListener
	}
	l.log.Info("http listener starting",
		logging.Pairs{"listenerName": listenerName, "address": l.Addr().String()})
	err := l.server.Serve(l)
	if err == http.ErrServerClosed {
		return nil
	}
	l.log.ErrorSynchronous("http listener stopping",
		logging.Pairs{"listenerName": listenerName, "detail": err})
	return err
}

// StartListener binds and serves a new HTTP listener, blocking until it stops
func (lg *ListenerGroup) StartListener(listenerName, address string, port, connectionsLimit int,
	readHeaderTimeout time.Duration, router http.Handler, log logging.Logger) error {
	if _, err := lg.Listen(listenerName, address, port, connectionsLimit,
		readHeaderTimeout, router, log); err != nil {
		return err
	}
	return lg.Serve(listenerName)
}

// DrainAndClose stops the named listener from accepting connections and waits
// up to drainWait for in-flight requests to complete
func (lg *ListenerGroup) DrainAndClose(listenerName string, drainWait time.Duration) error {
	lg.mu.Lock()
	l, ok := lg.members[listenerName]
	if !ok || l == nil {
		lg.mu.Unlock()
		return errors.ErrNoSuchListener
	}
	delete(lg.members, listenerName)
	lg.mu.Unlock()
	if l.Listener == nil {
		return errors.ErrNilListener
	}
	ctx := context.Background()
	if drainWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, drainWait)
		defer cancel()
	}
	err := l.server.Shutdown(ctx)
	if err != nil {
		l.server.Close()
	}
	// Shutdown only closes the listener once Serve has been called
	l.Listener.Close()
	return err
}

// DrainAndCloseAll drains and closes every listener in the group
func (lg *ListenerGroup) DrainAndCloseAll(drainWait time.Duration) error {
	lg.mu.Lock()
	names := make([]string, 0, len(lg.members))
	for k := range lg.members {
		names = append(names, k)
	}
	lg.mu.Unlock()

	var wg sync.WaitGroup
	errs := make([]error, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			errs[i] = lg.DrainAndClose(name, drainWait)
		}(i, name)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
