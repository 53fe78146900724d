package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/lladdrd/internal/ctl"
	"github.com/dmdmdm-nz/lladdrd/internal/netmon"
	"github.com/dmdmdm-nz/lladdrd/internal/nic"
	"github.com/dmdmdm-nz/lladdrd/internal/sys"
)

// EventSource hands out subscriptions to the membership event stream.
type EventSource interface {
	Subscribe() (<-chan netmon.Event, func())
}

// LinkControl reads and changes an interface's link-level address.
type LinkControl interface {
	GetLLAddr(name nic.IfName) (nic.LLAddr, error)
	SetLLAddr(name nic.IfName, addr nic.LLAddr) error
}

// SocketControl issues each ioctl over a fresh control socket.
type SocketControl struct {
	Sys sys.Syscalls
}

func (c SocketControl) GetLLAddr(name nic.IfName) (nic.LLAddr, error) {
	return ctl.GetLLAddr(c.Sys, name)
}

func (c SocketControl) SetLLAddr(name nic.IfName, addr nic.LLAddr) error {
	return ctl.SetLLAddr(c.Sys, name, addr)
}

// Service represents the HTTP server for the API
type Service struct {
	address string
	port    int

	events EventSource
	links  LinkControl

	mu     sync.Mutex
	closed bool
}

func NewService(host string, port int, events EventSource, links LinkControl) *Service {
	return &Service{
		address: host,
		port:    port,
		events:  events,
		links:   links,
	}
}

// Start initializes and starts the HTTP server
func (s *Service) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.address, s.port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Failed to shut down the API server cleanly")
		}
	}()

	log.Infof("Starting lladdrd API service at %s", addr)
	defer log.Info("Stopping lladdrd API service")

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Handler builds the route table. Split out from Start so tests can drive
// the handlers through httptest.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("GET /interfaces/{name}/lladdr", s.handleGetLLAddr)
	mux.HandleFunc("PUT /interfaces/{name}/lladdr", s.handleSetLLAddr)
	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		StreamEvents(s.events, w, r)
	})
	return mux
}

func (s *Service) handleGetLLAddr(w http.ResponseWriter, r *http.Request) {
	name, err := nic.ParseIfName(r.PathValue("name"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid interface name: %v", err), http.StatusBadRequest)
		return
	}

	addr, err := s.links.GetLLAddr(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	if err := enc.Encode(LLAddrInfo{InterfaceName: name.String(), Lladdr: addr.String()}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode address info: %v", err), http.StatusInternalServerError)
	}
}

func (s *Service) handleSetLLAddr(w http.ResponseWriter, r *http.Request) {
	name, err := nic.ParseIfName(r.PathValue("name"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid interface name: %v", err), http.StatusBadRequest)
		return
	}

	var req SetLLAddrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	addr, err := nic.ParseLLAddr(req.Lladdr)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid link-level address: %v", err), http.StatusBadRequest)
		return
	}

	if err := s.links.SetLLAddr(name, addr); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.WithField("interface", name.String()).WithField("lladdr", addr.String()).
		Info("Changed link-level address")

	w.Header().Add("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	if err := enc.Encode(LLAddrInfo{InterfaceName: name.String(), Lladdr: addr.String()}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode address info: %v", err), http.StatusInternalServerError)
	}
}
