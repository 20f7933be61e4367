// Package monitor exposes a simulation's live state over HTTP, for
// runs long enough that watching simulation.txt grow is impractical.
// It follows the shape of akita's own monitoring server: a
// gorilla/mux router, goseth for reflecting state to JSON, and
// gopsutil for process resource figures, plus net/http/pprof wired in
// for profiling.
package monitor

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/spimdf/timing/pipeline"
)

// Server is a live introspection server over a running CPU.
type Server struct {
	cpu *pipeline.CPU

	listener net.Listener
	addr     string
}

// NewServer creates a Server over cpu. addr is the "host:port" to
// listen on; an empty host listens on all interfaces and a port of 0
// picks a free one.
func NewServer(cpu *pipeline.CPU, addr string) *Server {
	return &Server{cpu: cpu, addr: addr}
}

// Start begins listening and serving in a background goroutine. It
// returns the address actually bound, so callers that asked for a
// random port can report it.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("monitor: listen: %w", err)
	}
	s.listener = ln

	r := mux.NewRouter()
	r.HandleFunc("/state", s.state)
	r.HandleFunc("/state/queues", s.queues)
	r.HandleFunc("/health", s.health)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	go func() {
		_ = http.Serve(ln, r)
	}()

	return ln.Addr().String(), nil
}

// Addr returns the URL of the /state endpoint, for --open to point a
// browser at.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String() + "/state"
}

// Close stops the listener.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

type stateSnapshot struct {
	Cycle    uint64 `json:"cycle"`
	PC       uint32 `json:"pc"`
	Broken   bool   `json:"broken"`
	Registers [32]int32 `json:"registers"`
}

func (s *Server) state(w http.ResponseWriter, _ *http.Request) {
	snap := stateSnapshot{
		Cycle:     s.cpu.Cycle(),
		PC:        s.cpu.Fetch.PC(),
		Broken:    s.cpu.Fetch.Broken(),
		Registers: s.cpu.Regs.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// queuesSnapshot lets /state/queues render the full nested queue
// contents through goseth's generic struct serializer, rather than the
// flat register/PC summary /state returns.
type queuesSnapshot struct {
	Queues *pipeline.Queues
}

func (s *Server) queues(w http.ResponseWriter, _ *http.Request) {
	body, err := Fields(s.cpu)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rsp := struct {
		CPUPercent float64 `json:"cpu_percent"`
		MemorySize uint64  `json:"memory_size"`
	}{CPUPercent: cpuPercent, MemorySize: memInfo.RSS}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Fields serializes cpu's full queue state via goseth, for a debug
// endpoint that wants the nested structure rather than the flat /state
// summary.
func Fields(cpu *pipeline.CPU) ([]byte, error) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(&queuesSnapshot{Queues: cpu.Queues})
	serializer.SetMaxDepth(4)

	var buf []byte
	w := byteSliceWriter{&buf}
	if err := serializer.Serialize(w); err != nil {
		return nil, err
	}
	return buf, nil
}

type byteSliceWriter struct {
	buf *[]byte
}

func (w byteSliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
