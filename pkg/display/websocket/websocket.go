// Package websocket serves decoded frames to browsers.
//
// Viewers connect to /frames and receive every rendered frame as a binary
// message holding the raw bitmap. A viewer too slow to keep up only gets
// the most recent frame. The page at / draws the frames on a canvas.
package websocket

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/robotalks/oledvideo/pkg/display"
	"github.com/robotalks/oledvideo/pkg/framework"
	"github.com/robotalks/oledvideo/pkg/rle"
)

// DefaultAddr is the default listening address.
const DefaultAddr = "localhost:8080"

// Display implements pump.Display and serves viewers.
type Display struct {
	Addr string

	latest  display.Latest
	lock    sync.Mutex
	viewers map[string]chan []byte
	done    chan struct{}
	stop    sync.Once
}

// New creates a Display listening on addr when run.
func New(addr string) *Display {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Display{
		Addr:    addr,
		viewers: make(map[string]chan []byte),
		done:    make(chan struct{}),
	}
}

// Name implements framework.Named.
func (d *Display) Name() string {
	return "websocket"
}

// Viewers returns the number of connected viewers.
func (d *Display) Viewers() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.viewers)
}

// Render implements pump.Display.
func (d *Display) Render(frame *rle.Frame) error {
	d.latest.Render(frame)
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.viewers) == 0 {
		return nil
	}
	msg := make([]byte, rle.FrameSize)
	copy(msg, frame[:])
	for _, ch := range d.viewers {
		select {
		case ch <- msg:
			continue
		default:
		}
		// replace the frame the viewer hasn't picked up yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// Handler returns the HTTP handler for the page and the frame stream.
func (d *Display) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/frames", websocket.Handler(d.serveViewer))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	})
	return mux
}

func (d *Display) serveViewer(conn *websocket.Conn) {
	id := uuid.New().String()
	ch := make(chan []byte, 1)
	d.lock.Lock()
	d.viewers[id] = ch
	d.lock.Unlock()
	glog.V(1).Infof("viewer %s connected from %s", id, conn.Request().RemoteAddr)
	defer func() {
		d.lock.Lock()
		delete(d.viewers, id)
		d.lock.Unlock()
		conn.Close()
		glog.V(1).Infof("viewer %s disconnected", id)
	}()

	var frame rle.Frame
	if d.latest.Snapshot(&frame) > 0 {
		if err := websocket.Message.Send(conn, frame[:]); err != nil {
			return
		}
	}
	for {
		select {
		case <-d.done:
			return
		case msg := <-ch:
			if err := websocket.Message.Send(conn, msg); err != nil {
				glog.V(1).Infof("viewer %s: %v", id, err)
				return
			}
		}
	}
}

// Close disconnects all viewers.
func (d *Display) Close() error {
	d.stop.Do(func() { close(d.done) })
	return nil
}

// Run implements Runnable.
func (d *Display) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", d.Addr)
	if err != nil {
		return err
	}
	glog.Infof("viewer page at http://%s/", ln.Addr())
	srv := &http.Server{Handler: d.Handler()}
	return framework.RunUntilDone(ctx, func() {
		d.Close()
		srv.Close()
	}, func() error {
		return srv.Serve(ln)
	})
}
