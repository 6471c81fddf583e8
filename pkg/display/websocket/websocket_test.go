package websocket

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robotalks/oledvideo/pkg/rle"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/frames"
	conn, err := websocket.Dial(url, "", srv.URL)
	require.NoError(t, err)
	return conn
}

func receive(t *testing.T, conn *websocket.Conn) []byte {
	var msg []byte
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, websocket.Message.Receive(conn, &msg))
	return msg
}

func TestViewerReceivesFrames(t *testing.T) {
	d := New("")
	srv := httptest.NewServer(d.Handler())
	defer srv.Close()
	defer d.Close()

	var frame rle.Frame
	frame[0] = 0x11
	require.NoError(t, d.Render(&frame))

	conn := dial(t, srv)
	defer conn.Close()

	msg := receive(t, conn)
	require.Len(t, msg, rle.FrameSize)
	require.Equal(t, byte(0x11), msg[0], "latest frame is sent on connect")
	require.Equal(t, 1, d.Viewers())

	frame[0] = 0x22
	require.NoError(t, d.Render(&frame))
	require.Equal(t, byte(0x22), receive(t, conn)[0])
}

func TestSlowViewerGetsLatest(t *testing.T) {
	d := New("")
	ch := make(chan []byte, 1)
	d.viewers["slow"] = ch

	var frame rle.Frame
	for i := 1; i <= 3; i++ {
		frame[0] = byte(i)
		require.NoError(t, d.Render(&frame))
	}
	require.Equal(t, byte(3), (<-ch)[0])
}

func TestIndexPage(t *testing.T) {
	d := New("")
	srv := httptest.NewServer(d.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "/frames")

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenderWithoutViewers(t *testing.T) {
	d := New("127.0.0.1:0")
	var frame rle.Frame
	require.NoError(t, d.Render(&frame))
	require.Zero(t, d.Viewers())
	require.Equal(t, "127.0.0.1:0", d.Addr)
}
