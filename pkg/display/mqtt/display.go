// Package mqtt publishes decoded frames to an MQTT broker.
//
// Every frame is published as the raw 1024 byte bitmap to
// <prefix><topic>/frame. A retained JSON document describing the
// geometry is kept on <prefix><topic>/meta while the player is online.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/robotalks/oledvideo/pkg/rle"
)

// ErrNotConnected indicates the frame is not published because the
// client is offline.
var ErrNotConnected = errors.New("mqtt not connected")

// Meta describes the published frames.
type Meta struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	FPS    int    `json:"fps,omitempty"`
	Format string `json:"format"`
}

// FormatMono1 is the bitmap format of published frames.
const FormatMono1 = "mono1-msb"

// Display implements pump.Display.
type Display struct {
	Queue *Queue
	Topic string

	metaJSON []byte
}

// ClientID returns a stable client id derived from the machine id.
func ClientID() string {
	id, err := machineid.ProtectedID("oledvideo")
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return uuid.New().String()
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// NewDisplay creates a Display publishing under topic.
// An empty topic defaults to oledvideo/<client id>.
func NewDisplay(brokerURL, topic string, fps int) (*Display, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if opts.ClientID == "" {
		opts.SetClientID("oledvideo:" + ClientID())
	}
	if topic == "" {
		topic = "oledvideo/" + strings.TrimPrefix(opts.ClientID, "oledvideo:")
	}
	opts.SetBinaryWill(topicPrefix+topic+"/meta", nil, 1, true)
	d := &Display{
		Queue: NewQueue(opts, topicPrefix),
		Topic: topic,
	}
	d.setMeta(fps)
	d.Queue.OnConnect = func(*Queue) { d.onConnected() }
	return d, nil
}

func (d *Display) setMeta(fps int) {
	meta, err := json.Marshal(&Meta{
		Width:  rle.Width,
		Height: rle.Height,
		FPS:    fps,
		Format: FormatMono1,
	})
	if err != nil {
		panic(err)
	}
	d.metaJSON = meta
}

// Name implements framework.Named.
func (d *Display) Name() string {
	return "mqtt"
}

// FrameTopic is the topic frames are published to, without prefix.
func (d *Display) FrameTopic() string {
	return d.Topic + "/frame"
}

// MetaTopic is the topic of retained meta, without prefix.
func (d *Display) MetaTopic() string {
	return d.Topic + "/meta"
}

// Render implements pump.Display.
func (d *Display) Render(frame *rle.Frame) error {
	if !d.Queue.Client.IsConnected() {
		return ErrNotConnected
	}
	payload := make([]byte, rle.FrameSize)
	copy(payload, frame[:])
	d.Queue.Pub(d.FrameTopic(), payload)
	return nil
}

// Run implements Runnable.
// It fails if the first connection to the broker can't be established.
func (d *Display) Run(ctx context.Context) error {
	token := d.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect MQTT broker error: %v", err)
	}
	<-ctx.Done()
	d.Queue.PubWith(d.MetaTopic(), nil, 1, true).WaitTimeout(time.Second)
	d.Queue.Close()
	return nil
}

func (d *Display) onConnected() {
	d.Queue.PubWith(d.MetaTopic(), d.metaJSON, 1, true)
}
