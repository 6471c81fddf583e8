// Package player assembles the stream, the pump and the displays.
package player

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/oledvideo/pkg/asset"
	"github.com/robotalks/oledvideo/pkg/display"
	"github.com/robotalks/oledvideo/pkg/display/mqtt"
	"github.com/robotalks/oledvideo/pkg/display/term"
	"github.com/robotalks/oledvideo/pkg/display/websocket"
	"github.com/robotalks/oledvideo/pkg/display/window"
	"github.com/robotalks/oledvideo/pkg/framework"
	"github.com/robotalks/oledvideo/pkg/pump"
)

// Player plays a stream on the configured displays.
type Player struct {
	Config *Config
	Pump   *pump.Pump
	// Window is set when the window display is enabled and must be
	// run on the main goroutine.
	Window *window.Window
	// Runnables are the background parts of displays.
	Runnables []framework.Runnable
}

// NewPlayer loads the asset and creates displays from config.
// The terminal display writes to out.
func (c *Config) NewPlayer(out io.Writer) (*Player, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	stream, err := asset.Load(c.Asset)
	if err != nil {
		return nil, fmt.Errorf("load asset error: %v", err)
	}

	p := &Player{Config: c}
	var sinks display.Multi
	for _, kind := range c.Displays {
		switch kind {
		case DisplayTerm:
			sinks = append(sinks, term.New(out, c.TermColors))
		case DisplayWindow:
			p.Window = window.New("oledvideo", c.WindowScale)
			sinks = append(sinks, p.Window)
		case DisplayMQTT:
			d, err := mqtt.NewDisplay(c.MQTTBrokerURL, c.MQTTTopic, c.FPS)
			if err != nil {
				return nil, fmt.Errorf("create MQTT display error: %v", err)
			}
			sinks = append(sinks, d)
			p.Runnables = append(p.Runnables, d)
		case DisplayWebSocket:
			d := websocket.New(c.WebSocketAddr)
			sinks = append(sinks, d)
			p.Runnables = append(p.Runnables, d)
		case DisplayNone:
			sinks = append(sinks, display.Discard)
		}
	}

	var sink pump.Display = sinks
	if len(sinks) == 1 {
		sink = sinks[0]
	}
	p.Pump = pump.New(stream, sink, pump.NewSystemTimer(), c.FPS)
	glog.V(1).Infof("player: %d bytes stream, displays %v", len(stream), c.Displays)
	return p, nil
}

// MustNewPlayer creates a Player and fails on error.
func (c *Config) MustNewPlayer(out io.Writer) *Player {
	p, err := c.NewPlayer(out)
	if err != nil {
		glog.Exit(err)
	}
	return p
}

// RunWith plays until the runner is stopped, the window is closed or any
// part fails. If a window is enabled, RunWith must be called on the main
// goroutine.
func (p *Player) RunWith(runner *framework.Runner) error {
	runner.Go(p.Pump)
	runner.Go(p.Runnables...)
	if p.Window != nil {
		err := p.Window.RunMain(runner.Context)
		runner.Stop()
		if err != nil && err != context.Canceled {
			glog.Errorf("window error: %v", err)
		}
	}
	return runner.Wait()
}
