package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/oledvideo/pkg/framework"
	"github.com/robotalks/oledvideo/pkg/player"
)

func init() {
	player.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	p := player.MustNewConfig().MustNewPlayer(os.Stdout)
	if err := p.RunWith(framework.NewRunner().HandleSignals()); err != nil {
		glog.Exit(err)
	}
}
