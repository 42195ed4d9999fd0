package main

import (
	"github.com/lixenwraith/buflog"
	"github.com/lixenwraith/buflog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := buflog.NewBuilder().
		Name("gnet").
		Directory("/var/log/gnet").
		Level("debug").
		FlushIntervalS(5).
		PrettyPrint(true).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(logger)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
