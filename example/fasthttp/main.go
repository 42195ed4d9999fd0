package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/buflog"
	"github.com/lixenwraith/buflog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger, err := buflog.NewBuilder().
		Name("fasthttp").
		Directory("/var/log/fasthttp").
		Level("info").
		FlushIntervalS(5).
		PrettyPrint(true).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(buflog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection cannot be served") {
		return buflog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return buflog.LevelWarning
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
