package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/buflog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 1500
	numWorkers     = 500
)

var levels = []int64{
	buflog.LevelDetail,
	buflog.LevelDebug,
	buflog.LevelInfo,
	buflog.LevelWarning,
}

var logger *buflog.Logger

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msgSize := rand.Intn(maxMessageSize) + 10
		msg := generateRandomMessage(msgSize)
		logger.Logf(level, "wkr=%d bst=%d seq=%d %s",
			burstID%numWorkers, burstID, i, msg)
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	logsDir := "./stress_logs"
	_ = os.RemoveAll(logsDir) // Clean previous run before starting

	var err error
	logger, err = buflog.NewBuilder().
		Name("stress").
		Directory(logsDir).
		Level("detail").
		EchoLevel("warning").
		BufferSize(256 * 1024).
		RotateSize(1024 * 1024). // Force frequent rotation
		FlushIntervalS(1).
		PrettyPrint(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetEchoWriter(nil) // Keep stdout readable during the test
	fmt.Printf("Logger initialized. Logs will be written to: %s\n", logsDir)

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Check log directory size and file rotation.")
	fmt.Println("Press Ctrl+C to stop early.")

	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts)
	}

	startTime := time.Now()
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			goto endLoop
		}
	}
endLoop:
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	fmt.Println("Shutting down logger (allowing up to 10s)...")
	if err := logger.Shutdown(10 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Printf("Check log files in '%s'.\n", logsDir)
}
