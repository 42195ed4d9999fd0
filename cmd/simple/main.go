package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/buflog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[buflog]
  name = "simple"
  directory = "./simple_logs"
  level = "debug"
  echo_level = "warning"
  buffer_size = 65536
  rotate_size = 1048576
  flush_interval_s = 1
  pretty_print = true
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// Create dummy config file
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		// Continue with defaults
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	cfg, err := buflog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := buflog.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	buflog.Debugf("This is a debug message, user_id=%d", 123)
	buflog.Infof("Application starting...")
	buflog.Warningf("Potential issue detected, threshold=%.2f", 0.95)

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			buflog.Infof("Goroutine started, id=%d", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			buflog.Infof("Goroutine finished, id=%d", id)
		}(i)
	}

	wg.Wait()
	fmt.Println("Goroutines finished.")

	fmt.Println("Shutting down logger...")
	if err := buflog.Shutdown(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Println("Check log files in './simple_logs'.")
}
