package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const appPort = 8081

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	redirect := flag.Bool("redirect", false, "Send prompts that trigger the sample routing policy")
	chaos := flag.Bool("chaos", false, "Simulate random client disconnections")
	flag.Parse()

	fmt.Println("Building application...")
	buildCmd := exec.Command("go", "build", "-o", "bin/server", "./cmd/server")
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	configFile := "bench_config.yaml"
	if err := os.WriteFile(configFile, []byte(benchConfig), 0644); err != nil {
		log.Fatalf("Failed to write config: %v", err)
	}
	defer os.Remove(configFile)

	fmt.Println("Seeding sample policies...")
	seedCmd := exec.Command("go", "run", "./cmd/seed")
	seedCmd.Env = append(os.Environ(), "CONFIG_FILE="+configFile)
	if out, err := seedCmd.CombinedOutput(); err != nil {
		log.Fatalf("Failed to seed: %v\n%s", err, out)
	}

	fmt.Println("Starting application...")
	cmd := exec.Command("./bin/server")
	cmd.Env = append(os.Environ(), "CONFIG_FILE="+configFile)

	logFile, _ := os.Create("bench_server.log")
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		_ = os.Remove("bench.db")
	}()

	waitForApp(fmt.Sprintf("http://localhost:%d/health", appPort))

	prompt := "Tell me about the weather"
	if *redirect {
		prompt = "Please process my refund"
	}
	body := fmt.Sprintf(`{"provider": "openai", "model": "gpt-4", "prompt": %q}`, prompt)
	url := fmt.Sprintf("http://localhost:%d/v1/chat/completions", appPort)

	done := make(chan struct{})
	if *chaos {
		concurrency := min(max(*rate/10, 5), 50)
		go startChaosMonkey(url, body, concurrency, done)
	}

	fmt.Printf("Running benchmark: %s duration, %d req/s, redirect=%v\n", *duration, *rate, *redirect)

	targeter := func(t *vegeta.Target) error {
		t.Method = http.MethodPost
		t.URL = url
		t.Body = []byte(body)
		t.Header = http.Header{
			"Content-Type": []string{"application/json"},
			"X-Request-ID": []string{"bench-" + strconv.FormatInt(time.Now().UnixNano(), 10)},
		}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Benchmark") {
		metrics.Add(res)
	}
	metrics.Close()
	close(done)

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")
		seen := make(map[string]bool)
		for _, msg := range metrics.Errors {
			if len(seen) == 5 {
				break
			}
			if !seen[msg] {
				fmt.Println(msg)
				seen[msg] = true
			}
		}
	}
}

// startChaosMonkey fires requests that hang up after 1-200ms.
func startChaosMonkey(url, body string, concurrency int, done chan struct{}) {
	fmt.Printf("Starting Chaos Monkey with %d concurrent disrupters\n", concurrency)
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			client := &http.Client{}

			for {
				select {
				case <-done:
					return
				default:
				}

				timeout := time.Duration(rand.Intn(200)+1) * time.Millisecond
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
				req.Header.Set("Content-Type", "application/json")

				if resp, err := client.Do(req); err == nil {
					_ = resp.Body.Close()
				}
				cancel()

				time.Sleep(time.Duration(rand.Intn(50)) * time.Millisecond)
			}
		}()
	}
	wg.Wait()
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}

var benchConfig = fmt.Sprintf(`
server:
  port: "%d"
  env: production
log:
  level: error
  format: json
database:
  dsn: "file:bench.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000"
seed:
  models:
    - openai/gpt-4
    - anthropic/claude-v1
  policies:
    - source_model: gpt-4
      pattern: "(?i)refund"
      redirect_model: claude-v1
`, appPort)
