// Command keepalive periodically pings a deployed instance so free-tier
// hosts (Render, Railway) do not idle the process between requests.
package main

import (
	"log"
	"net/http"
	"os"
	"time"
)

const defaultInterval = 10 * time.Minute

func main() {
	baseURL := os.Getenv("BILLEX_KEEPALIVE_URL")
	if baseURL == "" {
		log.Fatal("BILLEX_KEEPALIVE_URL is required")
	}

	interval := defaultInterval
	if raw := os.Getenv("BILLEX_KEEPALIVE_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid BILLEX_KEEPALIVE_INTERVAL: %v", err)
		}
		interval = parsed
	}

	client := &http.Client{Timeout: 10 * time.Second}
	log.Printf("keepalive: pinging %s every %s", baseURL, interval)

	for {
		ping(client, baseURL+"/healthz")
		time.Sleep(interval)
	}
}

func ping(client *http.Client, url string) {
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		log.Printf("keepalive: ping failed: %v", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		log.Printf("keepalive: ok (latency %s)", time.Since(start).Round(time.Millisecond))
	} else {
		log.Printf("keepalive: unexpected status %d", resp.StatusCode)
	}
}
