package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	latest := flag.Bool("latest", false, "print the last stored report instead of running a new one")
	flag.Parse()

	api := strings.TrimRight(os.Getenv("API_BASE"), "/")
	if api == "" {
		api = "http://localhost:3001"
	}
	path := "/api/healthcheck"
	if *latest {
		path += "/latest"
	}

	// a full run probes every target sequentially
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(api + path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading response:", err)
		os.Exit(1)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(os.Stderr, "API returned status: %s\n%s\n", resp.Status, body)
		os.Exit(1)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		os.Stdout.Write(body)
		return
	}
	out.WriteByte('\n')
	out.WriteTo(os.Stdout)
}
