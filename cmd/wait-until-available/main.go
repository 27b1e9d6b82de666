package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080 -timeout=2m
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the contacts service")
	timeout := flag.Duration("timeout", 0, "give up after this long; 0 waits forever")
	flag.Parse()

	target := strings.TrimSuffix(*baseURL, "/") + "/contacts"
	client := http.Client{Timeout: 5 * time.Second}
	totalWaitTime := 0
	for {
		res, err := client.Get(target)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				fmt.Println(res.Status)
				return
			}
			fmt.Println(res.Status)
		} else {
			fmt.Println(err)
		}
		if *timeout > 0 && time.Duration(totalWaitTime)*time.Second >= *timeout {
			fmt.Printf("Service not available after %d seconds\n", totalWaitTime)
			os.Exit(1)
		}
		totalWaitTime += 5
		fmt.Printf("Waiting %d seconds\n", totalWaitTime)
		time.Sleep(5 * time.Second)
	}
}
