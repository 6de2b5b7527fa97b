package main

// Load test for the storefront's hot paths: product listings and cart adds.
// Every virtual shopper carries its own cart-session cookie so carts do not
// collide.
//
// Run: go run loadtest/cart_vegeta.go -base http://localhost:8080 -rate 200 -duration 30s

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"github.com/google/uuid"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

type addResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func main() {
	var (
		base      = flag.String("base", "http://localhost:8080", "storefront base URL")
		productID = flag.Int64("product", 1, "product id to add")
		sizeID    = flag.Int64("size", 1, "size id to add")
		sessions  = flag.Int("sessions", 100, "number of virtual shoppers")
		rate      = flag.Int("rate", 200, "requests per second")
		duration  = flag.String("duration", "30s", "attack duration")
		mix       = flag.Float64("mix", 0.7, "fraction of requests that browse instead of adding")
		outJSON   = flag.String("out", "vegeta_results.json", "summary JSON output file")
	)
	flag.Parse()

	attackDuration, err := time.ParseDuration(*duration)
	if err != nil {
		logger.Fatal("invalid duration", "err", err)
	}

	cookies := make([]string, *sessions)
	for i := range cookies {
		cookies[i] = "cart_session=" + uuid.NewString()
	}
	rand.Seed(time.Now().UnixNano())

	body, _ := json.Marshal(map[string]int64{
		"product_id": *productID,
		"size_id":    *sizeID,
	})

	var counter uint64
	targeter := func(t *vegeta.Target) error {
		idx := atomic.AddUint64(&counter, 1) - 1
		cookie := cookies[idx%uint64(len(cookies))]

		if rand.Float64() < *mix {
			t.Method = "GET"
			t.URL = fmt.Sprintf("%s/products/load-more?offset=%d&limit=12", *base, rand.Intn(5)*12)
			t.Body = nil
		} else {
			t.Method = "POST"
			t.URL = *base + "/cart/add"
			t.Body = body
		}
		t.Header = map[string][]string{
			"Content-Type": {"application/json"},
			"Cookie":       {cookie},
		}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.Timeout(10 * time.Second))
	pacer := vegeta.Rate{Freq: *rate, Per: time.Second}

	var (
		metrics  vegeta.Metrics
		conflict uint64
		failures uint64
	)
	for res := range attacker.Attack(targeter, pacer, attackDuration, "storefront") {
		metrics.Add(res)
		if res.Code == 409 {
			conflict++
		} else if res.Code >= 400 {
			failures++
		}
	}
	metrics.Close()

	fmt.Printf("requests: %d\n", metrics.Requests)
	fmt.Printf("success ratio: %.2f%%\n", metrics.Success*100)
	fmt.Printf("p50: %s p95: %s p99: %s\n", metrics.Latencies.P50, metrics.Latencies.P95, metrics.Latencies.P99)
	fmt.Printf("out-of-stock (409): %d, other failures: %d\n", conflict, failures)

	summary := map[string]interface{}{
		"requests":     metrics.Requests,
		"success":      metrics.Success,
		"p50_ms":       metrics.Latencies.P50.Milliseconds(),
		"p95_ms":       metrics.Latencies.P95.Milliseconds(),
		"p99_ms":       metrics.Latencies.P99.Milliseconds(),
		"out_of_stock": conflict,
		"failures":     failures,
	}
	raw, _ := json.MarshalIndent(summary, "", "  ")
	if err := os.WriteFile(*outJSON, raw, 0644); err != nil {
		logger.Error("write summary failed", "err", err)
	}
}
