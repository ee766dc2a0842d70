//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL = "http://localhost:8080"
	baseLat = -6.2088
	baseLng = 106.8456
)

type Stats struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalLatency    int64
	MinLatency      int64
	MaxLatency      int64
}

func main() {
	rand.Seed(time.Now().UnixNano())

	fmt.Println("Antar Load Test")
	fmt.Println("===============")

	fmt.Println("\n1. Creating test data...")
	passengerIDs, driverIDs := createTestData()

	if len(passengerIDs) == 0 || len(driverIDs) == 0 {
		log.Fatal("Failed to create test data")
	}

	fmt.Printf("Created %d passengers and %d drivers\n", len(passengerIDs), len(driverIDs))

	fmt.Println("\n2. Testing Location Updates (1000 updates, 50 concurrent)...")
	stats := testLocationUpdates(driverIDs, 1000, 50)
	printStats("Location Updates", stats)

	fmt.Println("\n3. Testing Order Creation (100 orders, 10 concurrent)...")
	stats = testOrderCreation(passengerIDs, 100, 10)
	printStats("Order Creation", stats)

	fmt.Println("\n4. Testing Nearby Driver Search (500 searches, 25 concurrent)...")
	stats = testNearbySearch(500, 25)
	printStats("Nearby Search", stats)

	fmt.Println("\nLoad test completed!")
}

func createTestData() ([]string, []string) {
	passengerIDs := make([]string, 0)
	driverIDs := make([]string, 0)

	// Create passengers
	for i := 0; i < 20; i++ {
		user := map[string]string{
			"email":     fmt.Sprintf("loadtest-passenger-%d-%d@example.com", i, time.Now().UnixNano()),
			"password":  "password123",
			"full_name": fmt.Sprintf("LoadTest Passenger %d", i),
			"phone":     fmt.Sprintf("0812%08d", rand.Intn(100000000)),
			"role":      "passenger",
		}
		if id := postForID("/v1/users", user); id != "" {
			passengerIDs = append(passengerIDs, id)
		}
	}

	// Create drivers with profiles, subscriptions, and locations
	vehicleTypes := []string{"motorcycle", "car"}
	for i := 0; i < 50; i++ {
		user := map[string]string{
			"email":     fmt.Sprintf("loadtest-driver-%d-%d@example.com", i, time.Now().UnixNano()),
			"password":  "password123",
			"full_name": fmt.Sprintf("LoadTest Driver %d", i),
			"phone":     fmt.Sprintf("0813%08d", rand.Intn(100000000)),
			"role":      "driver",
		}
		id := postForID("/v1/users", user)
		if id == "" {
			continue
		}
		driverIDs = append(driverIDs, id)

		profile := map[string]string{
			"user_id":        id,
			"license_number": fmt.Sprintf("SIM-%010d", rand.Intn(1000000000)),
			"vehicle_type":   vehicleTypes[rand.Intn(len(vehicleTypes))],
			"vehicle_plate":  fmt.Sprintf("B %04d LT", rand.Intn(10000)),
		}
		postJSON("/v1/drivers", profile)

		sub := map[string]interface{}{
			"driver_id":         id,
			"subscription_type": "monthly",
			"amount":            100000,
		}
		postJSON("/v1/subscriptions", sub)

		location := map[string]interface{}{
			"latitude":     baseLat + (rand.Float64()-0.5)*0.1,
			"longitude":    baseLng + (rand.Float64()-0.5)*0.1,
			"is_available": true,
		}
		postJSON("/v1/drivers/"+id+"/location", location)
	}

	return passengerIDs, driverIDs
}

func postForID(path string, payload interface{}) string {
	body, _ := json.Marshal(payload)
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != 201 {
		io.Copy(io.Discard, resp.Body)
		return ""
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if id, ok := result["id"].(string); ok {
		return id
	}
	return ""
}

func postJSON(path string, payload interface{}) {
	body, _ := json.Marshal(payload)
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func testLocationUpdates(driverIDs []string, numRequests, concurrency int) *Stats {
	stats := &Stats{MinLatency: int64(^uint64(0) >> 1)}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(driverID string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			payload := map[string]interface{}{
				"latitude":     baseLat + (rand.Float64()-0.5)*0.1,
				"longitude":    baseLng + (rand.Float64()-0.5)*0.1,
				"is_available": true,
			}
			body, _ := json.Marshal(payload)

			start := time.Now()
			resp, err := http.Post(baseURL+"/v1/drivers/"+driverID+"/location", "application/json", bytes.NewBuffer(body))
			latency := time.Since(start).Milliseconds()

			recordResult(stats, resp, err, latency, 200)
		}(driverIDs[rand.Intn(len(driverIDs))])
	}

	wg.Wait()
	return stats
}

func testOrderCreation(passengerIDs []string, numRequests, concurrency int) *Stats {
	stats := &Stats{MinLatency: int64(^uint64(0) >> 1)}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(idx int, passengerID string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			order := map[string]interface{}{
				"passenger_id":        passengerID,
				"pickup_lat":          baseLat + (rand.Float64()-0.5)*0.1,
				"pickup_lng":          baseLng + (rand.Float64()-0.5)*0.1,
				"pickup_address":      fmt.Sprintf("Jl. Sudirman No. %d", idx+1),
				"destination_lat":     baseLat + (rand.Float64()-0.5)*0.2,
				"destination_lng":     baseLng + (rand.Float64()-0.5)*0.2,
				"destination_address": fmt.Sprintf("Jl. Gatot Subroto No. %d", idx+1),
				"estimated_fare":      float64(10000 + rand.Intn(40)*1000),
			}
			body, _ := json.Marshal(order)

			req, _ := http.NewRequest("POST", baseURL+"/v1/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Idempotency-Key", fmt.Sprintf("load-test-order-%d-%d", idx, time.Now().UnixNano()))

			start := time.Now()
			resp, err := http.DefaultClient.Do(req)
			latency := time.Since(start).Milliseconds()

			recordResult(stats, resp, err, latency, 201)
		}(i, passengerIDs[rand.Intn(len(passengerIDs))])
	}

	wg.Wait()
	return stats
}

func testNearbySearch(numRequests, concurrency int) *Stats {
	stats := &Stats{MinLatency: int64(^uint64(0) >> 1)}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()

			lat := baseLat + (rand.Float64()-0.5)*0.1
			lng := baseLng + (rand.Float64()-0.5)*0.1
			url := fmt.Sprintf("%s/v1/drivers/nearby?lat=%f&lng=%f&radius_km=10", baseURL, lat, lng)

			start := time.Now()
			resp, err := http.Get(url)
			latency := time.Since(start).Milliseconds()

			recordResult(stats, resp, err, latency, 200)
		}()
	}

	wg.Wait()
	return stats
}

func recordResult(stats *Stats, resp *http.Response, err error, latency int64, wantStatus int) {
	atomic.AddInt64(&stats.TotalRequests, 1)
	atomic.AddInt64(&stats.TotalLatency, latency)

	if resp != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	if err != nil || resp.StatusCode != wantStatus {
		atomic.AddInt64(&stats.FailedRequests, 1)
		return
	}

	atomic.AddInt64(&stats.SuccessRequests, 1)

	for {
		old := atomic.LoadInt64(&stats.MinLatency)
		if latency >= old || atomic.CompareAndSwapInt64(&stats.MinLatency, old, latency) {
			break
		}
	}
	for {
		old := atomic.LoadInt64(&stats.MaxLatency)
		if latency <= old || atomic.CompareAndSwapInt64(&stats.MaxLatency, old, latency) {
			break
		}
	}
}

func printStats(name string, stats *Stats) {
	fmt.Printf("\n%s Results:\n", name)
	fmt.Printf("  Total:   %d\n", stats.TotalRequests)
	fmt.Printf("  Success: %d\n", stats.SuccessRequests)
	fmt.Printf("  Failed:  %d\n", stats.FailedRequests)
	if stats.TotalRequests > 0 {
		fmt.Printf("  Avg latency: %d ms\n", stats.TotalLatency/stats.TotalRequests)
	}
	if stats.SuccessRequests > 0 {
		fmt.Printf("  Min latency: %d ms\n", stats.MinLatency)
		fmt.Printf("  Max latency: %d ms\n", stats.MaxLatency)
	}
}
