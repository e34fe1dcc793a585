package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/payment"
	timeadapter "github.com/localhy/credit-ledger/internal/infrastructure/adapter/time"
)

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     string
	Success      bool
	Rejected     bool // 402 or 409, which the ledger is expected to answer under contention
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	RejectedRequests   int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	UserStats          map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// Scenario is one kind of request the workers pick at random
type Scenario struct {
	Name   string
	Weight int
}

type loadTest struct {
	baseURL     string
	creemSecret string
	delayMs     int
	tokens      map[string]string
	client      *http.Client

	// Confirmed idempotency tokens, reused by the replay scenario
	mu        sync.Mutex
	confirmed map[string][]string
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	userIDsStr := flag.String("u", "load-1,load-2,load-3", "Comma-separated list of user IDs to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	jwtSecret := flag.String("jwt-secret", "dev-only-jwt-secret-change-me", "Secret used to sign bearer tokens")
	issuer := flag.String("issuer", "localhy-auth", "Issuer claim of the bearer tokens")
	creemSecret := flag.String("creem-secret", "dev-creem-secret", "Creem webhook secret used to sign purchases")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var userIDs []string
	for _, id := range strings.Split(*userIDsStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		userIDs = []string{"load-1"}
	}

	auth := middleware.NewAuthenticator(*jwtSecret, *issuer, timeadapter.NewRealTimeProvider(), logger.NewNoopLogger())
	tokens := make(map[string]string, len(userIDs)+1)
	for _, id := range append(slices.Clone(userIDs), "load-operator") {
		role := ""
		if id == "load-operator" {
			role = middleware.RoleAdmin
		}
		token, err := auth.Issue(id, role, time.Hour)
		if err != nil {
			fmt.Printf("Failed to issue token for %s: %v\n", id, err)
			return
		}
		tokens[id] = token
	}

	scenarios := []Scenario{
		{"Purchase", 2},
		{"Paid action", 5},
		{"Replay", 2},
		{"Balance", 1},
	}

	lt := &loadTest{
		baseURL:     strings.TrimRight(*baseURL, "/"),
		creemSecret: *creemSecret,
		delayMs:     *delayMs,
		tokens:      tokens,
		client:      &http.Client{Timeout: 10 * time.Second},
		confirmed:   make(map[string][]string),
	}

	fmt.Printf("Load testing API across %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		UserStats:       make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			lt.worker(workerID, userIDs, scenarios, jobs, results, stats)
		}(i)
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			switch {
			case result.Success:
				stats.SuccessfulRequests++
			case result.Rejected:
				stats.RejectedRequests++
			default:
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Scenario + ": " + result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			stats.MinResponseTime = min(stats.MinResponseTime, result.ResponseTime)
			stats.MaxResponseTime = max(stats.MaxResponseTime, result.ResponseTime)
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.RejectedRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
	lt.auditUsers(userIDs)
}

func pickScenario(scenarios []Scenario) Scenario {
	total := 0
	for _, s := range scenarios {
		total += s.Weight
	}
	n := rand.IntN(total)
	for _, s := range scenarios {
		if n < s.Weight {
			return s
		}
		n -= s.Weight
	}
	return scenarios[0]
}

func (lt *loadTest) worker(id int, userIDs []string, scenarios []Scenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {
	for jobID := range jobs {
		if lt.delayMs > 0 {
			time.Sleep(time.Duration(lt.delayMs) * time.Millisecond)
		}

		userID := userIDs[rand.IntN(len(userIDs))]
		scenario := pickScenario(scenarios)

		stats.Lock.Lock()
		stats.UserStats[userID]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		var req *http.Request
		var err error
		switch scenario.Name {
		case "Purchase":
			req, err = lt.purchaseRequest(userID, fmt.Sprintf("load-%d-%d-%d", id, jobID, rand.IntN(1000000)))
		case "Paid action":
			token := fmt.Sprintf("job-%d-%d-%d", id, jobID, rand.IntN(1000000))
			req, err = lt.confirmRequest(userID, token)
		case "Replay":
			token, ok := lt.pastToken(userID)
			if !ok {
				token = fmt.Sprintf("job-%d-%d-%d", id, jobID, rand.IntN(1000000))
			}
			req, err = lt.confirmRequest(userID, token)
		default:
			req, err = lt.userRequest(http.MethodGet, "/v1/credits/balance", userID, nil)
		}
		if err != nil {
			results <- TestResult{Scenario: scenario.Name, Error: err}
			continue
		}

		results <- lt.send(scenario.Name, userID, req)
	}
}

func (lt *loadTest) send(scenario, userID string, req *http.Request) TestResult {
	startTime := time.Now()
	resp, err := lt.client.Do(req)
	result := TestResult{Scenario: scenario, ResponseTime: time.Since(startTime)}
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	result.Rejected = resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusConflict
	if !result.Success && !result.Rejected {
		result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	if result.Success && scenario == "Paid action" {
		lt.mu.Lock()
		lt.confirmed[userID] = append(lt.confirmed[userID], req.Header.Get("Idempotency-Key"))
		lt.mu.Unlock()
	}
	return result
}

func (lt *loadTest) pastToken(userID string) (string, bool) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	tokens := lt.confirmed[userID]
	if len(tokens) == 0 {
		return "", false
	}
	return tokens[rand.IntN(len(tokens))], true
}

func (lt *loadTest) purchaseRequest(userID, transactionID string) (*http.Request, error) {
	body, err := json.Marshal(map[string]any{
		"provider": "creem",
		"paymentData": map[string]any{
			"transaction_id": transactionID,
			"status":         "completed",
			"amount":         "10",
			"metadata":       map[string]string{"userId": userID},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, lt.baseURL+"/webhooks/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(payment.DefaultCreemSignatureHeader, payment.Sign(lt.creemSecret, body))
	return req, nil
}

func (lt *loadTest) confirmRequest(userID, token string) (*http.Request, error) {
	body, err := json.Marshal(map[string]any{
		"title":         "Load test referral " + token,
		"rewardCredits": 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := lt.userRequest(http.MethodPost, "/v1/actions/create_referral_job/confirm", userID, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Idempotency-Key", token)
	return req, nil
}

func (lt *loadTest) userRequest(method, path, userID string, body []byte) (*http.Request, error) {
	req, err := http.NewRequest(method, lt.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+lt.tokens[userID])
	return req, nil
}

// auditUsers asks the admin API whether every stored balance still matches its ledger
func (lt *loadTest) auditUsers(userIDs []string) {
	fmt.Println("\n----------------- LEDGER AUDIT -----------------")
	for _, userID := range userIDs {
		req, err := lt.userRequest(http.MethodGet, "/admin/credits/"+userID+"/audit", "load-operator", nil)
		if err != nil {
			fmt.Printf("%-15s: %v\n", userID, err)
			continue
		}
		resp, err := lt.client.Do(req)
		if err != nil {
			fmt.Printf("%-15s: %v\n", userID, err)
			continue
		}

		var report struct {
			Entries    int64 `json:"entries"`
			Consistent bool  `json:"consistent"`
			Stored     struct {
				CashCredits int64 `json:"cashCredits"`
				FreeCredits int64 `json:"freeCredits"`
			} `json:"stored"`
		}
		err = json.NewDecoder(resp.Body).Decode(&report)
		resp.Body.Close()
		if err != nil {
			fmt.Printf("%-15s: HTTP %d, %v\n", userID, resp.StatusCode, err)
			continue
		}

		mark := "✅"
		if !report.Consistent || report.Stored.CashCredits < 0 || report.Stored.FreeCredits < 0 {
			mark = "❌"
		}
		fmt.Printf("%s %-15s: entries=%d cash=%d free=%d consistent=%t\n", mark, userID,
			report.Entries, report.Stored.CashCredits, report.Stored.FreeCredits, report.Consistent)
	}
}

func printResults(stats *TestStats) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := slices.Clone(stats.ResponseTimes)
		slices.Sort(sortedTimes)

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Rejected Requests:   %d (%.1f%%) insufficient credits or in flight\n", stats.RejectedRequests,
		float64(stats.RejectedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (all requests / total time)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- USER DISTRIBUTION -----------------")
	for userID, count := range stats.UserStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", userID, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
	fmt.Println("================================================")
}
