// Package main is a load-testing utility that posts randomized transactions
// to the scoring API and prints the assessments it gets back.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"fraudwatch/internal/config"
	"fraudwatch/internal/models"
)

var (
	transactionTypes = []string{
		models.TransactionTypeTransfer,
		models.TransactionTypePayment,
		models.TransactionTypeInvestment,
		models.TransactionTypeLoan,
		models.TransactionTypeRefund,
	}
	currencies = []string{
		models.CurrencyUSD, models.CurrencyEUR, models.CurrencyGBP,
		models.CurrencyJPY, models.CurrencyCAD,
	}
	locations = []string{"US", "UK", "EU", "JP", "CA", "AU", "SG"}
)

type generator struct {
	apiURL string
	client *http.Client
	rng    *rand.Rand
	sent   int
}

func (g *generator) newTransaction() models.Transaction {
	txType := transactionTypes[g.rng.Intn(len(transactionTypes))]

	amount := 100 + g.rng.Float64()*999900
	switch txType {
	case models.TransactionTypeInvestment:
		amount = 10000 + g.rng.Float64()*990000
	case models.TransactionTypeLoan:
		amount = 50000 + g.rng.Float64()*450000
	}

	return models.Transaction{
		TransactionID:        "live_" + uuid.NewString(),
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		Amount:               float64(int(amount*100)) / 100,
		SenderID:             fmt.Sprintf("user_%04d", 1000+g.rng.Intn(9000)),
		ReceiverID:           fmt.Sprintf("user_%04d", 1000+g.rng.Intn(9000)),
		TransactionType:      txType,
		PaymentCurrency:      currencies[g.rng.Intn(len(currencies))],
		ReceivedCurrency:     currencies[g.rng.Intn(len(currencies))],
		SenderBankLocation:   locations[g.rng.Intn(len(locations))],
		ReceiverBankLocation: locations[g.rng.Intn(len(locations))],
		Source:               "generator",
	}
}

func (g *generator) send(tx models.Transaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	resp, err := g.client.Post(g.apiURL+"/api/process_transaction", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var assessment models.Assessment
	if err := json.NewDecoder(resp.Body).Decode(&assessment); err != nil {
		return err
	}

	g.sent++
	log.Printf("transaction %d: %s risk_score=%.3f level=%s amount=%.2f",
		g.sent, tx.TransactionID, assessment.RiskScore, assessment.RiskLevel, tx.Amount)
	return nil
}

func main() {
	config.LoadEnv()

	g := &generator{
		apiURL: config.GetEnv("API_URL", "http://localhost:5000"),
		client: &http.Client{Timeout: 10 * time.Second},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	minDelay := config.GetDurationEnv("GEN_MIN_DELAY", 2*time.Second)
	maxDelay := config.GetDurationEnv("GEN_MAX_DELAY", 5*time.Second)
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	// Check the API is up before generating load
	resp, err := g.client.Get(g.apiURL + "/api/health")
	if err != nil {
		log.Fatalf("API server is not reachable at %s: %v", g.apiURL, err)
	}
	resp.Body.Close()

	log.Printf("generating transactions against %s", g.apiURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			log.Printf("stopped after %d transactions", g.sent)
			return
		default:
		}

		if err := g.send(g.newTransaction()); err != nil {
			log.Printf("send failed: %v", err)
			time.Sleep(maxDelay)
			continue
		}

		delay := minDelay + time.Duration(g.rng.Int63n(int64(maxDelay-minDelay)+1))
		time.Sleep(delay)
	}
}
