package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/carbonx/carbonx-api/internal/auth"
	"github.com/carbonx/carbonx-api/internal/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	numTrades     = 25
	serverAddress = "http://localhost:8080"
)

// init configures the logger for the simulation with pretty printing and timestamp
func init() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// simulationClient handles HTTP communication with the trading API
type simulationClient struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// newSimulationClient authenticates against the API with the test
// credentials and returns a ready-to-use client
func newSimulationClient() (*simulationClient, error) {
	sc := &simulationClient{
		baseURL: serverAddress,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	if err := sc.authenticate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *simulationClient) authenticate() error {
	body, _ := json.Marshal(auth.Credentials{
		APIKey:    auth.TestAPIKey,
		APISecret: auth.TestAPISecret,
	})

	resp, err := sc.client.Post(sc.baseURL+"/api/v1/auth/token", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth request returned status %d", resp.StatusCode)
	}

	var token auth.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	sc.authToken = token.Token
	return nil
}

func (sc *simulationClient) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, sc.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sc.authToken)

	resp, err := sc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned status %d: %s", path, resp.StatusCode, payload)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// executeTrade posts a trade and returns the result. A rejected trade (for
// example selling more than the position) is reported via the ok flag, not
// as an error: rejections are an expected part of the random walk.
func (sc *simulationClient) executeTrade(projectID, side string, quantity int64) (*types.TradeResult, bool, error) {
	body, _ := json.Marshal(types.TradeRequest{
		ProjectID: projectID,
		Type:      side,
		Quantity:  quantity,
	})

	req, err := http.NewRequest(http.MethodPost, sc.baseURL+"/api/v1/trade", bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+sc.authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := sc.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("trade returned status %d: %s", resp.StatusCode, payload)
	}

	var result types.TradeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

// main runs a random buy/sell sequence through the HTTP API and prints the
// resulting portfolio state
func main() {
	sc, err := newSimulationClient()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create simulation client")
	}
	log.Info().Msg("authenticated against API")

	var projects []types.Project
	if err := sc.get("/api/v1/projects", &projects); err != nil {
		log.Fatal().Err(err).Msg("failed to fetch projects")
	}
	if len(projects) == 0 {
		log.Fatal().Msg("no projects in catalog, run the seeder first")
	}
	log.Info().Int("projects", len(projects)).Msg("fetched catalog")

	executed, rejected := 0, 0
	for i := 0; i < numTrades; i++ {
		project := projects[rand.Intn(len(projects))]
		side := types.SideBuy
		if rand.Intn(2) == 0 {
			side = types.SideSell
		}
		quantity := int64(rand.Intn(50) + 1)

		result, ok, err := sc.executeTrade(project.ProjectID, side, quantity)
		if err != nil {
			log.Fatal().Err(err).Msg("trade request failed")
		}
		if !ok {
			rejected++
			log.Warn().
				Str("project_id", project.ProjectID).
				Str("side", side).
				Int64("quantity", quantity).
				Msg("trade rejected")
			continue
		}

		executed++
		log.Info().
			Str("order_id", result.Order.OrderID).
			Str("side", result.Order.Side).
			Int64("quantity", result.Order.Quantity).
			Float64("total", result.Order.Total).
			Float64("portfolio_value", result.Portfolio.TotalValue).
			Msg("trade executed")
	}

	var pf types.Portfolio
	if err := sc.get("/api/v1/portfolio", &pf); err != nil {
		log.Fatal().Err(err).Msg("failed to fetch portfolio")
	}

	var orders []types.Order
	if err := sc.get("/api/v1/orders", &orders); err != nil {
		log.Fatal().Err(err).Msg("failed to fetch orders")
	}

	log.Info().
		Int("executed", executed).
		Int("rejected", rejected).
		Int("holdings", len(pf.Holdings)).
		Int("orders", len(orders)).
		Float64("total_value", pf.TotalValue).
		Float64("total_yield", pf.TotalYield).
		Float64("trees_planted", pf.TreesPlanted).
		Msg("simulation completed")
}
