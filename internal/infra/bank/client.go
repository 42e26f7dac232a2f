// Package bank implements the statement lookup against a SePay-style bank
// transaction API.
package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"anha/config"
	"anha/internal/domain/service"
	"anha/internal/errors"
)

const transactionDateLayout = "2006-01-02 15:04:05"

// statementClient queries the bank's transaction list API and matches
// incoming transfers by amount and reference code.
type statementClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewStatementClient is the constructor for statementClient.
func NewStatementClient(cfg *config.Config) (service.StatementService, error) {
	if cfg.Bank == nil || cfg.Bank.StatementURL == "" {
		return nil, errors.New("bank.statementUrl must be provided")
	}

	return &statementClient{
		baseURL: strings.TrimRight(cfg.Bank.StatementURL, "/"),
		apiKey:  cfg.Bank.APIKey,
		client:  &http.Client{Timeout: cfg.Bank.LookupTimeout},
	}, nil
}

// transaction is one statement line as the API returns it. Amounts come back
// as decimal strings.
type transaction struct {
	ID                 string `json:"id"`
	TransactionDate    string `json:"transaction_date"`
	AccountNumber      string `json:"account_number"`
	AmountIn           string `json:"amount_in"`
	TransactionContent string `json:"transaction_content"`
	ReferenceNumber    string `json:"reference_number"`
}

type transactionsResponse struct {
	Status       int           `json:"status"`
	Transactions []transaction `json:"transactions"`
}

// CheckPayment lists incoming transactions in the query window and reports
// whether any line carries the expected amount and the reference code in its
// transfer note.
func (c *statementClient) CheckPayment(ctx context.Context, query service.StatementQuery) (bool, error) {
	params := url.Values{}
	params.Set("account_number", query.AccountNumber)
	params.Set("transaction_date_min", query.FromDate.Format(transactionDateLayout))
	params.Set("transaction_date_max", query.ToDate.Format(transactionDateLayout))
	params.Set("amount_in", strconv.FormatInt(query.Amount, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transactions/list?"+params.Encode(), nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to build statement request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "statement request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, errors.New(fmt.Sprintf("statement API returned status %d", resp.StatusCode))
	}

	var body transactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, errors.Wrap(err, "failed to decode statement response")
	}

	for _, tx := range body.Transactions {
		if matches(tx, query) {
			return true, nil
		}
	}

	return false, nil
}

// matches reports whether a statement line settles the queried order: the
// incoming amount equals the order total and the transfer note contains the
// reference code. Banks commonly strip or uppercase the note, so matching is
// case-insensitive.
func matches(tx transaction, query service.StatementQuery) bool {
	amount, err := strconv.ParseFloat(tx.AmountIn, 64)
	if err != nil {
		return false
	}
	if int64(math.Round(amount)) != query.Amount {
		return false
	}

	note := strings.ToUpper(tx.TransactionContent)

	return strings.Contains(note, strings.ToUpper(query.ReferenceCode))
}
