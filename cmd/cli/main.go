package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	userID  string
	timeout time.Duration
)

// apiClient is a thin wrapper over the HTTP API. Every request carries the
// X-User-Id header; the server scopes all data to it.
type apiClient struct {
	baseURL string
	userID  string
	client  *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		baseURL: baseURL,
		userID:  userID,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) do(method, path string, query url.Values, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", c.userID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg, _ := envelope["message"].(string)
		return nil, fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
	}

	return envelope, nil
}

func printResult(envelope map[string]any) {
	out, err := json.MarshalIndent(envelope["data"], "", "  ")
	if err != nil {
		fmt.Println(envelope["data"])
		return
	}
	fmt.Println(string(out))
}

func run(fn func(c *apiClient) (map[string]any, error)) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		envelope, err := fn(newAPIClient())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		printResult(envelope)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "moneymanager-cli",
		Short: "Money manager CLI",
		Long:  `A command line interface for the money manager API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID sent as X-User-Id")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountsCmd(), transactionsCmd(), transfersCmd(), dashboardCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Run: run(func(c *apiClient) (map[string]any, error) {
			return c.do(http.MethodGet, "/api/v1/accounts", nil, nil)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "total",
		Short: "Total balance across active accounts",
		Run: run(func(c *apiClient) (map[string]any, error) {
			return c.do(http.MethodGet, "/api/v1/accounts/balance/total", nil, nil)
		}),
	})

	var (
		name     string
		accType  string
		bank     string
		currency string
		balance  string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: run(func(c *apiClient) (map[string]any, error) {
			return c.do(http.MethodPost, "/api/v1/accounts", nil, map[string]any{
				"name":      name,
				"type":      accType,
				"bank_name": bank,
				"currency":  currency,
				"balance":   balance,
			})
		}),
	}
	create.Flags().StringVar(&name, "name", "", "Account name")
	create.Flags().StringVar(&accType, "type", "CHECKING", "Account type (SAVINGS, CHECKING, INVESTMENT)")
	create.Flags().StringVar(&bank, "bank", "", "Bank name")
	create.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	create.Flags().StringVar(&balance, "balance", "0", "Opening balance")
	cmd.AddCommand(create)

	return cmd
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	var kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Run: run(func(c *apiClient) (map[string]any, error) {
			path := "/api/v1/transactions"
			if kind != "" {
				path += "/type/" + kind
			}
			return c.do(http.MethodGet, path, nil, nil)
		}),
	}
	list.Flags().StringVar(&kind, "type", "", "Filter by type (INCOME, EXPENSE)")
	cmd.AddCommand(list)

	var (
		txKind   string
		amount   string
		category string
		desc     string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Run: run(func(c *apiClient) (map[string]any, error) {
			return c.do(http.MethodPost, "/api/v1/transactions", nil, map[string]any{
				"type":        txKind,
				"amount":      amount,
				"category":    category,
				"description": desc,
			})
		}),
	}
	add.Flags().StringVar(&txKind, "type", "EXPENSE", "Transaction type (INCOME, EXPENSE)")
	add.Flags().StringVar(&amount, "amount", "", "Amount")
	add.Flags().StringVar(&category, "category", "", "Category")
	add.Flags().StringVar(&desc, "description", "", "Description")
	cmd.AddCommand(add)

	return cmd
}

func transfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Transfer operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List transfers",
		Run: run(func(c *apiClient) (map[string]any, error) {
			return c.do(http.MethodGet, "/api/v1/transfers", nil, nil)
		}),
	})

	var (
		from   string
		to     string
		amount string
		desc   string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Move money between two accounts",
		Run: run(func(c *apiClient) (map[string]any, error) {
			return c.do(http.MethodPost, "/api/v1/transfers", nil, map[string]any{
				"from_account_id": from,
				"to_account_id":   to,
				"amount":          amount,
				"description":     desc,
			})
		}),
	}
	create.Flags().StringVar(&from, "from", "", "Source account ID")
	create.Flags().StringVar(&to, "to", "", "Destination account ID")
	create.Flags().StringVar(&amount, "amount", "", "Amount")
	create.Flags().StringVar(&desc, "description", "", "Description")
	cmd.AddCommand(create)

	return cmd
}

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Spending reports",
	}

	var (
		month int
		week  int
		year  int
	)

	monthly := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly report",
		Run: run(func(c *apiClient) (map[string]any, error) {
			q := url.Values{}
			q.Set("month", fmt.Sprint(month))
			q.Set("year", fmt.Sprint(year))
			return c.do(http.MethodGet, "/api/v1/dashboard/monthly", q, nil)
		}),
	}
	monthly.Flags().IntVar(&month, "month", int(time.Now().Month()), "Month (1-12)")
	monthly.Flags().IntVar(&year, "year", time.Now().Year(), "Year")
	cmd.AddCommand(monthly)

	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "Weekly report",
		Run: run(func(c *apiClient) (map[string]any, error) {
			q := url.Values{}
			q.Set("week", fmt.Sprint(week))
			q.Set("year", fmt.Sprint(year))
			return c.do(http.MethodGet, "/api/v1/dashboard/weekly", q, nil)
		}),
	}
	weekly.Flags().IntVar(&week, "week", 1, "Week of the year (1-53)")
	weekly.Flags().IntVar(&year, "year", time.Now().Year(), "Year")
	cmd.AddCommand(weekly)

	yearly := &cobra.Command{
		Use:   "yearly",
		Short: "Yearly report",
		Run: run(func(c *apiClient) (map[string]any, error) {
			q := url.Values{}
			q.Set("year", fmt.Sprint(year))
			return c.do(http.MethodGet, "/api/v1/dashboard/yearly", q, nil)
		}),
	}
	yearly.Flags().IntVar(&year, "year", time.Now().Year(), "Year")
	cmd.AddCommand(yearly)

	category := &cobra.Command{
		Use:   "category",
		Short: "Per-category totals",
		Run: run(func(c *apiClient) (map[string]any, error) {
			return c.do(http.MethodGet, "/api/v1/dashboard/category", nil, nil)
		}),
	}
	cmd.AddCommand(category)

	return cmd
}
