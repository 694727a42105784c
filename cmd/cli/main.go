package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fondo-cli",
		Short: "Fondo CLI tool",
		Long:  `A command line interface for interacting with the Fondo ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Fondo API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check that every non-zero-diff closing has its adjustment",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	repairCmd := &cobra.Command{
		Use:   "repair",
		Short: "Synthesize missing adjustments for orphaned closings",
		Run: func(cmd *cobra.Command, args []string) {
			repairConsistency()
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <company-id> <account-id>",
		Short: "Show the per-currency balance of an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0], args[1])
		},
	}

	ledgerCmd.AddCommand(consistencyCmd, repairCmd, balanceCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Closing commands
	closingCmd := &cobra.Command{
		Use:   "closing",
		Short: "Daily closing operations",
	}

	closingStatusCmd := &cobra.Command{
		Use:   "status <closing-id>",
		Short: "Show the per-currency reconciliation state of a closing",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showClosingStatus(args[0])
		},
	}

	closingShowCmd := &cobra.Command{
		Use:   "show <closing-id>",
		Short: "Show a closing record with its balances and diff",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showClosing(args[0])
		},
	}

	var (
		closingCompany   string
		closingAccount   string
		closingDate      string
		closingManager   string
		closingBreakdown string
	)
	closingCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Record a daily closing from a counted denomination breakdown",
		Run: func(cmd *cobra.Command, args []string) {
			createClosing(closingCompany, closingAccount, closingDate, closingManager, closingBreakdown)
		},
	}
	closingCreateCmd.Flags().StringVar(&closingCompany, "company", "", "Company ID")
	closingCreateCmd.Flags().StringVar(&closingAccount, "account", "general_fund", "Fund account ID")
	closingCreateCmd.Flags().StringVar(&closingDate, "date", "", "Closing date (YYYY-MM-DD)")
	closingCreateCmd.Flags().StringVar(&closingManager, "manager", "", "Manager recording the count")
	closingCreateCmd.Flags().StringVar(&closingBreakdown, "breakdown", "{}", `Counted breakdown JSON, e.g. '{"CRC":{"5000":2,"100":3}}'`)

	closingCmd.AddCommand(closingStatusCmd, closingShowCmd, closingCreateCmd)
	rootCmd.AddCommand(closingCmd)

	// Summary command
	var (
		summaryCompany string
		summaryAccount string
		summaryFrom    string
		summaryTo      string
	)
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate movements by type over a date range",
		Run: func(cmd *cobra.Command, args []string) {
			showSummary(summaryCompany, summaryAccount, summaryFrom, summaryTo)
		},
	}
	summaryCmd.Flags().StringVar(&summaryCompany, "company", "", "Company ID")
	summaryCmd.Flags().StringVar(&summaryAccount, "account", "general_fund", "Fund account ID")
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "Range start (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "Range end (YYYY-MM-DD)")
	rootCmd.AddCommand(summaryCmd)

	// Movement type commands
	typesCmd := &cobra.Command{
		Use:   "types <owner-id>",
		Short: "List a company's movement type catalog",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listTypes(args[0])
		},
	}
	rootCmd.AddCommand(typesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkConsistency() {
	result := getJSON("/api/v1/ledger/consistency")

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Consistency check PASSED")
		return
	}

	fmt.Println("Consistency check FAILED")
	if orphaned, ok := result["orphaned_closings"].([]any); ok {
		for _, id := range orphaned {
			fmt.Printf("  orphaned closing: %v\n", id)
		}
	}
	os.Exit(1)
}

func repairConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/ledger/consistency/repair", "application/json", strings.NewReader("{}"))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Repair FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Repaired closings: %v\n", result["repaired"])
}

func showBalance(companyID, accountID string) {
	query := url.Values{}
	query.Set("company_id", companyID)
	query.Set("account_id", accountID)

	result := getJSON("/api/v1/ledger/balance?" + query.Encode())

	fmt.Printf("Balance for %s/%s:\n", companyID, accountID)
	if balance, ok := result["balance"].(map[string]any); ok {
		for currency, amount := range balance {
			fmt.Printf("  %s: %v\n", currency, amount)
		}
	}
}

func showClosingStatus(closingID string) {
	result := getJSON("/api/v1/closings/" + closingID + "/status")

	fmt.Printf("Closing %s:\n", closingID)
	if states, ok := result["states"].(map[string]any); ok {
		for currency, state := range states {
			fmt.Printf("  %s: %v\n", currency, state)
		}
	}
}

func showClosing(closingID string) {
	result := getJSON("/api/v1/closings/" + closingID)

	fmt.Printf("Closing %v (%v/%v) on %v, manager %v\n",
		result["id"], result["company_id"], result["account_id"], result["closing_date"], result["manager"])
	printMoney := func(label string, value any) {
		amounts, ok := value.(map[string]any)
		if !ok {
			return
		}
		fmt.Printf("  %s:\n", label)
		for currency, amount := range amounts {
			fmt.Printf("    %s: %v\n", currency, amount)
		}
	}
	printMoney("counted", result["counted_total"])
	printMoney("recorded", result["recorded_balance"])
	printMoney("diff", result["diff"])
}

func createClosing(company, account, date, manager, breakdown string) {
	var counted map[string]map[string]int
	if err := json.Unmarshal([]byte(breakdown), &counted); err != nil {
		fmt.Printf("Invalid breakdown JSON: %v\n", err)
		os.Exit(1)
	}

	payload, _ := json.Marshal(map[string]any{
		"company_id":   company,
		"account_id":   account,
		"closing_date": date,
		"manager":      manager,
		"breakdown":    counted,
	})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/closings/", "application/json", strings.NewReader(string(payload)))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Closing FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Closing recorded: %v\n", result["id"])
	if diff, ok := result["diff"].(map[string]any); ok {
		for currency, amount := range diff {
			fmt.Printf("  diff %s: %v\n", currency, amount)
		}
	}
}

func showSummary(company, account, from, to string) {
	query := url.Values{}
	query.Set("company_id", company)
	query.Set("account_id", account)
	query.Set("from", from)
	query.Set("to", to)

	result := getJSON("/api/v1/summary?" + query.Encode())

	if rows, ok := result["rows"].([]any); ok {
		for _, raw := range rows {
			row, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			fmt.Printf("%v\t%v\t%v\n", row["movement_type_id"], row["classification"], row["label"])
			if totals, ok := row["totals"].(map[string]any); ok {
				for currency, bucket := range totals {
					if b, ok := bucket.(map[string]any); ok {
						fmt.Printf("  %s net: %v\n", currency, b["net"])
					}
				}
			}
		}
	}
	if net, ok := result["net_balance"].(map[string]any); ok {
		fmt.Println("Net balance:")
		for currency, amount := range net {
			fmt.Printf("  %s: %v\n", currency, amount)
		}
	}
}

func listTypes(ownerID string) {
	query := url.Values{}
	query.Set("owner_id", ownerID)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/movement-types?" + query.Encode())
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var types []map[string]any
	if err := json.Unmarshal(body, &types); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, t := range types {
		fmt.Printf("%v\t%v\t%v (order %v)\n", t["id"], t["category"], t["name"], t["order"])
	}
}

func getJSON(path string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}
