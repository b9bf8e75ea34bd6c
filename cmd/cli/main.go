package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	tenant  string
	actor   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinicledger-cli",
		Short: "ClinicLedger CLI tool",
		Long:  `A command line interface for interacting with the ClinicLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ClinicLedger API")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "Clinic tenant ID (required)")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", "", "Acting staff member, recorded in the audit trail")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(statementCmd())
	rootCmd.AddCommand(recalculateCmd())
	rootCmd.AddCommand(payCmd())
	rootCmd.AddCommand(voidCmd())
	rootCmd.AddCommand(paymentsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <patient-id>",
		Short: "Show a patient's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/patients/"+args[0]+"/balance", nil)
		},
	}
}

func statementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statement <patient-id>",
		Short: "Show a patient's billable items and balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/patients/"+args[0]+"/statement", nil)
		},
	}
}

func recalculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate <patient-id>",
		Short: "Re-derive a patient's paid flags from payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/patients/"+args[0]+"/recalculate", nil)
		},
	}
}

func payCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "pay <patient-id> <amount>",
		Short: "Record a payment for a patient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"amount": args[1]}
			if note != "" {
				body["note"] = note
			}
			return doRequest(http.MethodPost, "/api/v1/patients/"+args[0]+"/payments", body)
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Optional payment note")

	return cmd
}

func voidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "void <payment-id>",
		Short: "Void a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodDelete, "/api/v1/payments/"+args[0], nil)
		},
	}
}

func paymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payments <patient-id>",
		Short: "List a patient's payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/patients/"+args[0]+"/payments", nil)
		},
	}
}

func doRequest(method, path string, body any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = strings.NewReader(string(raw))
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenant)
	if actor != "" {
		req.Header.Set("X-Actor-ID", actor)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	printJSON(decoded)

	return nil
}

func printJSON(v any) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(raw))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
