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

	"github.com/odra/finbook/internal/infrastructure/config"
	"github.com/odra/finbook/internal/infrastructure/postgres"
)

const version = "0.1.0"

var (
	baseURL string
	timeout time.Duration
	ownerID string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finbook-cli",
		Short: "Finbook CLI tool",
		Long:  `A command line interface for the Finbook API and database migrations.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Finbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "Owner ID sent as X-Owner-ID")

	rootCmd.AddCommand(dailyCmd(), accountsCmd(), migrateCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func dailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily budget operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show today's spending envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			return apiGet("/api/v1/daily/status")
		},
	})

	var (
		action    string
		amount    string
		goalID    string
		accountID string
		category  string
	)

	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Settle the day (SAVE or ROLLOVER)",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"action":            action,
				"amount":            amount,
				"goal_id":           goalID,
				"source_account_id": accountID,
				"category_id":       category,
			}
			return apiPost("/api/v1/daily/close", body)
		},
	}
	closeCmd.Flags().StringVar(&action, "action", "ROLLOVER", "SAVE or ROLLOVER")
	closeCmd.Flags().StringVar(&amount, "amount", "0", "Amount to save")
	closeCmd.Flags().StringVar(&goalID, "goal", "", "Savings goal ID")
	closeCmd.Flags().StringVar(&accountID, "account", "", "Source account ID")
	closeCmd.Flags().StringVar(&category, "category", "", "Category ID")
	cmd.AddCommand(closeCmd)

	return cmd
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts with billing-cycle figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return apiGet("/api/v1/accounts")
		},
	})

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})

	return cmd
}

func apiGet(path string) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return err
	}
	return doRequest(req)
}

func apiPost(path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(req)
}

func doRequest(req *http.Request) error {
	if ownerID != "" {
		req.Header.Set("X-Owner-ID", ownerID)
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
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(raw))
	}

	if len(raw) == 0 {
		fmt.Println("OK")
		return nil
	}

	var pretty any
	if err := json.Unmarshal(raw, &pretty); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	printJSON(pretty)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
