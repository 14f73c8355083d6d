package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iho/trxrecords/internal/adapter/http/dto"
	"github.com/iho/trxrecords/internal/adapter/http/middleware"
)

type searchOptions struct {
	account     string
	customer    string
	date        string
	description string
	page        int
	size        int
}

func (o searchOptions) query() url.Values {
	q := url.Values{}

	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("accountNumber", o.account)
	set("customerId", o.customer)
	set("trxDate", o.date)
	set("description", o.description)

	q.Set("page", strconv.Itoa(o.page))
	q.Set("size", strconv.Itoa(o.size))

	return q
}

func searchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search transaction records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var page dto.PageResponse
			if err := callAPI(http.MethodGet, "/api/transactions?"+opts.query().Encode(), nil, nil, &page); err != nil {
				return err
			}

			return printPage(cmd.OutOrStdout(), &page)
		},
	}

	cmd.Flags().StringVar(&opts.account, "account", "", "Exact account number")
	cmd.Flags().StringVar(&opts.customer, "customer", "", "Exact customer ID")
	cmd.Flags().StringVar(&opts.date, "date", "", "Transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Case-insensitive description substring")
	cmd.Flags().IntVar(&opts.page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&opts.size, "size", 10, "Page size")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one transaction record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record dto.RecordResponse
			if err := callAPI(http.MethodGet, "/api/transactions/"+url.PathEscape(args[0]), nil, nil, &record); err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), record)
		},
	}
}

func updateCmd() *cobra.Command {
	var (
		description    string
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the description of a transaction record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := http.Header{}
			if idempotencyKey != "" {
				headers.Set(middleware.IdempotencyKeyHeader, idempotencyKey)
			}

			body := dto.UpdateDescriptionRequest{Description: &description}

			var record dto.RecordResponse
			if err := callAPI(http.MethodPut, "/api/transactions/"+url.PathEscape(args[0]), headers, body, &record); err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), record)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency-Key header value")
	cmd.MarkFlagRequired("description")

	return cmd
}

// apiError is returned for any non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

func callAPI(method, path string, headers http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, strings.TrimRight(baseURL, "/")+path, reader)
	if err != nil {
		return err
	}

	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope dto.ErrorResponse
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			return &apiError{Status: resp.StatusCode, Message: envelope.Message}
		}
		return &apiError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
