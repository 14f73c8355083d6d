package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iho/trxrecords/internal/adapter/http/dto"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPage(w io.Writer, page *dto.PageResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tACCOUNT\tAMOUNT\tDATE\tTIME\tCUSTOMER\tDESCRIPTION")
	for _, r := range page.Content {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.AccountNumber, r.TrxAmount, r.TrxDate, r.TrxTime, r.CustomerID, truncate(r.Description, 40))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "page %d of %d (%d records)\n", page.Page+1, max(page.TotalPages, 1), page.TotalElements)
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
