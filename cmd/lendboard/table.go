package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"lendboard/internal/domain/entity"

	"github.com/spf13/cobra"
)

var (
	tableWallet string
	tableTab    string
	tablePage   int
)

func init() {
	tableCmd := &cobra.Command{
		Use:     "table",
		Aliases: []string{"t"},
		Short:   "Render the dashboard table of a wallet once",
		Long:    `Fetch deposits, transaction history, borrowed positions and prices for a wallet and print one page of the selected tab.`,
		RunE:    runTable,
	}
	tableCmd.Flags().StringVarP(&tableWallet, "wallet", "w", "", "wallet address (empty renders the no-wallet table)")
	tableCmd.Flags().StringVar(&tableTab, "tab", entity.DefaultTab.Slug(), "assets, position-overview or transaction-history")
	tableCmd.Flags().IntVarP(&tablePage, "page", "p", 1, "page to render")
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, _ []string) error {
	tab, err := entity.ParseTab(tableTab)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.zap.Sync() }()

	session, err := a.dashboard.OpenSession(ctx, tableWallet)
	if err != nil {
		return err
	}
	defer a.dashboard.CloseSession(session.ID())

	waitCtx, cancel := context.WithTimeout(ctx, mountTimeout(a.cfg))
	defer cancel()
	if err := session.Wait(waitCtx); err != nil {
		return fmt.Errorf("timed out waiting for dashboard data: %w", err)
	}

	session.SelectTab(tab)
	session.JumpToPage(tablePage)
	return printTable(cmd.OutOrStdout(), session.Render())
}

func printTable(out io.Writer, view entity.TableView) error {
	fmt.Fprintf(out, "%s", view.Tab)
	if view.Wallet != "" {
		fmt.Fprintf(out, " - %s", view.Wallet)
	}
	fmt.Fprintln(out)
	if view.PriceError != "" {
		fmt.Fprintf(out, "! %s\n", view.PriceError)
	}

	switch view.State {
	case entity.TableLoading:
		fmt.Fprintln(out, "Loading...")
		return nil
	case entity.TableEmpty, entity.TablePlaceholder:
		fmt.Fprintln(out, view.Message)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(view.Columns, "\t"))
	for _, row := range view.Rows {
		fmt.Fprintln(w, strings.Join(tableCells(view.TabSlug, row), "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if p := view.Pagination; p != nil {
		pages := make([]string, 0, p.EndPage-p.StartPage+1)
		for _, n := range p.Pages() {
			if n == p.CurrentPage {
				pages = append(pages, fmt.Sprintf("[%d]", n))
				continue
			}
			pages = append(pages, fmt.Sprint(n))
		}
		fmt.Fprintf(out, "\nPage %d of %d  %s\n", p.CurrentPage, p.TotalPages, strings.Join(pages, " "))
	}
	return nil
}

func tableCells(tabSlug string, row entity.ResolvedRow) []string {
	symbol := row.DisplaySymbol
	if tabSlug == entity.TabTransactionHistory.Slug() && row.Transaction != nil {
		return []string{
			row.Transaction.TypeLabel,
			symbol,
			row.FormattedQuantity,
			row.FormattedUSDValue,
			row.Transaction.Timestamp,
			row.Transaction.ExplorerURL,
		}
	}
	return []string{symbol, row.FormattedQuantity, row.FormattedUSDValue}
}
