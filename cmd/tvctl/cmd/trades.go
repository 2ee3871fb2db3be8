package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradervue-go/tradervue"
	"github.com/spf13/cobra"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Search and manage trades",
	Long: `Search, inspect and delete trades.

Examples:
  tvctl trades list -s AAPL --side Long --max 50
  tvctl trades show 12345
  tvctl trades executions 12345
  tvctl trades delete 12345`,
}

var tradesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Search for trades",
	RunE:  runTradesList,
}

var tradesShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesShow,
}

var tradesExecutionsCmd = &cobra.Command{
	Use:   "executions <trade-id>",
	Short: "Show the executions of a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesExecutions,
}

var tradesCommentsCmd = &cobra.Command{
	Use:   "comments <trade-id>",
	Short: "Show the comments on a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesComments,
}

var tradesDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesDelete,
}

var (
	tlSymbol   string
	tlTag      string
	tlSide     string
	tlDuration string
	tlStart    string
	tlEnd      string
	tlWinners  bool
	tlLosers   bool
	tlMax      int
)

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.AddCommand(tradesListCmd)
	tradesCmd.AddCommand(tradesShowCmd)
	tradesCmd.AddCommand(tradesExecutionsCmd)
	tradesCmd.AddCommand(tradesCommentsCmd)
	tradesCmd.AddCommand(tradesDeleteCmd)

	tradesListCmd.Flags().StringVarP(&tlSymbol, "symbol", "s", "", "filter by symbol")
	tradesListCmd.Flags().StringVarP(&tlTag, "tag", "t", "", "filter by tag expression (AND/OR must be uppercase)")
	tradesListCmd.Flags().StringVar(&tlSide, "side", "", "filter by side (Long or Short)")
	tradesListCmd.Flags().StringVar(&tlDuration, "duration", "", "filter by duration (Intraday or Multiday)")
	tradesListCmd.Flags().StringVar(&tlStart, "start", "", "trades on or after this date (YYYY-MM-DD)")
	tradesListCmd.Flags().StringVar(&tlEnd, "end", "", "trades on or before this date (YYYY-MM-DD)")
	tradesListCmd.Flags().BoolVar(&tlWinners, "winners", false, "only trades with positive gross P&L")
	tradesListCmd.Flags().BoolVar(&tlLosers, "losers", false, "only trades with negative gross P&L")
	tradesListCmd.Flags().IntVar(&tlMax, "max", 25, "maximum number of trades to return")
}

func runTradesList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	filter := tradervue.TradeFilter{
		Symbol:    tlSymbol,
		TagExpr:   tlTag,
		Side:      tlSide,
		Duration:  tlDuration,
		MaxTrades: tlMax,
	}

	if tlStart != "" {
		d, err := time.Parse("2006-01-02", tlStart)
		if err != nil {
			return fmt.Errorf("parse --start: %w", err)
		}
		filter.StartDate = &d
	}
	if tlEnd != "" {
		d, err := time.Parse("2006-01-02", tlEnd)
		if err != nil {
			return fmt.Errorf("parse --end: %w", err)
		}
		filter.EndDate = &d
	}
	if tlWinners && tlLosers {
		return fmt.Errorf("--winners and --losers are mutually exclusive")
	}
	if tlWinners || tlLosers {
		filter.Winners = &tlWinners
	}

	trades, err := client.GetTrades(cmd.Context(), filter)
	if err != nil {
		return err
	}
	return printJSON(trades)
}

func runTradesShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	trade, err := client.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(trade)
}

func runTradesExecutions(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	execs, err := client.GetTradeExecutions(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(execs)
}

func runTradesComments(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	comments, err := client.GetTradeComments(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(comments)
}

func runTradesDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteTrade(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted trade %s\n", args[0])
	return nil
}
