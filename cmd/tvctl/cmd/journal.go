package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradervue-go/tradervue"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage journal entries",
	Long: `List, inspect, create and delete dated journal entries.

Examples:
  tvctl journal list --start 2024-03-01 --end 2024-03-31
  tvctl journal show --date 2024-03-05
  tvctl journal create --date 2024-03-05 --notes "FOMC day, small size"`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show [journal-id]",
	Short: "Show one journal entry, by id or by --date",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalShow,
}

var journalCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a journal entry",
	RunE:  runJournalCreate,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <journal-id>",
	Short: "Delete a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var (
	jlStart string
	jlEnd   string
	jlMax   int
	jsDate  string
	jcDate  string
	jcNotes string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalCreateCmd)
	journalCmd.AddCommand(journalDeleteCmd)

	journalListCmd.Flags().StringVar(&jlStart, "start", "", "entries on or after this date (YYYY-MM-DD)")
	journalListCmd.Flags().StringVar(&jlEnd, "end", "", "entries on or before this date (YYYY-MM-DD)")
	journalListCmd.Flags().IntVar(&jlMax, "max", 25, "maximum number of entries to return")

	journalShowCmd.Flags().StringVar(&jsDate, "date", "", "look the entry up by date (YYYY-MM-DD) instead of id")

	journalCreateCmd.Flags().StringVar(&jcDate, "date", "", "date of the entry (YYYY-MM-DD, required)")
	journalCreateCmd.Flags().StringVar(&jcNotes, "notes", "", "entry text, Markdown allowed")
	journalCreateCmd.MarkFlagRequired("date")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	filter := tradervue.JournalFilter{MaxEntries: jlMax}
	if jlStart != "" {
		d, err := time.Parse("2006-01-02", jlStart)
		if err != nil {
			return fmt.Errorf("parse --start: %w", err)
		}
		filter.StartDate = &d
	}
	if jlEnd != "" {
		d, err := time.Parse("2006-01-02", jlEnd)
		if err != nil {
			return fmt.Errorf("parse --end: %w", err)
		}
		filter.EndDate = &d
	}

	entries, err := client.GetJournals(cmd.Context(), filter)
	if err != nil {
		return err
	}
	return printJSON(entries)
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (jsDate == "") {
		return fmt.Errorf("specify exactly one of a journal id or --date")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if jsDate != "" {
		d, err := time.Parse("2006-01-02", jsDate)
		if err != nil {
			return fmt.Errorf("parse --date: %w", err)
		}
		entry, err := client.GetJournalByDate(cmd.Context(), d)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("no journal entry on %s", jsDate)
		}
		return printJSON(entry)
	}

	entry, err := client.GetJournal(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(entry)
}

func runJournalCreate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	d, err := time.Parse("2006-01-02", jcDate)
	if err != nil {
		return fmt.Errorf("parse --date: %w", err)
	}

	var notes *string
	if jcNotes != "" {
		notes = &jcNotes
	}

	id, err := client.CreateJournal(cmd.Context(), d, notes, false)
	if err != nil {
		return err
	}
	fmt.Printf("created journal entry %s\n", id)
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteJournal(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted journal entry %s\n", args[0])
	return nil
}
