package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage journal notes",
	Long: `List, inspect, create and delete undated journal notes.

Examples:
  tvctl notes list --max 10
  tvctl notes create --notes "watch semis this week"`,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal notes",
	RunE:  runNotesList,
}

var notesShowCmd = &cobra.Command{
	Use:   "show <note-id>",
	Short: "Show one journal note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesShow,
}

var notesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a journal note",
	RunE:  runNotesCreate,
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a journal note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesDelete,
}

var (
	nlMax   int
	ncNotes string
)

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesShowCmd)
	notesCmd.AddCommand(notesCreateCmd)
	notesCmd.AddCommand(notesDeleteCmd)

	notesListCmd.Flags().IntVar(&nlMax, "max", 25, "maximum number of notes to return")
	notesCreateCmd.Flags().StringVar(&ncNotes, "notes", "", "note text, Markdown allowed")
}

func runNotesList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	notes, err := client.GetNotes(cmd.Context(), nlMax)
	if err != nil {
		return err
	}
	return printJSON(notes)
}

func runNotesShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	note, err := client.GetNote(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(note)
}

func runNotesCreate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var notes *string
	if ncNotes != "" {
		notes = &ncNotes
	}

	id, err := client.CreateNote(cmd.Context(), notes, false)
	if err != nil {
		return err
	}
	fmt.Printf("created note %s\n", id)
	return nil
}

func runNotesDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteNote(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted note %s\n", args[0])
	return nil
}
