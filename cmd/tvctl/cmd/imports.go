package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/tradervue-go/tradervue"
	"github.com/spf13/cobra"
)

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "Import broker executions",
	Long: `Submit execution imports and inspect the import slot.

The executions file is a JSON array of objects with datetime, symbol,
quantity and price fields (commission, transfee, ecnfee and option are
optional), matching the Tradervue import format.

Examples:
  tvctl imports status
  tvctl imports submit -f fills.json --account-tag ibkr-main --wait`,
}

var importsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the import slot",
	RunE:  runImportsStatus,
}

var importsSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an execution import",
	RunE:  runImportsSubmit,
}

var (
	imFile       string
	imAccountTag string
	imTags       []string
	imAllowDups  bool
	imOverlay    bool
	imRetries    int
	imWait       bool
	imWaitTries  int
	imPollSecs   int
)

func init() {
	rootCmd.AddCommand(importsCmd)
	importsCmd.AddCommand(importsStatusCmd)
	importsCmd.AddCommand(importsSubmitCmd)

	importsSubmitCmd.Flags().StringVarP(&imFile, "file", "f", "", "JSON file with executions to import (required)")
	importsSubmitCmd.Flags().StringVar(&imAccountTag, "account-tag", "", "account tag for the imported trades")
	importsSubmitCmd.Flags().StringSliceVar(&imTags, "tags", nil, "tags for the imported trades")
	importsSubmitCmd.Flags().BoolVar(&imAllowDups, "allow-duplicates", false, "disable server-side duplicate detection")
	importsSubmitCmd.Flags().BoolVar(&imOverlay, "overlay-commissions", false, "commission-overlay mode: update existing trades only")
	importsSubmitCmd.Flags().IntVar(&imRetries, "retries", 3, "submission attempts while the server is busy")
	importsSubmitCmd.Flags().BoolVar(&imWait, "wait", false, "wait for the import to finish")
	importsSubmitCmd.Flags().IntVar(&imWaitTries, "wait-retries", 5, "status polls before giving up")
	importsSubmitCmd.Flags().IntVar(&imPollSecs, "poll-secs", 3, "seconds between status polls")
	importsSubmitCmd.MarkFlagRequired("file")
}

func runImportsStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	st, err := client.GetImportStatus(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(st)
}

func runImportsSubmit(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(imFile)
	if err != nil {
		return fmt.Errorf("read executions file: %w", err)
	}
	var executions []tradervue.ImportExecution
	if err := json.Unmarshal(data, &executions); err != nil {
		return fmt.Errorf("parse executions file %s: %w", imFile, err)
	}

	st, err := client.ImportExecutions(cmd.Context(), tradervue.ImportRequest{
		Executions:         executions,
		AccountTag:         imAccountTag,
		Tags:               imTags,
		AllowDuplicates:    imAllowDups,
		OverlayCommissions: imOverlay,
		ImportRetries:      imRetries,
		WaitForCompletion:  imWait,
		WaitRetries:        imWaitTries,
		PollInterval:       time.Duration(imPollSecs) * time.Second,
	})
	if err != nil {
		return err
	}

	if st.Status == tradervue.ImportFailed {
		fmt.Fprintln(os.Stderr, "import finished with failures")
	}
	return printJSON(st)
}
