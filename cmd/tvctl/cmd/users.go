package cmd

import (
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage organization users",
	Long: `List and inspect organization users.

These commands require organization manager credentials.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the users in the organization",
	RunE:  runUsersList,
}

var usersShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show one user in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersShow,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersShowCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	users, err := client.GetUsers(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(users)
}

func runUsersShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	user, err := client.GetUser(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(user)
}
