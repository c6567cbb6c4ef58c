package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/readerly/circulate/internal/domain"
)

// promptPassword reads a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login EMAIL",
		Short: "Log in and store the session locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			user, err := theApp.session.Login(cmd.Context(), args[0], password)
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					401: "Invalid email or password.",
				}, "Login failed. Please try again."))
			}

			fmt.Printf("Logged in as %s", user.Name)
			if user.IsAdmin {
				fmt.Printf(" %s", color.YellowString("(admin)"))
			}
			fmt.Println()
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register NAME EMAIL",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			user, err := theApp.session.Register(cmd.Context(), args[0], args[1], password)
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					409: "An account with this email already exists.",
				}, "Registration failed. Please try again."))
			}

			fmt.Printf("Welcome, %s. You are now logged in.\n", user.Name)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theApp.session.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current principal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote {
				user, err := theApp.session.Me(cmd.Context())
				if err != nil {
					return errors.New(domain.FriendlyMessage(err, map[int]string{
						401: "Session expired. Please log in again.",
					}, "Could not fetch the current user."))
				}
				printUser(user)
				return nil
			}

			user, ok := theApp.session.Current()
			if !ok {
				fmt.Println("Not logged in.")
				return nil
			}
			printUser(user)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "verify the session against the server")
	return cmd
}

func printUser(user domain.User) {
	fmt.Printf("%s <%s>", user.Name, user.Email)
	if user.IsAdmin {
		fmt.Printf(" %s", color.YellowString("(admin)"))
	}
	fmt.Println()
}
