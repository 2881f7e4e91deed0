package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"timetracker/internal/repository"
	"timetracker/internal/services"
)

var (
	flagUsername string
	flagPassword string
)

var createUserCmd = &cobra.Command{
	Use:   "createuser",
	Short: "Create a user that can log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := ConnectDatabase(InitConfig())
		MigrateDatabase(db)

		auth := services.NewAuthService(repository.NewUserRepository(db))
		user, err := auth.CreateUser(cmd.Context(), flagUsername, flagPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&flagUsername, "username", "", "login name")
	createUserCmd.Flags().StringVar(&flagPassword, "password", "", "password")
	createUserCmd.MarkFlagRequired("username")
	createUserCmd.MarkFlagRequired("password")
}
