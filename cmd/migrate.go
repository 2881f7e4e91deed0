package main

import (
	"log"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		db := ConnectDatabase(InitConfig())
		MigrateDatabase(db)
		log.Println("Database migrated")
	},
}
