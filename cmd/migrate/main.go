package main

import (
	"log"

	"tripsplit/core"
	"tripsplit/database"
)

func init() {
	core.LoadEnvs()
	core.ConnectDB()
}

func main() {
	if err := database.AutoMigrateAll(); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Migration completed successfully!")
}
