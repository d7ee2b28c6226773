package models

import (
	"log"

	"github.com/mmdatafocus/intake_backend/config"
)

func MigrateTable() {
	db := config.GetDB()
	if db == nil {
		return
	}

	err := db.AutoMigrate(
		&AuditEntry{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
