package main

import (
	"fmt"
	"log"
	"os"

	"tripsplit/schema"

	"ariga.io/atlas-provider-gorm/gormschema"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(schema.GetAllModels()...)
	if err != nil {
		log.Fatalf("failed to load gorm schema: %v", err)
	}
	fmt.Fprint(os.Stdout, stmts)
}
