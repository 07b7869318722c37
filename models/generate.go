package models

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AllModels lists every entity in migration order (referenced tables first).
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Location{},
		&Post{},
		&Comment{},
	}
}

// Migrate runs AutoMigrate for the full schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// GenerateModels migrates the schema and emits typed query helpers.
// Run with GENERATE_MODELS=true.
func GenerateModels(db *gorm.DB) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(AllModels()...)

	fmt.Println("Migrating models...")
	if err := Migrate(db); err != nil {
		fmt.Printf("Error during models migration: %v\n", err)
		os.Exit(1)
	}

	g.Execute()
	fmt.Println("Model generation complete!")
}
