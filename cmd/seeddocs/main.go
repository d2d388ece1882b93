// Command seeddocs populates the documentation tables from the embedded XXML
// reference dataset. It is an offline administrative tool: safe to re-run,
// best-effort across modules, and exits non-zero on the first store failure
// while keeping everything already committed.
package main

import (
	"os"

	"github.com/xxml-lang/xxmlhub/config"
	"github.com/xxml-lang/xxmlhub/models"
	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.DocModule{},
		&models.DocClass{},
		&models.DocMethod{},
		&models.DocExample{},
	)

	seeder := services.NewSeeder(db, utils.Sugar)
	summary, err := seeder.Run(services.DocumentationDataset())
	if err != nil {
		utils.Sugar.Errorf("seeding aborted: %v", err)
		os.Exit(1)
	}

	utils.Sugar.Infof("seeding complete: %s", summary)

	// Drop any cached documentation pages so readers see the new content.
	utils.RedisInvalidator{}.InvalidatePath("/docs")
}
