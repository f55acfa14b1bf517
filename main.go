package main

import (
	"github.com/skillup-labs/skillup/config"
	"github.com/skillup-labs/skillup/models"
	"github.com/skillup-labs/skillup/routes"
	"github.com/skillup-labs/skillup/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Goal{},
		&models.GoalTask{},
		&models.CheckIn{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
