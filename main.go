package main

import (
	"github.com/sirupsen/logrus"

	"github.com/jfcordova/dictator-arena/config"
	_ "github.com/jfcordova/dictator-arena/docs"
	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/contestant"
	"github.com/jfcordova/dictator-arena/internal/item"
	"github.com/jfcordova/dictator-arena/internal/market"
	"github.com/jfcordova/dictator-arena/internal/user"
	"github.com/jfcordova/dictator-arena/routes"
)

// @title Dictator Arena REST API
// @version 1.0
// @description Battle management backend for dictators, sponsors and their contestants.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	err = db.AutoMigrate(
		&user.User{}, &user.Dictator{}, &user.Sponsor{},
		&contestant.Contestant{}, &contestant.Gift{}, &contestant.Buff{},
		&battle.Battle{}, &battle.Event{}, &battle.EventBattle{}, &battle.Bet{},
		&item.InventoryItem{},
		&market.Transaction{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("AutoMigrate failed")
	}
	logrus.Info("AutoMigrate successful")

	r := routes.SetupRoutes(db, cfg)

	logrus.WithFields(logrus.Fields{"port": cfg.App.Port, "env": cfg.App.Env}).
		Info("starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logrus.WithError(err).Fatal("failed to run server")
	}
}
