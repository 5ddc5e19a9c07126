package main

import (
	"calorie-tracker/config"
	"calorie-tracker/routes"
	"calorie-tracker/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}

	if cfg.AWS.Region != "" {
		if err := utils.InitS3(cfg.AWS.Region, cfg.AWS.S3Bucket, cfg.AWS.CDNBaseURL); err != nil {
			logrus.WithError(err).Warn("S3 uploads disabled")
		}
		if err := utils.InitSES(cfg.AWS.Region, cfg.AWS.SESSender); err != nil {
			logrus.WithError(err).Warn("SES mail disabled")
		}
	}

	r := routes.SetupRouter(db, cfg)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("server: %v", err)
	}
}
