package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/bookshelf-services/configs"
	ratingcfg "github.com/avvvet/bookshelf-services/internal/ratingsvc/config"
)

const SERVICE_NAME = "ratings"

func init() {
	config.Bootstrap(SERVICE_NAME)
}

func main() {
	app := kingpin.New("ratingsvc", "Resolves the ratings service configuration handed to the ORM extension")
	output := app.Flag("output", "Output format for the resolved settings").Short('o').Default(ratingcfg.FormatYAML).Enum(ratingcfg.FormatYAML, ratingcfg.FormatJSON)

	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg := ratingcfg.Load()
	log.WithFields(cfg.Fields()).Info("ratings configuration loaded")

	if _, ok := cfg.DatabaseURI(); !ok {
		log.Warnf("%s is not set, the ORM extension will receive no connection string", ratingcfg.DatabaseURLEnv)
	}

	if err := ratingcfg.WriteSettings(os.Stdout, cfg, *output); err != nil {
		log.Fatalf("unable to write settings: %v", err)
	}
}
