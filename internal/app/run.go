package app

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/messierandromeda/xai-workshop/viz"
)

const fyneAppID = "com.messierandromeda.xai-workshop"

// Run loads the configuration and starts the desktop viewer.
func Run() error {
	cfg, err := viz.LoadConfig("")
	if err != nil {
		return err
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)
	svc := NewService(cfg, logger)

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, svc)
	u.w.ShowAndRun()

	if err := viz.SaveConfig("", svc.Config()); err != nil {
		logger.Printf("save config: %v", err)
	}
	return nil
}
