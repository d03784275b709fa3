//go:build js && wasm

package main

import (
	"context"
	"net/url"
	"syscall/js"

	"secondbest/src/config"
	"secondbest/src/engine/remote"
	"secondbest/src/logx"
	"secondbest/src/session"
	"secondbest/ui/gui"
	"secondbest/ui/gui/ghelper/gdialog"
)

func GetLogger() *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString("debug"),
		false,
		true,
	)
	l.InitLogger(nil)
	return l
}

// engineURL takes ?engine=ws://... from the page address, the default otherwise.
func engineURL(def string) string {
	href := js.Global().Get("location").Get("href")
	if !href.Truthy() {
		return def
	}
	u, err := url.Parse(href.String())
	if err != nil {
		return def
	}
	if e := u.Query().Get("engine"); e != "" {
		return e
	}
	return def
}

func RunGUI() error {
	logger := GetLogger()
	cfg := config.Default()
	cfg.EngineURL = engineURL(cfg.EngineURL)

	gw, err := remote.DialWS(context.Background(), logger.Named("engine"), cfg.EngineURL)
	if err != nil {
		logger.Errorf("error connect engine: %v", err)
		gdialog.ShowError("Second Best", "cannot reach the engine: %v", err)
		return err
	}
	defer gw.Close()

	s := session.New(gw, cfg.Session(), logger.Named("session"))
	defer s.Close()
	s.Start()
	return gui.NewGUI(s, cfg, logger).Run()
}

func main() {
	RunGUI()
}
