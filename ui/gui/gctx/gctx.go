package gctx

import (
	"secondbest/src/config"
	"secondbest/src/logx"
	"secondbest/src/render"
	"secondbest/src/session"
	"secondbest/ui/gui/gassets"
	"secondbest/ui/gui/gbase"
)

// ---- GUI Context ----

type GUIGameContext struct {
	Session      *session.Session
	AssetsWorker *gassets.GUIAssetsWorker
	Config       *config.Config
	Params       render.Params
	Theme        gbase.Palette
	Logx         logx.Logger
}

func NewGUIGameContext(s *session.Session, a *gassets.GUIAssetsWorker, c *config.Config, l logx.Logger) *GUIGameContext {
	return &GUIGameContext{
		Session:      s,
		AssetsWorker: a,
		Config:       c,
		Params:       c.Render(),
		Theme:        gbase.PaletteFromString(c.Theme),
		Logx:         l,
	}
}
