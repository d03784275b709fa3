package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"secondbest/src/render"
	"secondbest/src/session"
)

const DefaultFile = "secondbest.json"

const (
	TransportWS   = "ws"
	TransportExec = "exec"
)

type Config struct {
	Transport     string   `json:"transport"`       // ws/exec
	EngineURL     string   `json:"engine_url"`      // ws://host:port/path
	EnginePath    string   `json:"engine_path"`     // binary for exec transport
	EngineArgs    []string `json:"engine_args"`     //
	AssetsDir     string   `json:"assets_dir"`      // empty: built-in images
	Theme         string   `json:"theme"`           // light/dark
	CanvasSize    int      `json:"canvas_size"`     // px
	PieceWidth    int      `json:"piece_width"`     // px
	CellWidth     int      `json:"cell_width"`      // px
	LiftRatio     float64  `json:"lift_ratio"`      // of piece width
	ErrorMs       int      `json:"error_ms"`        //
	BannerMs      int      `json:"banner_ms"`       //
	CallTimeoutMs int      `json:"call_timeout_ms"` //
	Debug         bool     `json:"debug"`           // true/false
}

func defaultConfig() Config {
	return Config{
		Transport:     TransportWS,
		EngineURL:     "ws://127.0.0.1:7878/engine",
		EnginePath:    "",
		EngineArgs:    nil,
		AssetsDir:     "",
		Theme:         "light",
		CanvasSize:    350,
		PieceWidth:    50,
		CellWidth:     70,
		LiftRatio:     0.2,
		ErrorMs:       3000,
		BannerMs:      2000,
		CallTimeoutMs: 5000,
		Debug:         false,
	}
}

func Default() *Config {
	c := defaultConfig()
	return &c
}

// Load reads file, falling back to defaults when it does not exist.
func Load(file string) (*Config, error) {
	if file == "" {
		file = DefaultFile
	}
	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		return Default(), nil
	} else if err != nil {
		return nil, err
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	c := defaultConfig()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config %s: %w", file, err)
	}
	correctableConfig(&c)
	return &c, nil
}

func (c *Config) Save(file string) error {
	if file == "" {
		file = DefaultFile
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Transport != TransportWS && c.Transport != TransportExec {
		c.Transport = def.Transport
	}
	if c.Transport == TransportExec && c.EnginePath == "" {
		c.Transport = def.Transport
	}
	if c.Transport == TransportWS && c.EngineURL == "" {
		c.EngineURL = def.EngineURL
	}
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.CanvasSize < 100 {
		c.CanvasSize = def.CanvasSize
	}
	if c.PieceWidth <= 0 || c.PieceWidth > c.CanvasSize/4 {
		c.PieceWidth = c.CanvasSize / 7
	}
	if c.CellWidth <= 0 || c.CellWidth > c.CanvasSize/3 {
		c.CellWidth = c.PieceWidth * 7 / 5
	}
	if c.LiftRatio < 0 || c.LiftRatio > 1 {
		c.LiftRatio = def.LiftRatio
	}
	if c.ErrorMs <= 0 {
		c.ErrorMs = def.ErrorMs
	}
	if c.BannerMs <= 0 {
		c.BannerMs = def.BannerMs
	}
	if c.CallTimeoutMs <= 0 {
		c.CallTimeoutMs = def.CallTimeoutMs
	}
}

// Session maps the file settings onto the session; the clock is left to the caller.
func (c *Config) Session() session.Config {
	sc := session.DefaultConfig()
	sc.CanvasSize = float64(c.CanvasSize)
	sc.PieceWidth = float64(c.PieceWidth)
	sc.ErrorTTL = time.Duration(c.ErrorMs) * time.Millisecond
	sc.BannerTTL = time.Duration(c.BannerMs) * time.Millisecond
	sc.CallTimeout = time.Duration(c.CallTimeoutMs) * time.Millisecond
	return sc
}

func (c *Config) Render() render.Params {
	return render.Params{
		Canvas:     float64(c.CanvasSize),
		PieceWidth: float64(c.PieceWidth),
		CellWidth:  float64(c.CellWidth),
		LiftRatio:  c.LiftRatio,
	}
}
