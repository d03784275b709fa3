package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"secondbest/src/config"
	"secondbest/src/engine"
	"secondbest/src/engine/remote"
	"secondbest/src/logx"
	"secondbest/src/session"
	clic "secondbest/ui/cli"
	"secondbest/ui/gui"
	"secondbest/ui/gui/ghelper/gdialog"
)

const logfile string = "secondbest.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("debug"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// LoadConfig reads the config file and applies command line overrides.
func LoadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("engine-url") {
		cfg.Transport = config.TransportWS
		cfg.EngineURL = c.String("engine-url")
	}
	if c.IsSet("engine-path") {
		cfg.Transport = config.TransportExec
		cfg.EnginePath = c.String("engine-path")
	}
	if c.IsSet("assets") {
		cfg.AssetsDir = c.String("assets")
	}
	if c.IsSet("theme") {
		cfg.Theme = c.String("theme")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	return cfg, nil
}

// Connect opens the engine gateway the config asks for.
func Connect(ctx context.Context, cfg *config.Config, l logx.Logger) (engine.Gateway, error) {
	switch cfg.Transport {
	case config.TransportExec:
		l.Infof("starting engine %s %v", cfg.EnginePath, cfg.EngineArgs)
		return remote.StartExec(ctx, l, cfg.EnginePath, cfg.EngineArgs...)
	default:
		l.Infof("dialing engine %s", cfg.EngineURL)
		return remote.DialWS(ctx, l, cfg.EngineURL)
	}
}

func openLog() (*os.File, error) {
	return os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

func RunGUI(ctx context.Context, c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		fmt.Printf("error open logfile: %v", err)
		return nil
	}
	defer file.Close()
	l := GetLogger(file, c)
	defer l.Sync() //nolint:errcheck

	cfg, err := LoadConfig(c)
	if err != nil {
		gdialog.ShowError("Second Best", "%v", err)
		return err
	}
	if c.Bool("pick-engine") {
		path, err := gdialog.PickEngine("Select the Second Best engine")
		switch {
		case errors.Is(err, gdialog.ErrCancelled):
		case err != nil:
			l.Errorf("pick engine: %v", err)
		default:
			cfg.Transport, cfg.EnginePath = config.TransportExec, path
			if err := cfg.Save(c.String("config")); err != nil {
				l.Errorf("save config: %v", err)
			}
		}
	}

	gw, err := Connect(ctx, cfg, l.Named("engine"))
	if err != nil {
		l.Errorf("connect engine: %v", err)
		gdialog.ShowError("Second Best", "cannot reach the engine: %v", err)
		return err
	}
	defer gw.Close()

	s := session.New(gw, cfg.Session(), l.Named("session"))
	defer s.Close()
	s.Start()
	return gui.NewGUI(s, cfg, l).Run()
}

func RunCLI(ctx context.Context, c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		fmt.Printf("error open logfile: %v", err)
		return nil
	}
	defer file.Close()
	l := GetLogger(file, c)
	defer l.Sync() //nolint:errcheck

	cfg, err := LoadConfig(c)
	if err != nil {
		return err
	}
	gw, err := Connect(ctx, cfg, l.Named("engine"))
	if err != nil {
		return fmt.Errorf("connect engine: %w", err)
	}
	defer gw.Close()

	s := session.New(gw, cfg.Session(), l.Named("session"))
	defer s.Close()
	s.Start()

	clic.EnableANSI()
	cl := clic.NewCLI(s, clic.PrintRing, l)
	if err := cl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// WriteConfig stores the effective configuration, flags applied.
func WriteConfig(ctx context.Context, c *cli.Command) error {
	cfg, err := LoadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Save(c.String("config")); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", c.String("config"))
	return nil
}

func RunSecondBest() error {
	conff := &cli.StringFlag{
		Name:  "config",
		Value: config.DefaultFile,
		Usage: "path to the JSON config",
	}
	uf := &cli.StringFlag{
		Name:  "engine-url",
		Usage: "websocket address of the engine",
	}
	pf := &cli.StringFlag{
		Name:  "engine-path",
		Usage: "engine executable speaking JSON lines on stdio",
	}
	af := &cli.StringFlag{
		Name:  "assets",
		Usage: "directory with board.png, piece_black.png, ... (built-in art when empty)",
	}
	tf := &cli.StringFlag{
		Name:  "theme",
		Usage: "light or dark",
	}
	pef := &cli.BoolFlag{
		Name:  "pick-engine",
		Usage: "choose the engine executable in a file dialog",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   "info",
		Usage:   "logger level (debug, info, warn, error)",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	cliff := []cli.Flag{conff, uf, pf, df, lf, cf}
	guiff := []cli.Flag{conff, uf, pf, af, tf, pef, df, lf, cf}

	return (&cli.Command{
		Name:  "secondbest",
		Usage: "Second Best stacking game client",
		Flags: guiff,
		Commands: []*cli.Command{
			{
				Name:   "cli",
				Usage:  "play in the terminal",
				Flags:  cliff,
				Action: RunCLI,
			},
			{
				Name:   "gui",
				Usage:  "play in a window",
				Flags:  guiff,
				Action: RunGUI,
			},
			{
				Name:   "config",
				Usage:  "write the effective config file",
				Flags:  []cli.Flag{conff, uf, pf, af, tf, df},
				Action: WriteConfig,
			},
		},
		Action: RunGUI,
	}).Run(context.Background(), os.Args)
}
