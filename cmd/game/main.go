package main

import (
	"context"
	"errors"
	"flag"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"

	"github.com/1siamBot/adventure-engine/engine/audio"
	"github.com/1siamBot/adventure-engine/engine/config"
	"github.com/1siamBot/adventure-engine/engine/core"
	"github.com/1siamBot/adventure-engine/engine/debugtap"
	"github.com/1siamBot/adventure-engine/engine/event"
	"github.com/1siamBot/adventure-engine/engine/input"
	"github.com/1siamBot/adventure-engine/engine/input/device"
	"github.com/1siamBot/adventure-engine/engine/render"
	"github.com/1siamBot/adventure-engine/engine/render/screen"
	"github.com/1siamBot/adventure-engine/engine/save"
	"github.com/1siamBot/adventure-engine/engine/scene"
)

var background = color.RGBA{20, 20, 30, 255}

// Game implements ebiten.Game on top of the scene director
type Game struct {
	settings config.Settings
	director *scene.Director
	renderer *screen.Renderer
	tap      *debugtap.Server
	tapped   map[*event.Manager]bool
	log      *log.Logger
}

func (g *Game) Update() error {
	if err := g.director.Update(1 / float64(g.settings.Window.TPS)); err != nil {
		return err
	}
	if g.director.Done() {
		return ebiten.Termination
	}
	if g.tap != nil {
		if b := g.director.Current().State(); !g.tapped[b.Events] {
			g.tap.Attach(b.Events)
			g.tapped[b.Events] = true
		}
	}
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(background)
	cur := g.director.Current()
	if cur == nil {
		return
	}
	b := cur.State()
	g.renderer.ShowHitboxes = g.settings.Debug.Hitboxes || b.Debug
	g.renderer.HUD = ""
	if gp, ok := cur.(*scene.Gameplay); ok && gp.Map != nil {
		g.renderer.Camera.Target = gp.Player
		w, h := gp.Map.PixelSize()
		g.renderer.Camera.SetWorldBounds(w, h)
		g.renderer.HUD = gp.HUD()
		g.renderer.Draw(dst, b.World, gp.Map)
		return
	}
	g.renderer.Draw(dst, b.World, nil)
}

func (g *Game) Layout(_, _ int) (int, int) {
	w := g.settings.Window
	return w.Width * w.Scale, w.Height * w.Scale
}

func openStore(path string, logger *log.Logger) (save.Store, error) {
	if filepath.Ext(path) == ".db" {
		return save.OpenSQLite(path, logger)
	}
	return save.NewFileStore(path, logger)
}

func main() {
	var (
		configPath = flag.String("config", "", "settings YAML file; built-in defaults when empty")
		mapName    = flag.String("map", "start", "map to start on when the slot has no save")
		mapsDir    = flag.String("maps", filepath.Join(screen.AssetsDir(), "maps"), "map directory")
		savesPath  = flag.String("saves", "saves", "save directory, or a .db file for SQLite")
		slot       = flag.String("slot", "slot1", "save slot")
		tapAddr    = flag.String("tap", "", "serve dispatched events over websocket on this address")
		prof       = flag.Bool("profile", false, "write a CPU profile to the working directory")
		record     = flag.String("record", "", "record the inputs of this run to a replay file")
		replay     = flag.String("replay", "", "drive the game from a replay file instead of the devices")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[game] ", log.LstdFlags|log.Lmsgprefix)

	if *prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	settings := config.Default()
	if *configPath != "" {
		var err error
		if settings, err = config.Load(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	store, err := openStore(*savesPath, logger)
	if err != nil {
		log.Fatalf("saves: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state, err := store.Load(ctx, *slot)
	var missing *core.ResourceError
	switch {
	case errors.As(err, &missing):
		state = save.PlayerState{Version: save.CurrentVersion, Inventory: save.NewInventory()}
	case err != nil:
		log.Fatalf("load slot %s: %v", *slot, err)
	}
	if state.LastMap != "" {
		*mapName = state.LastMap
	}

	kb := device.NewKeyboard()
	if err := kb.BindAll(settings.Keys); err != nil {
		log.Fatalf("keys: %v", err)
	}
	var ctrl input.Controller = input.Multi{kb, device.NewGamepad(logger)}
	if *replay != "" {
		if ctrl, err = input.LoadReplay(*replay); err != nil {
			log.Fatalf("replay: %v", err)
		}
	}
	if *record != "" {
		rec, err := input.NewRecorder(ctrl, *record)
		if err != nil {
			log.Fatalf("record: %v", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Printf("record: %v", err)
			}
			logger.Printf("recorded %d frames to %s", rec.Frames, *record)
		}()
		ctrl = rec
	}

	var am *audio.Manager
	if settings.Audio.Enabled {
		sink := audio.NewBeepSink()
		if err := sink.Init(); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			defer sink.Close()
			am = audio.NewManager(sink)
			am.SetVolume(settings.Audio.Volume)
		}
	}

	first := scene.NewGameplay(scene.GameplayOptions{
		Settings:       settings,
		Map:            *mapName,
		Loader:         scene.DirLoader(*mapsDir),
		Controller:     ctrl,
		CloseRequested: device.CloseRequested,
		Store:          store,
		Slot:           *slot,
		Player:         state,
		Audio:          am,
		Log:            logger,
	})

	w := settings.Window
	res := screen.NewResources(screen.AssetsDir(), w.Scale, logger)
	g := &Game{
		settings: settings,
		director: scene.NewDirector(logger, first),
		renderer: screen.NewRenderer(render.NewCamera(w.Width, w.Height), res),
		tapped:   make(map[*event.Manager]bool),
		log:      logger,
	}

	addr := *tapAddr
	if addr == "" {
		addr = settings.Debug.TapAddr
	}
	if addr != "" {
		g.tap = debugtap.NewServer(logger)
		go func() {
			if err := g.tap.ListenAndServe(ctx, addr); err != nil {
				logger.Printf("event tap: %v", err)
			}
		}()
	}

	ebiten.SetWindowSize(w.Width*w.Scale, w.Height*w.Scale)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetTPS(w.TPS)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
