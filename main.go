package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"whiteboard/config"
	"whiteboard/export"
	"whiteboard/persist"
	"whiteboard/script"
)

var (
	configPath = flag.String("config", "whiteboard.toml", "settings file")
	boardName  = flag.String("board", AutosaveName, "name of the stored board to open and autosave")
	openPath   = flag.String("open", "", "open a board YAML file instead of the stored board")
	exportPath = flag.String("export", "", "write the board to this PDF and exit")
	list       = flag.Bool("list", false, "list stored boards and exit")
	initConfig = flag.Bool("init-config", false, "write the default settings file and exit")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if *initConfig {
		if _, err := os.Stat(*configPath); err == nil {
			return fmt.Errorf("%s already exists", *configPath)
		}
		if err := config.Default().Save(*configPath); err != nil {
			return err
		}
		log.Printf("Config: wrote %s", *configPath)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		var verrs config.ValidateErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				log.Printf("Config: %v", e)
			}
		}
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persist.Open(ctx, cfg.Files.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if *list {
		names, err := store.Boards(ctx)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	b, v, err := openBoard(ctx, store, *boardName, *openPath)
	if err != nil {
		return err
	}

	if *exportPath != "" {
		if err := export.PDF(b, *exportPath, cfg.BackgroundColor()); err != nil {
			return err
		}
		log.Printf("Export: wrote %s", *exportPath)
		return nil
	}

	scripts := script.NewLibrary(cfg.Files.Scripts)
	if err := scripts.Load(); err != nil {
		log.Printf("Script: %v", err)
	}
	if err := scripts.Watch(ctx); err != nil {
		log.Printf("Script: %v", err)
	}

	g := NewGame(ctx, cfg, store, scripts, *boardName, b, v)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
