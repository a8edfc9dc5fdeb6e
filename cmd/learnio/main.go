package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/learnio/learnio/internal/app"
	"github.com/learnio/learnio/internal/model"
	"github.com/learnio/learnio/internal/prefs"
	"github.com/learnio/learnio/internal/speech"
	"github.com/learnio/learnio/internal/state"
	"github.com/learnio/learnio/internal/theme"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the configuration file")
	dataPath := flag.String("data", model.DefaultDataPath(), "path to the preference database")
	flag.Parse()

	if err := run(*configPath, *dataPath); err != nil {
		fmt.Fprintf(os.Stderr, "learnio: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	p, err := prefs.New(dataPath)
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}
	defer p.Close()

	themeChoice := model.Theme(cfg.Display.Theme)
	language := model.Language(cfg.Display.Language)
	theme.Apply(themeChoice)

	store, err := state.New(p, themeChoice, language)
	if err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}

	engine := speech.NewESpeakEngine(cfg.Speech.Binary)
	synth := speech.NewSynthesizer(engine)
	recognizer := speech.NewRecognizer(nil)

	m := app.New(cfg, store, recognizer, synth)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
