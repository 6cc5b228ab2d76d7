// File: cmd/ec4xd/main.go
// Project: EC4X Engine
// Description: EC4X daemon CLI: create, run, and inspect games (§6.5)
// Version: 1.0.0
// Created: 2026-07-30

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ec4x/engine/internal/engine"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/logger"
	"github.com/ec4x/engine/internal/persistence"
	"github.com/ec4x/engine/internal/rules"
	"github.com/ec4x/engine/internal/tui"
	"github.com/google/uuid"
)

// Exit codes per §6.5: 0 success, 1 usage error, 2 not found, 3 internal
// (persistence/engine) error.
const (
	exitOK         = 0
	exitUsage      = 1
	exitNotFound   = 2
	exitInternal   = 3
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	log = logger.WithComponent("main")
)

func main() {
	logCfg := logger.Config{Level: "info", ToStdout: true, WithCaller: true}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(exitInternal)
	}
	defer logger.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitUsage)
	}

	var code int
	switch os.Args[1] {
	case "new":
		code = cmdNew(os.Args[2:])
	case "start":
		code = cmdStart(os.Args[2:])
	case "status":
		code = cmdStatus(os.Args[2:])
	case "admin-enroll":
		code = cmdAdminEnroll(os.Args[2:])
	case "invite":
		code = cmdInvite(os.Args[2:])
	case "version":
		fmt.Printf("ec4xd %s (commit: %s, built: %s)\n", version, commit, date)
		code = exitOK
	default:
		printUsage()
		code = exitUsage
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: ec4xd <new|start|status|admin-enroll|invite|version> [flags]")
	fmt.Fprintln(os.Stderr, "  new          --name <str> [--scenario <path>]")
	fmt.Fprintln(os.Stderr, "  start        --game <id> [--poll <seconds>]")
	fmt.Fprintln(os.Stderr, "  status       [--tui --house <id>] <game_id>")
	fmt.Fprintln(os.Stderr, "  admin-enroll --qr-out <path>")
	fmt.Fprintln(os.Stderr, "  invite       --game <id> --slot <n> --totp-secret <str> --totp-code <code>")
}

// cmdAdminEnroll implements "admin-enroll --qr-out <path>": mints a new
// operator TOTP secret and writes its enrollment QR code to disk. The
// secret itself is printed once to stdout — the operator is expected to
// store it (e.g. in an environment variable) for use with "invite".
func cmdAdminEnroll(args []string) int {
	fs := flag.NewFlagSet("admin-enroll", flag.ContinueOnError)
	qrOut := fs.String("qr-out", "ec4x-admin-totp.png", "path to write the enrollment QR code PNG")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	secret, qrPNG, err := persistence.EnrollOperator("ec4x-operator")
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin-enroll: %v\n", err)
		return exitInternal
	}
	if err := os.WriteFile(*qrOut, qrPNG, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "admin-enroll: write qr code: %v\n", err)
		return exitInternal
	}

	fmt.Printf("operator totp secret: %s\n", secret)
	fmt.Printf("enrollment qr written to %s\n", *qrOut)
	return exitOK
}

// cmdInvite implements "invite --game <id> --slot <n> --totp-secret <str>
// --totp-code <code>" (§4.12): mints a single-use join code for a house
// slot, gated on a valid operator TOTP code so minting invites requires the
// same 2FA as any other privileged operator action.
func cmdInvite(args []string) int {
	fs := flag.NewFlagSet("invite", flag.ContinueOnError)
	gameID := fs.String("game", "", "game id to invite into")
	slot := fs.Int("slot", 0, "house slot index")
	totpSecret := fs.String("totp-secret", "", "operator totp secret from admin-enroll")
	totpCode := fs.String("totp-code", "", "current 6-digit totp code")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *gameID == "" || *totpSecret == "" || *totpCode == "" {
		fmt.Fprintln(os.Stderr, "invite: --game, --totp-secret, and --totp-code are required")
		return exitUsage
	}
	if !persistence.VerifyOperatorCode(*totpSecret, *totpCode) {
		fmt.Fprintln(os.Stderr, "invite: invalid totp code")
		return exitUsage
	}

	db, err := persistence.NewDB(persistence.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invite: connect database: %v\n", err)
		return exitInternal
	}
	defer db.Close()

	code, err := db.CreateInvite(context.Background(), *gameID, *slot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invite: %v\n", err)
		return exitInternal
	}
	fmt.Println(code)
	return exitOK
}

// cmdNew implements "new --name <str> --scenario <path>" (§6.5): builds a
// GameSetup (from the scenario file if given, else the built-in
// quickstart), creates the game, and persists its initial snapshot.
func cmdNew(args []string) int {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	name := fs.String("name", "", "game name")
	scenarioPath := fs.String("scenario", "", "path to a GameSetup JSON scenario file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "new: --name is required")
		return exitUsage
	}

	setup, err := loadSetup(*scenarioPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new: %v\n", err)
		return exitUsage
	}
	setup.Name = *name

	snap := rules.Default()
	gameID := uuid.New().String()
	g, err := engine.NewGame(gameID, setup, snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new: %v\n", err)
		return exitInternal
	}

	db, err := persistence.NewDB(persistence.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "new: connect database: %v\n", err)
		return exitInternal
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.RunMigrations(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "new: run migrations: %v\n", err)
		return exitInternal
	}

	setupJSON, err := json.Marshal(setup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new: marshal setup: %v\n", err)
		return exitInternal
	}
	configJSON, err := json.Marshal(snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new: marshal config: %v\n", err)
		return exitInternal
	}
	rec := persistence.GameRecord{
		GameID: gameID, Name: *name, Seed: setup.Seed, Turn: 0,
		SetupJSON: setupJSON, ConfigJSON: configJSON, ConfigHash: g.ConfigHash,
	}
	if err := db.CreateGame(ctx, rec); err != nil {
		fmt.Fprintf(os.Stderr, "new: create game record: %v\n", err)
		return exitInternal
	}
	if err := db.FullSave(ctx, gameID, g.State); err != nil {
		fmt.Fprintf(os.Stderr, "new: save initial state: %v\n", err)
		return exitInternal
	}

	fmt.Println(gameID)
	log.Info("Created game: id=%s name=%s houses=%d", gameID, *name, len(g.Houses))
	return exitOK
}

func loadSetup(scenarioPath string) (engine.GameSetup, error) {
	if scenarioPath == "" {
		return engine.DefaultSetup(time.Now().UnixNano()), nil
	}
	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return engine.GameSetup{}, fmt.Errorf("read scenario file: %w", err)
	}
	var setup engine.GameSetup
	if err := json.Unmarshal(data, &setup); err != nil {
		return engine.GameSetup{}, fmt.Errorf("parse scenario file: %w", err)
	}
	return setup, nil
}

// cmdStart implements "start --game <id> --poll <seconds>" (§6.5): loads
// the game, then advances one turn every poll interval until interrupted,
// persisting after each turn.
func cmdStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	gameID := fs.String("game", "", "game id to run")
	poll := fs.Int("poll", 60, "seconds between turn advances")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *gameID == "" {
		fmt.Fprintln(os.Stderr, "start: --game is required")
		return exitUsage
	}

	db, err := persistence.NewDB(persistence.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: connect database: %v\n", err)
		return exitInternal
	}
	defer db.Close()

	ctx := context.Background()
	rec, err := db.GetGame(ctx, *gameID)
	if err == persistence.ErrNotFound {
		fmt.Fprintf(os.Stderr, "start: game %s not found\n", *gameID)
		return exitNotFound
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: load game record: %v\n", err)
		return exitInternal
	}

	var snap rules.Snapshot
	if err := json.Unmarshal(rec.ConfigJSON, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "start: decode config: %v\n", err)
		return exitInternal
	}
	var setup engine.GameSetup
	if err := json.Unmarshal(rec.SetupJSON, &setup); err != nil {
		fmt.Fprintf(os.Stderr, "start: decode setup: %v\n", err)
		return exitInternal
	}

	state, err := db.FullLoad(ctx, *gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: load state: %v\n", err)
		return exitInternal
	}
	houseIDs := state.Houses.Ids()

	g, err := engine.LoadGame(*gameID, state, &snap, houseIDs, setup.PrestigeTarget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: reconstruct game: %v\n", err)
		return exitInternal
	}

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("Starting turn loop: game=%s poll=%ds turn=%d", *gameID, *poll, g.State.Turn)
	ticker := time.NewTicker(time.Duration(*poll) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigCtx.Done():
			log.Info("Shutdown signal received, stopping turn loop")
			return exitOK
		case <-ticker.C:
			report := g.AdvanceTurn()
			if err := db.FullSave(ctx, *gameID, g.State); err != nil {
				log.Error("Failed to persist turn %d: error=%v", report.Turn, err)
				return exitInternal
			}
			log.Info("Advanced turn: game=%s turn=%d", *gameID, report.Turn)
		}
	}
}

// cmdStatus implements "status <game_id>" (§6.5): reports the game's name,
// seed, and current turn.
func cmdStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	asTUI := fs.Bool("tui", false, "render the named house's PlayerState in the terminal viewer")
	house := fs.Int("house", 0, "house id to render (with --tui)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "status: expected exactly one game id")
		return exitUsage
	}
	gameID := fs.Arg(0)

	db, err := persistence.NewDB(persistence.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: connect database: %v\n", err)
		return exitInternal
	}
	defer db.Close()

	ctx := context.Background()
	rec, err := db.GetGame(ctx, gameID)
	if err == persistence.ErrNotFound {
		fmt.Fprintf(os.Stderr, "status: game %s not found\n", gameID)
		return exitNotFound
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
		return exitInternal
	}

	if !*asTUI {
		fmt.Printf("game_id: %s\n", rec.GameID)
		fmt.Printf("name:    %s\n", rec.Name)
		fmt.Printf("seed:    %d\n", rec.Seed)
		fmt.Printf("turn:    %d\n", rec.Turn)
		fmt.Printf("created: %s\n", rec.CreatedAt.Format(time.RFC3339))
		return exitOK
	}

	var snap rules.Snapshot
	if err := json.Unmarshal(rec.ConfigJSON, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "status: decode config: %v\n", err)
		return exitInternal
	}
	var setup engine.GameSetup
	if err := json.Unmarshal(rec.SetupJSON, &setup); err != nil {
		fmt.Fprintf(os.Stderr, "status: decode setup: %v\n", err)
		return exitInternal
	}
	state, err := db.FullLoad(ctx, gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: load state: %v\n", err)
		return exitInternal
	}
	g, err := engine.LoadGame(gameID, state, &snap, state.Houses.Ids(), setup.PrestigeTarget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: reconstruct game: %v\n", err)
		return exitInternal
	}
	ps, err := g.PlayerState(ids.HouseId(*house))
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
		return exitInternal
	}
	if err := tui.Run(ps); err != nil {
		fmt.Fprintf(os.Stderr, "status: tui: %v\n", err)
		return exitInternal
	}
	return exitOK
}
