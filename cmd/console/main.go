// Command console plays a two-player game in the terminal. Each player types
// moves such as "e2 e4" or "b8 to c6"; "exit" ends the game.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/benbeisheim/duelchess/internal/config"
	"github.com/benbeisheim/duelchess/internal/console"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.FromFlags(flag.NewFlagSet("console", flag.ExitOnError), os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	log.SetOutput(os.Stderr)
	if err := cfg.ApplyLogging(); err != nil {
		log.Fatal(err)
	}

	session := console.NewSession(os.Stdin, os.Stdout, os.Stderr, cfg.Glyphs)
	if err := session.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
