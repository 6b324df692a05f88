package config

import (
	"flag"
	"strings"

	"github.com/benbeisheim/duelchess/internal/model"
)

// FromFlags parses args with fs, loads the file named by -config and then
// applies every flag that was given explicitly on top of it.
func FromFlags(fs *flag.FlagSet, args []string) (*Config, error) {
	defaults := NewConfig()
	var (
		path     = fs.String("config", "", "YAML configuration file")
		listen   = fs.String("listen", defaults.ListenAddr, "Address the server listens on")
		origins  = fs.String("origins", strings.Join(defaults.AllowedOrigins, ","), "Comma separated CORS origins")
		dataDir  = fs.String("data-dir", defaults.DataDir, "Directory for persisted games (empty: keep games in memory)")
		logLevel = fs.String("log-level", defaults.LogLevel, "Log level: trace, debug, info, warn, error")
		interval = fs.Duration("match-interval", defaults.MatchmakingInterval, "How often the matchmaking queue is drained")
		glyphs   = fs.String("glyphs", string(defaults.Glyphs), "Board glyphs: unicode or ascii")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.ListenAddr = *listen
		case "origins":
			cfg.AllowedOrigins = splitList(*origins)
		case "data-dir":
			cfg.DataDir = *dataDir
		case "log-level":
			cfg.LogLevel = *logLevel
		case "match-interval":
			cfg.MatchmakingInterval = *interval
		case "glyphs":
			cfg.Glyphs = model.GlyphStyle(*glyphs)
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
