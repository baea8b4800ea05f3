package server

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/nuggets/model"
)

type Config struct {
	MapFile    string
	Seed       int64
	Port       string
	LogFile    string
	LogLevel   string
	MarginCols int
	MarginRows int
}

// LoadConfig reads the command line. The port falls back to $PORT and then
// to 8080; without -seed the clock seeds the game.
func LoadConfig(args []string, getenv func(string) string) (*Config, error) {
	fs := flag.NewFlagSet("nuggets", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg := &Config{}
	var seed string
	fs.StringVar(&cfg.MapFile, "map", "", "map file")
	fs.StringVar(&seed, "seed", "", "random seed (integer)")
	fs.StringVar(&cfg.Port, "port", getenv("PORT"), "listen port")
	fs.StringVar(&cfg.LogFile, "log", "", "log file, stderr when empty")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level")
	fs.IntVar(&cfg.MarginCols, "margin-cols", 0, "outer columns players may not enter")
	fs.IntVar(&cfg.MarginRows, "margin-rows", 0, "outer rows players may not enter")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// the map may also be given as the first positional argument
	if cfg.MapFile == "" && fs.NArg() > 0 {
		cfg.MapFile = fs.Arg(0)
	}
	if cfg.MapFile == "" {
		return nil, errors.New("usage: server -map map.txt [-seed n] [-port p]")
	}
	if seed == "" && fs.NArg() > 1 {
		seed = fs.Arg(1)
	}
	if seed == "" {
		cfg.Seed = time.Now().UnixNano()
	} else {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("seed %q is not a valid non-negative integer", seed)
		}
		cfg.Seed = n
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Defaulting to port %s", cfg.Port)
	}
	if cfg.MarginCols < 0 || cfg.MarginRows < 0 {
		return nil, errors.New("margins must not be negative")
	}
	return cfg, nil
}

func (c *Config) Bounds() model.Bounds {
	return model.Bounds{MarginCols: c.MarginCols, MarginRows: c.MarginRows}
}

// Load reads the map file into a grid.
func Load(path string) (*model.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("failed opening file: %s", err)
		return nil, fmt.Errorf("%w: %v", model.ErrFatalLoad, err)
	}
	defer file.Close()
	return model.ReadGrid(file)
}
