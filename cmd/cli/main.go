package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/minaorangina/tray"
	"github.com/minaorangina/tray/level"
)

func main() {
	levelID := flag.Int("level", 1, "level to play")
	dir := flag.String("dir", "levels", "directory holding level files")
	random := flag.Bool("random", false, "deal a random layout instead of a level")
	playfieldSize := flag.Int("playfield", 12, "playfield size for a random layout")
	stackSize := flag.Int("stack", 10, "stack size for a random layout")
	seed := flag.Int64("seed", 0, "seed for a random layout (0 uses the clock)")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	var layout level.Layout
	if *random {
		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}
		fmt.Printf("Dealing seed %d\n", *seed)
		layout = level.Random(rand.New(rand.NewSource(*seed)), *playfieldSize, *stackSize)
	} else {
		var err error
		layout, err = level.Load(level.NewFileProvider(*dir), *levelID)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	opts := tray.SessionOpts{
		ID:      "cli",
		LevelID: *levelID,
		Layout:  layout,
	}
	if *verbose {
		opts.Logger = log.New(os.Stderr, "", log.Ltime)
	}

	session, err := tray.NewSession(opts)
	if err != nil {
		log.Fatal("Could not start game: ", err)
	}

	err = tray.Play(session, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, tray.ErrQuit) && err != io.EOF {
		log.Fatal(err.Error())
	}
}
