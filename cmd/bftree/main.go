package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vchandela/bftree/bftree"
	"github.com/vchandela/bftree/internal/cli"
	"github.com/vchandela/bftree/internal/seed"
)

var (
	shouldSeed     *bool
	seedNumRecords *int
	debug          *bool
)

func setupFlags() {
	shouldSeed = flag.Bool("seed", false, "Seed the tree using records created with go-faker.")
	seedNumRecords = flag.Int("records", 1000, "Amount of records to seed the tree with upon startup.")
	debug = flag.Bool("debug", false, "Run invariant assertions after every mutation.")
	flag.Usage = func() {
		fmt.Println("\nBuffered Tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}

func main() {
	setupFlags()

	logger := logrus.New()
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	tree, err := bftree.New[string, string](bftree.Options[string, string]{
		Compare: strings.Compare,
		Logger:  logger,
		Debug:   *debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *shouldSeed {
		for _, p := range seed.Generate(*seedNumRecords) {
			tree.Put(p.Key, p.Value)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	demo := cli.New(scanner, os.Stdout, tree)
	demo.Start()
}
