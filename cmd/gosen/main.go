/*
Package main implements the morphological analysis CLI and IPC server.

Given text, the analyzer prints one line per token: the surface form, a
tab, then the comma-joined part-of-speech, conjugation, base form, reading
and pronunciation. An EOS line follows each analyzed input:

	gosen 大根を食べる

Without arguments, lines are read from stdin and analyzed one at a time.
With -serve, the process instead speaks the msgpack IPC protocol over
stdin/stdout for use as an analysis child process.

The dictionary directory defaults to the embedded dictionary; -dict and
-user select a compiled directory and an optional user dictionary merged
over it. Runtime options can also come from a TOML config file via
-config.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hkazuakey/lucene-gosen/internal/logger"
	"github.com/hkazuakey/lucene-gosen/pkg/config"
	"github.com/hkazuakey/lucene-gosen/pkg/sen"
	"github.com/hkazuakey/lucene-gosen/pkg/server"
	"github.com/hkazuakey/lucene-gosen/pkg/tagger"
)

const Version = "1.2.0"

func main() {
	cfgPath := flag.String("config", "", "Path to a TOML config file")
	dictDir := flag.String("dict", "", "Compiled dictionary directory (empty for the embedded dictionary)")
	userDir := flag.String("user", "", "User dictionary directory merged over the base dictionary")
	katakana := flag.Bool("katakana", false, "Group unknown katakana runs into single tokens")
	serve := flag.Bool("serve", false, "Run the msgpack IPC server on stdin/stdout")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	showVersion := flag.Bool("version", false, "Show current version")
	flag.Parse()

	if *showVersion {
		fmt.Println("gosen", Version)
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg := config.LoadConfigWithFallback(*cfgPath)
	if *dictDir != "" {
		cfg.Dict.Dir = *dictDir
	}
	if *userDir != "" {
		cfg.Dict.UserDir = *userDir
	}
	if *katakana {
		cfg.Dict.TokenizeUnknownKatakana = true
	}

	tg, err := sen.GetStringTagger(cfg.Dict.Dir, cfg.Dict.UserDir, cfg.Dict.TokenizeUnknownKatakana)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	tg.SetBufferSize(cfg.Tagger.BufferSize)

	if *serve {
		if err := server.NewServer(tg, os.Stdin, os.Stdout).Start(); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
		return
	}

	out := logger.New("gosen")
	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			if err := analyzeLine(tg, arg); err != nil {
				out.Errorf("analysis failed: %v", err)
				os.Exit(1)
			}
		}
		return
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if err := analyzeLine(tg, sc.Text()); err != nil {
			out.Errorf("analysis failed: %v", err)
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("Reading stdin: %v", err)
	}
}

// analyzeLine prints the token features of one input followed by the EOS
// marker.
func analyzeLine(tg *tagger.Tagger, text string) error {
	tokens, err := tg.Analyze(text)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(os.Stdout)
	for _, tk := range tokens {
		fmt.Fprintln(w, tk.Feature())
	}
	fmt.Fprintln(w, "EOS")
	return w.Flush()
}
