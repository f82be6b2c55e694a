package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"keyterm"
	"keyterm/internal/common"
)

func main() {
	var (
		langFlag   = flag.String("lang", "en", "sentence language: en, ja or zh")
		splitFlag  = flag.String("split", "C", "japanese split mode: A, B or C")
		dictFlag   = flag.String("dict", "ipa", "japanese dictionary: ipa or uni")
		taggerFlag = flag.String("tagger", "", "CoreNLP compatible server URL for english")
		fileFlag   = flag.String("f", "", "read sentences from file and extract in parallel")
		workers    = flag.Int("j", 4, "batch worker count")
		configFlag = flag.String("c", "", "yaml config file, overrides other flags")
		stem       = flag.Bool("stem", false, "stem english tokens")
	)
	flag.Parse()

	lang, err := keyterm.ParseLanguage(*langFlag)
	if err != nil {
		common.FAIL("%v", err)
		os.Exit(1)
	}

	opts := keyterm.Options{
		TaggerURL: *taggerFlag,
		JaDict:    *dictFlag,
		Stem:      *stem,
	}
	if opts.JaSplit, err = keyterm.ParseSplitMode(*splitFlag); err != nil {
		common.FAIL("%v", err)
		os.Exit(1)
	}
	if *configFlag != "" {
		if opts, err = keyterm.LoadOptions(*configFlag); err != nil {
			common.FAIL("%v", err)
			os.Exit(1)
		}
	}

	ext, err := keyterm.New(opts)
	if err != nil {
		common.FAIL("init extractor: %v", err)
		os.Exit(1)
	}
	defer ext.Close()

	if *fileFlag != "" {
		extractFile(ext, lang, *fileFlag, *workers)
		return
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		res, err := ext.Tokenize(lang, line, nil)
		if err != nil {
			common.WARN("extract: %v", err)
			continue
		}
		printResult(res)
	}
}

func extractFile(ext *keyterm.Extractor, lang keyterm.Language, path string, workers int) {
	f, err := os.Open(path)
	if err != nil {
		common.FAIL("open %s: %v", path, err)
		os.Exit(1)
	}
	defer f.Close()

	var sentences []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			sentences = append(sentences, line)
		}
	}

	t := time.Now()
	results, err := ext.Batch(lang, sentences, workers)
	if err != nil {
		common.WARN("batch: %v", err)
	}
	common.INFO("extracted %v sentences in %v", len(sentences), time.Since(t))
	for i, res := range results {
		fmt.Printf("--- %s\n", sentences[i])
		printResult(res)
	}
}

func printResult(res keyterm.Result) {
	fmt.Printf("tokens : %s\n", strings.Join(res.Tokens, " "))
	fmt.Printf("phrases: %s\n", strings.Join(res.Phrases, " "))
}
