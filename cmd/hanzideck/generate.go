package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hanzideck/hanzideck/internal/chinese"
	"github.com/hanzideck/hanzideck/internal/deckgen"
	"github.com/hanzideck/hanzideck/internal/dictionary/archchinese"
	"github.com/hanzideck/hanzideck/internal/dictionary/cedict"
	"github.com/hanzideck/hanzideck/internal/dictionary/forvo"
	"github.com/hanzideck/hanzideck/internal/dictionary/hanzi"
	"github.com/hanzideck/hanzideck/internal/lookup"
	"github.com/hanzideck/hanzideck/internal/vocab"
)

type generateOptions struct {
	inputFile            string
	deckName             string
	deckDescription      string
	tempFolder           string
	libsFolder           string
	audioRecordingsLimit int
	recursiveDict        bool
	recursiveCards       bool
	dictionaryPriority   []string
}

func registerGenerateFlags(flags *pflag.FlagSet, opts *generateOptions) {
	flags.StringVarP(&opts.inputFile, "input-file", "c", "", "File with Chinese characters, words and/or sentences, one per line")
	flags.StringVarP(&opts.deckName, "deck-name", "n", "NewDeck", "Name of the deck to be created")
	flags.StringVarP(&opts.deckDescription, "deck-description", "d", "A new deck", "Description of the deck to be created")
	flags.StringVarP(&opts.tempFolder, "temp-folder", "t", "", "Folder to be used/created for temporary files")
	flags.StringVarP(&opts.libsFolder, "libs-folder", "l", "", "Folder holding libraries for the card templates")
	flags.IntVarP(&opts.audioRecordingsLimit, "audio-recordings-limit", "a", 1, "Max audio recordings per item (-1: all, 0: none)")
	flags.BoolVar(&opts.recursiveDict, "recursive-dict", true, "Download media and dictionary info for every extracted word, character and component")
	flags.BoolVar(&opts.recursiveCards, "recursive-cards", false, "Add cards for every extracted word, character and component")
	flags.StringSliceVarP(&opts.dictionaryPriority, "dictionary-priority-list", "p", []string{"hanzi", "cedict", "forvo", "archchinese"}, "Dictionaries to gather data from, highest priority first")
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	command := &cobra.Command{
		Use:   "generate <apkg-output-file>",
		Short: "Generate an Anki package from a vocabulary input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}
	registerGenerateFlags(command.Flags(), &opts)
	return command
}

func runGenerate(cmd *cobra.Command, outputPath string, opts generateOptions) error {
	if opts.inputFile == "" {
		return fmt.Errorf("--input-file is required")
	}
	sources, err := dictionarySources(opts.dictionaryPriority)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Dictionaries.Hanzi.SourceDirectory == "" {
		return fmt.Errorf("dictionaries.hanzi.source_directory is not configured")
	}

	input, err := vocab.ParseFile(opts.inputFile)
	if err != nil {
		return err
	}

	charDict := hanzi.New(cfg.Dictionaries.Hanzi.SourceDirectory)

	var wordDict deckgen.WordDictionary
	if sources["cedict"] {
		dict := cedict.New(cfg.Dictionaries.CEDICT.File, cfg.Dictionaries.CEDICT.DownloadURL)
		defer func() {
			_ = dict.Close()
		}()
		wordDict = dict
	}

	var searcher deckgen.OnlineSearcher
	caches := deckgen.Caches{}
	if sources["archchinese"] {
		client := archchinese.New(cfg.Dictionaries.ArchChinese.BaseURL)
		defer func() {
			_ = client.Close()
		}()
		searcher = client

		caches.Words, err = lookup.Open[[]archchinese.Word](cfg.Caches.WordCacheFile())
		if err != nil {
			return err
		}
		caches.Sentences, err = lookup.Open[[]archchinese.Sentence](cfg.Caches.SentenceCacheFile())
		if err != nil {
			return err
		}
		// Flush even when the run aborts so finished lookups survive.
		defer flushCache(caches.Words, "words")
		defer flushCache(caches.Sentences, "sentences")
	}

	var audio deckgen.AudioDownloader
	if sources["forvo"] {
		client := forvo.New(cfg.Dictionaries.Forvo.BaseURL, cfg.Dictionaries.Forvo.AudioBaseURL)
		defer func() {
			_ = client.Close()
		}()
		audio = client
	}

	tempFolder := opts.tempFolder
	if tempFolder == "" {
		tempFolder = cfg.Generator.StagingDirectory
	}
	libsFolder := opts.libsFolder
	if libsFolder == "" {
		libsFolder = cfg.Generator.LibsDirectory
	}

	generator := deckgen.New(charDict, wordDict, searcher, audio, chinese.NewConverter(), caches)
	path, err := generator.Generate(cmd.Context(), input, deckgen.Options{
		OutputPath:      outputPath,
		DeckName:        opts.deckName,
		DeckDescription: opts.deckDescription,
		StagingDir:      tempFolder,
		LibsDir:         libsFolder,
		AudioCacheDir:   cfg.Caches.AudioDirectory(),
		AudioLimit:      opts.audioRecordingsLimit,
		RecursiveDict:   opts.recursiveDict,
		RecursiveCards:  opts.recursiveCards,
	})
	if err != nil {
		return err
	}

	color.Green("Successfully generated %s!", path)
	return nil
}

func dictionarySources(priority []string) (map[string]bool, error) {
	sources := map[string]bool{}
	for _, name := range priority {
		switch name {
		case "hanzi", "cedict", "forvo", "archchinese":
			sources[name] = true
		default:
			return nil, fmt.Errorf("unknown dictionary %q in priority list", name)
		}
	}
	if !sources["hanzi"] {
		return nil, fmt.Errorf("the hanzi dictionary cannot be disabled")
	}
	return sources, nil
}

func flushCache[T any](cache *lookup.Cache[T], name string) {
	if err := cache.Flush(); err != nil {
		slog.Default().Warn("failed to flush lookup cache",
			slog.String("cache", name),
			slog.Any("error", err),
		)
	}
}
