// Package deckgen turns a parsed vocabulary file into a complete Anki
// package: decks, models, notes, cards, pronunciation audio and the
// embedded reference dictionaries.
package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hanzideck/hanzideck/internal/anki"
	"github.com/hanzideck/hanzideck/internal/chinese"
	"github.com/hanzideck/hanzideck/internal/dictionary/archchinese"
	"github.com/hanzideck/hanzideck/internal/dictionary/cedict"
	"github.com/hanzideck/hanzideck/internal/dictionary/forvo"
	"github.com/hanzideck/hanzideck/internal/dictionary/hanzi"
	"github.com/hanzideck/hanzideck/internal/dissect"
	"github.com/hanzideck/hanzideck/internal/lookup"
	"github.com/hanzideck/hanzideck/internal/vocab"
)

//go:generate mockgen -source=deckgen.go -destination=../mocks/deckgen/mock_lookups.go -package=mock_deckgen

// CharDictionary provides per-character data and stroke order diagrams.
type CharDictionary interface {
	CharData(ctx context.Context, chars ...string) (map[string]*hanzi.CharData, error)
	AllCharData(ctx context.Context) (map[string]*hanzi.CharData, error)
	StillSVGPath(char string) string
}

// WordDictionary provides offline word definitions.
type WordDictionary interface {
	Ensure(ctx context.Context) error
	LookupAll(ctx context.Context, words ...string) (map[string]cedict.Entry, error)
}

// OnlineSearcher looks up words and sentences the offline dictionaries do
// not cover.
type OnlineSearcher interface {
	SearchWords(ctx context.Context, query string, limit, offset int) ([]archchinese.Word, error)
	SearchSentences(ctx context.Context, query string, limit, offset int) ([]archchinese.Sentence, error)
}

// AudioDownloader fetches pronunciation recordings into a cache directory.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, targetDir, text string, limit int) ([]string, error)
}

// searchPageSize is how many results one online search requests.
const searchPageSize = 25

// maxStrokeDiagrams caps how many stroke order SVGs are bundled into one
// package.
const maxStrokeDiagrams = 3000

// Options steer one generation run.
type Options struct {
	OutputPath      string
	DeckName        string
	DeckDescription string
	StagingDir      string
	LibsDir         string
	AudioCacheDir   string

	// AudioLimit is the per-item recording cap: -1 downloads every
	// recording, 0 disables audio entirely.
	AudioLimit int

	// RecursiveDict extends dictionary and audio lookups to every word,
	// character and component extracted from the input entries.
	RecursiveDict bool
	// RecursiveCards additionally creates cards for the extracted items.
	RecursiveCards bool
}

// Caches memoize online search results across runs.
type Caches struct {
	Words     *lookup.Cache[[]archchinese.Word]
	Sentences *lookup.Cache[[]archchinese.Sentence]
}

// Generator wires the dictionaries, the online searcher and the audio
// source into one package build.
type Generator struct {
	charDict  CharDictionary
	wordDict  WordDictionary
	searcher  OnlineSearcher
	audio     AudioDownloader
	converter *chinese.Converter
	caches    Caches
	logger    *slog.Logger
}

// New creates a generator.
func New(charDict CharDictionary, wordDict WordDictionary, searcher OnlineSearcher, audio AudioDownloader, converter *chinese.Converter, caches Caches) *Generator {
	return &Generator{
		charDict:  charDict,
		wordDict:  wordDict,
		searcher:  searcher,
		audio:     audio,
		converter: converter,
		caches:    caches,
		logger:    slog.Default(),
	}
}

// resolvedItem is one vocabulary item with its card field values, ordered
// like cardFaces.
type resolvedItem struct {
	Text   string
	Fields []string
}

// Generate builds the package and returns the path of the written file.
func (g *Generator) Generate(ctx context.Context, input *vocab.File, opts Options) (string, error) {
	if err := os.Remove(opts.OutputPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove previous output: %w", err)
	}

	pkg := anki.NewPackage(opts.OutputPath, opts.StagingDir)
	if err := pkg.Init(ctx); err != nil {
		return "", err
	}
	// On abort this removes the half-written staging directory; after a
	// successful Finalize it is a no-op.
	defer func() {
		_ = pkg.Discard()
	}()

	if err := g.addTemplateLibs(pkg, opts.LibsDir); err != nil {
		return "", err
	}

	baseDeck, _, err := pkg.AddDeck(ctx, anki.DeckSpec{
		Name: opts.DeckName,
		Desc: opts.DeckDescription,
	})
	if err != nil {
		return "", err
	}

	items := g.deckItems(input)

	allCharData, err := g.charDict.AllCharData(ctx)
	if err != nil {
		return "", err
	}

	dissector := dissect.New(decompositionIndex(allCharData), g.converter)
	groups, err := dissector.Dissect(ctx, items, opts.RecursiveDict)
	if err != nil {
		return "", err
	}

	charData := g.collectCharData(allCharData, groups, opts.RecursiveDict)
	wordEntries, err := g.lookupWords(ctx, groups, opts.RecursiveDict)
	if err != nil {
		return "", err
	}

	for _, deckName := range input.DeckOrder {
		group := groups[deckName]
		if group == nil {
			// Every entry of the deck was blank, so there is nothing to dissect.
			g.logger.Warn("skipping deck without usable entries", slog.String("deck", deckName))
			continue
		}
		resolved, err := g.resolveGroup(ctx, group, charData, wordEntries, opts.RecursiveCards)
		if err != nil {
			return "", err
		}
		if err := g.buildSubdecks(ctx, pkg, baseDeck, deckName, resolved); err != nil {
			return "", err
		}
	}

	if err := g.downloadAudio(ctx, pkg, groups, charData, opts); err != nil {
		return "", err
	}

	if err := g.addDictionaries(ctx, pkg, baseDeck.ID, charData, allCharData); err != nil {
		return "", err
	}

	return pkg.Finalize(ctx)
}

// addTemplateLibs bundles the shared template assets (jquery, bootstrap)
// as media. A missing libs folder is only worth a warning; the cards
// degrade to unstyled HTML.
func (g *Generator) addTemplateLibs(pkg *anki.Package, libsDir string) error {
	entries, err := os.ReadDir(libsDir)
	if os.IsNotExist(err) {
		g.logger.Warn("template libs folder is missing, cards will be unstyled",
			slog.String("libsDir", libsDir),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("os.ReadDir(%s) > %w", libsDir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		paths = append(paths, filepath.Join(libsDir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil
	}
	return pkg.AddMedia(paths...)
}

// deckItems converts the parsed input into dissectable items, filling in
// whichever of the simplified and traditional forms a line omitted.
func (g *Generator) deckItems(input *vocab.File) map[string][]dissect.Item {
	items := make(map[string][]dissect.Item, len(input.Decks))
	for deckName, entries := range input.Decks {
		for _, entry := range entries {
			item := dissect.Item{
				Simplified:  entry["simplified"],
				Traditional: entry["traditional"],
			}
			if item.Simplified == "" && item.Traditional != "" {
				item.Simplified = g.converter.ToSimplified(item.Traditional)
			}
			if item.Traditional == "" && item.Simplified != "" {
				item.Traditional = g.converter.ToTraditional(item.Simplified)
			}
			if item.Simplified == "" {
				continue
			}
			items[deckName] = append(items[deckName], item)
		}
	}
	return items
}

// collectCharData picks the dictionary entries for every character in
// dictionary scope and fills in their traditional forms.
func (g *Generator) collectCharData(allCharData map[string]*hanzi.CharData, groups map[string]*dissect.Group, recursive bool) map[string]*hanzi.CharData {
	collected := map[string]*hanzi.CharData{}
	for _, group := range groups {
		chars := group.Chars
		if recursive {
			chars = group.AllChars()
		}
		for _, item := range chars {
			entry, ok := allCharData[item.Simplified]
			if !ok {
				g.logger.Warn("character is not in the dictionary",
					slog.String("char", item.Simplified),
				)
				continue
			}
			entry.Traditional = g.converter.ToTraditional(entry.Character)
			collected[entry.Character] = entry
		}
	}
	return collected
}

func (g *Generator) lookupWords(ctx context.Context, groups map[string]*dissect.Group, recursive bool) (map[string]cedict.Entry, error) {
	var words []string
	for _, group := range groups {
		list := group.Words
		if recursive {
			list = group.AllWords()
		}
		for _, item := range list {
			words = append(words, item.Simplified)
		}
	}
	if len(words) == 0 || g.wordDict == nil {
		return map[string]cedict.Entry{}, nil
	}
	if err := g.wordDict.Ensure(ctx); err != nil {
		return nil, err
	}
	entries, err := g.wordDict.LookupAll(ctx, words...)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// resolveGroup turns a group's items into card field tuples: sentences via
// the online searcher, words via the offline dictionary with an online
// fallback, characters via the character dictionary. Items nothing can
// resolve are skipped with a warning.
func (g *Generator) resolveGroup(ctx context.Context, group *dissect.Group, charData map[string]*hanzi.CharData, wordEntries map[string]cedict.Entry, recursiveCards bool) ([]resolvedItem, error) {
	var resolved []resolvedItem

	for _, sentence := range group.Sentences {
		item, ok, err := g.resolveSentence(ctx, sentence)
		if err != nil {
			return nil, err
		}
		if ok {
			resolved = append(resolved, item)
		}
	}

	words := group.Words
	chars := group.Chars
	if recursiveCards {
		words = group.AllWords()
		chars = group.AllChars()
	}
	for _, word := range words {
		item, ok, err := g.resolveWord(ctx, word, wordEntries)
		if err != nil {
			return nil, err
		}
		if ok {
			resolved = append(resolved, item)
		}
	}
	for _, char := range chars {
		entry, ok := charData[char.Simplified]
		if !ok {
			continue
		}
		resolved = append(resolved, resolvedItem{
			Text:   char.Simplified,
			Fields: noteFields(char.Simplified, strings.Join(entry.Pinyin, " / "), entry.Definition),
		})
	}
	return resolved, nil
}

func (g *Generator) resolveSentence(ctx context.Context, sentence dissect.Item) (resolvedItem, bool, error) {
	if g.searcher == nil {
		g.logger.Warn("no sentence source is enabled, skipping",
			slog.String("sentence", sentence.Simplified),
		)
		return resolvedItem{}, false, nil
	}

	results, cached := g.cachedSentences(sentence.Simplified)
	if !cached {
		var err error
		results, err = g.searcher.SearchSentences(ctx, sentence.Simplified, searchPageSize, 0)
		if errors.Is(err, archchinese.ErrUnavailable) {
			g.logger.Warn("sentence search is unavailable, skipping",
				slog.String("sentence", sentence.Simplified),
				slog.Any("error", err),
			)
			return resolvedItem{}, false, nil
		}
		if err != nil {
			return resolvedItem{}, false, err
		}
	}

	compact := stripSpaces(sentence.Simplified)
	var matches []archchinese.Sentence
	for _, result := range results {
		if stripSpaces(result.Simplified) == compact || stripSpaces(result.Traditional) == compact {
			matches = append(matches, result)
		}
	}
	if len(matches) == 0 {
		g.logger.Warn("no sentence match found, skipping",
			slog.String("sentence", sentence.Simplified),
		)
		return resolvedItem{}, false, nil
	}
	if g.caches.Sentences != nil {
		g.caches.Sentences.Set(sentence.Simplified, matches)
	}

	match := matches[0]
	return resolvedItem{
		Text:   sentence.Simplified,
		Fields: noteFields(sentence.Simplified, match.Pinyin, strings.Join(match.English, "; ")),
	}, true, nil
}

func (g *Generator) resolveWord(ctx context.Context, word dissect.Item, wordEntries map[string]cedict.Entry) (resolvedItem, bool, error) {
	if entry, ok := wordEntries[word.Simplified]; ok {
		return resolvedItem{
			Text:   word.Simplified,
			Fields: noteFields(word.Simplified, entry.Pinyin, strings.Join(entry.English, "; ")),
		}, true, nil
	}

	results, cached := g.cachedWords(word.Simplified)
	if !cached && g.searcher != nil {
		var err error
		results, err = g.searcher.SearchWords(ctx, word.Simplified, searchPageSize, 0)
		if errors.Is(err, archchinese.ErrUnavailable) {
			g.logger.Warn("word search is unavailable, skipping",
				slog.String("word", word.Simplified),
				slog.Any("error", err),
			)
			return resolvedItem{}, false, nil
		}
		if err != nil {
			return resolvedItem{}, false, err
		}
	}

	var matches []archchinese.Word
	for _, result := range results {
		if result.Simplified == word.Simplified || result.Traditional == word.Simplified {
			matches = append(matches, result)
		}
	}
	if len(matches) == 0 {
		g.logger.Warn("word is in no dictionary, skipping",
			slog.String("word", word.Simplified),
		)
		return resolvedItem{}, false, nil
	}
	if g.caches.Words != nil {
		g.caches.Words.Set(word.Simplified, matches)
	}

	match := matches[0]
	return resolvedItem{
		Text:   word.Simplified,
		Fields: noteFields(word.Simplified, match.Pinyin, strings.Join(match.English, "; ")),
	}, true, nil
}

func (g *Generator) cachedSentences(text string) ([]archchinese.Sentence, bool) {
	if g.caches.Sentences == nil {
		return nil, false
	}
	return g.caches.Sentences.Get(text)
}

func (g *Generator) cachedWords(text string) ([]archchinese.Word, bool) {
	if g.caches.Words == nil {
		return nil, false
	}
	return g.caches.Words.Get(text)
}

// buildSubdecks creates one subdeck and one single-template model per card
// face under baseDeck::groupName, then one note and one card per resolved
// item and face.
func (g *Generator) buildSubdecks(ctx context.Context, pkg *anki.Package, baseDeck anki.Deck, groupName string, resolved []resolvedItem) error {
	for _, face := range cardFaces {
		deckName := baseDeck.Name
		if groupName != "" {
			deckName += "::" + groupName
		}
		deckName += "::" + face.Name

		subdeck, _, err := pkg.AddDeck(ctx, anki.DeckSpec{
			Name: deckName,
			Desc: "Subdeck for learning by " + face.Name,
		})
		if err != nil {
			return err
		}

		qfmt, err := renderQuestionHTML(face)
		if err != nil {
			return err
		}
		afmt, err := renderAnswerHTML(face, baseDeck.ID)
		if err != nil {
			return err
		}

		fields := make([]anki.Field, 0, len(cardFaces))
		for _, f := range cardFaces {
			fields = append(fields, anki.Field{Name: f.Name})
		}
		model, err := pkg.AddModel(ctx, anki.ModelSpec{
			Name:   deckName + "-model",
			DeckID: subdeck.ID,
			Fields: fields,
			Templates: []anki.Template{{
				Name: face.Name + "Template",
				Qfmt: qfmt,
				Afmt: afmt,
			}},
		})
		if err != nil {
			return err
		}

		for _, item := range resolved {
			note, err := pkg.AddNote(ctx, anki.NoteSpec{
				ModelID: model.ID,
				Fields:  item.Fields,
			})
			if err != nil {
				return err
			}
			if _, err := pkg.AddCard(ctx, anki.CardSpec{
				NoteID:      note.ID,
				DeckID:      subdeck.ID,
				TemplateOrd: 0,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// downloadAudio fetches recordings for every item in dictionary scope, adds
// them as media and records the file names on the item's dictionary entry
// so the card templates can play them.
func (g *Generator) downloadAudio(ctx context.Context, pkg *anki.Package, groups map[string]*dissect.Group, charData map[string]*hanzi.CharData, opts Options) error {
	if opts.AudioLimit == 0 || g.audio == nil {
		return nil
	}
	limit := opts.AudioLimit
	if limit < 0 {
		limit = 0 // no limit for the downloader
	}

	for _, text := range audioTexts(groups, opts.RecursiveDict) {
		paths, err := g.audio.DownloadAudio(ctx, opts.AudioCacheDir, text, limit)
		if err != nil {
			if errors.Is(err, forvo.ErrBlocked) || errors.Is(err, forvo.ErrNotFound) {
				g.logger.Warn("audio download skipped",
					slog.String("text", text),
					slog.Any("error", err),
				)
				continue
			}
			return err
		}
		if len(paths) == 0 {
			continue
		}
		if err := pkg.AddMedia(paths...); err != nil {
			return err
		}

		entry, ok := charData[text]
		if !ok {
			entry = &hanzi.CharData{Character: text, CharCode: charCodeOf(text)}
			charData[text] = entry
		}
		entry.Audio = entry.Audio[:0]
		for _, path := range paths {
			entry.Audio = append(entry.Audio, filepath.Base(path))
		}
	}
	return nil
}

// audioTexts lists every text to fetch recordings for: sentences first,
// then words, then characters, input items before extracted ones.
func audioTexts(groups map[string]*dissect.Group, recursive bool) []string {
	seen := map[string]bool{}
	var texts []string
	add := func(items []dissect.Item) {
		for _, item := range items {
			if seen[item.Simplified] {
				continue
			}
			seen[item.Simplified] = true
			texts = append(texts, item.Simplified)
		}
	}
	for _, group := range groups {
		add(group.Sentences)
		if recursive {
			add(group.AllWords())
			add(group.AllChars())
		} else {
			add(group.Words)
			add(group.Chars)
		}
	}
	return texts
}

// addDictionaries emits the two JSONP reference dictionaries plus the
// stroke order diagrams as media. The small dictionary covers the items of
// this run, the big one the whole character dictionary.
func (g *Generator) addDictionaries(ctx context.Context, pkg *anki.Package, baseDeckID int64, charData, allCharData map[string]*hanzi.CharData) error {
	scratch, err := os.MkdirTemp("", "hanzideck-dict")
	if err != nil {
		return fmt.Errorf("os.MkdirTemp > %w", err)
	}
	defer func() {
		_ = os.RemoveAll(scratch)
	}()

	if err := g.addJSONPDictionary(pkg, scratch, fmt.Sprintf("_dict-%d.jsonp", baseDeckID), "onLoadDict", charData); err != nil {
		return err
	}

	var diagrams []string
	for char, entry := range allCharData {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry.Traditional = g.converter.ToTraditional(char)
		if len(diagrams) >= maxStrokeDiagrams {
			continue
		}
		path := g.charDict.StillSVGPath(char)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		diagrams = append(diagrams, path)
	}
	if len(diagrams) >= maxStrokeDiagrams {
		g.logger.Warn("stroke order diagrams were cut off",
			slog.Int("limit", maxStrokeDiagrams),
		)
	}
	if len(diagrams) > 0 {
		if err := pkg.AddMedia(diagrams...); err != nil {
			return err
		}
	}

	return g.addJSONPDictionary(pkg, scratch, fmt.Sprintf("_big-dict-%d.jsonp", baseDeckID), "onLoadBigDict", allCharData)
}

func (g *Generator) addJSONPDictionary(pkg *anki.Package, scratch, name, callback string, dict map[string]*hanzi.CharData) error {
	content, err := json.Marshal(dict)
	if err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}
	path := filepath.Join(scratch, name)
	if err := os.WriteFile(path, []byte(callback+"("+string(content)+")"), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return pkg.AddMedia(path)
}

// decompositionIndex adapts loaded character data to the dissector.
type decompositionIndex map[string]*hanzi.CharData

func (d decompositionIndex) Decomposition(_ context.Context, char string) (string, error) {
	entry, ok := d[char]
	if !ok {
		return "", nil
	}
	return entry.Decomposition, nil
}

// noteFields builds the model's field tuple, with single quotes escaped
// the way the card HTML needs them.
func noteFields(hanziText, pinyinText, englishText string) []string {
	fields := []string{hanziText, pinyinText, englishText}
	for i, field := range fields {
		fields[i] = strings.ReplaceAll(field, "'", "&#39;")
	}
	return fields
}

func stripSpaces(text string) string {
	return strings.Join(strings.Fields(text), "")
}

func charCodeOf(text string) int {
	for _, r := range text {
		return int(r)
	}
	return 0
}
