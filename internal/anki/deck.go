package anki

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Deck is one entry of the col row's decks column. Names may be
// hierarchical using the :: separator (parent::child).
type Deck struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Desc             string `json:"desc"`
	Conf             int64  `json:"conf"` // option group id, equal to ID by convention
	Dyn              int    `json:"dyn"`  // 1 for filtered decks
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	ExtendRev        int    `json:"extendRev"`
	ExtendNew        int    `json:"extendNew"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
	USN              int    `json:"usn"`
	Mod              int64  `json:"mod"`
}

// DeckOptions is a deck option group (a dconf entry) holding the SRS tuning
// parameters shared by one or more decks.
type DeckOptions struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Autoplay bool         `json:"autoplay"`
	Replayq  bool         `json:"replayq"`
	Timer    int          `json:"timer"`
	MaxTaken int          `json:"maxTaken"`
	Mod      int64        `json:"mod"`
	USN      int          `json:"usn"`
	New      NewOptions   `json:"new"`
	Rev      RevOptions   `json:"rev"`
	Lapse    LapseOptions `json:"lapse"`
}

// NewOptions tunes the handling of new cards.
type NewOptions struct {
	Bury          bool      `json:"bury"`
	Delays        []float64 `json:"delays"`
	InitialFactor int       `json:"initialFactor"`
	Ints          []int     `json:"ints"`
	Order         int       `json:"order"` // 0=random, 1=due
	PerDay        int       `json:"perDay"`
	Separate      bool      `json:"separate"`
}

// RevOptions tunes the handling of review cards.
type RevOptions struct {
	Bury     bool    `json:"bury"`
	Ease4    float64 `json:"ease4"`
	Fuzz     float64 `json:"fuzz"`
	IvlFct   float64 `json:"ivlFct"`
	MaxIvl   int     `json:"maxIvl"`
	MinSpace int     `json:"minSpace"`
	PerDay   int     `json:"perDay"`
}

// LapseOptions tunes the handling of lapsed cards.
type LapseOptions struct {
	Delays      []float64 `json:"delays"`
	LeechAction int       `json:"leechAction"` // 0=suspend, 1=mark
	LeechFails  int       `json:"leechFails"`
	MinInt      int       `json:"minInt"`
	Mult        float64   `json:"mult"`
}

// DeckSpec describes a deck to create. Name and Desc overlay the canonical
// defaults; Options, when non-nil, replaces the default SRS tuning (its ID
// and Name are still managed by AddDeck).
type DeckSpec struct {
	Name    string
	Desc    string
	Options *DeckOptions
}

func defaultDeck() Deck {
	return Deck{
		Name:      "Default",
		ExtendRev: 50,
		ExtendNew: 10,
	}
}

func defaultDeckOptions() DeckOptions {
	return DeckOptions{
		Name:     "Default",
		Replayq:  true,
		MaxTaken: 60,
		New: NewOptions{
			Bury:          true,
			Delays:        []float64{1, 10},
			InitialFactor: 2500,
			Ints:          []int{1, 4, 7},
			Order:         1,
			PerDay:        20,
			Separate:      true,
		},
		Rev: RevOptions{
			Bury:     true,
			Ease4:    1.3,
			Fuzz:     0.05,
			IvlFct:   1,
			MaxIvl:   2190000,
			MinSpace: 1,
			PerDay:   100,
		},
		Lapse: LapseOptions{
			Delays:      []float64{10},
			LeechFails:  8,
			Mult:        0,
			MinInt:      0,
			LeechAction: 0,
		},
	}
}

// AddDeck creates a deck together with its option group. Both share one
// freshly allocated id, are merged over the canonical defaults and are
// written into the col row's decks and dconf columns. The returned deck's
// ID is what cards reference through their did column.
func (p *Package) AddDeck(ctx context.Context, spec DeckSpec) (Deck, DeckOptions, error) {
	if p.db == nil {
		return Deck{}, DeckOptions{}, fmt.Errorf("package is not initialized")
	}

	id, err := newID()
	if err != nil {
		return Deck{}, DeckOptions{}, err
	}

	deck := defaultDeck()
	deck.ID = id
	deck.Conf = id
	deck.Mod = time.Now().UnixMilli()
	if spec.Name != "" {
		deck.Name = spec.Name
	}
	deck.Desc = spec.Desc

	options := defaultDeckOptions()
	if spec.Options != nil {
		options = *spec.Options
	}
	options.ID = id
	options.Name = deck.Name

	// Read-modify-write of the col row JSON; the mutex keeps two concurrent
	// registrations from losing one another's entry.
	p.mu.Lock()
	defer p.mu.Unlock()

	decks := map[string]Deck{}
	if err := p.readColJSON(ctx, "decks", &decks); err != nil {
		return Deck{}, DeckOptions{}, err
	}
	dconf := map[string]DeckOptions{}
	if err := p.readColJSON(ctx, "dconf", &dconf); err != nil {
		return Deck{}, DeckOptions{}, err
	}

	key := strconv.FormatInt(id, 10)
	decks[key] = deck
	dconf[key] = options

	if err := p.writeColJSON(ctx, "decks", decks); err != nil {
		return Deck{}, DeckOptions{}, err
	}
	if err := p.writeColJSON(ctx, "dconf", dconf); err != nil {
		return Deck{}, DeckOptions{}, err
	}
	return deck, options, nil
}
