package entity

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
)

// Shuffler produces a uniform random permutation. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type Option func(*options)

type options struct {
	shuffler Shuffler
	scoring  ScoringPolicy
}

// WithShuffler injects the random source, e.g. rand.New(rand.NewSource(seed)) for repeatable decks.
func WithShuffler(shuffler Shuffler) Option {
	return func(o *options) {
		o.shuffler = shuffler
	}
}

func WithScoring(policy ScoringPolicy) Option {
	return func(o *options) {
		o.scoring = policy
	}
}

// MemoryGame is the concentration game model. It is not safe for concurrent use;
// the owner serializes access.
type MemoryGame[C comparable] struct {
	cards    []Card[C]
	score    int
	scoring  ScoringPolicy
	shuffler Shuffler
}

// NewMemoryGame deals two cards per pair index, in pair order, and shuffles the deck.
// The factory must cover every index in [0, numberOfPairs).
func NewMemoryGame[C comparable](numberOfPairs int, contentFactory func(pairIndex int) C, opts ...Option) (*MemoryGame[C], error) {
	if numberOfPairs < 0 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPairCount, numberOfPairs)
	}

	if contentFactory == nil {
		return nil, apperror.ErrNilContentFactory
	}

	o := options{
		scoring: DefaultScoringPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.shuffler == nil {
		o.shuffler = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game shuffling only
	}

	cards := make([]Card[C], 0, numberOfPairs*2)
	for pairIndex := range numberOfPairs {
		content := contentFactory(pairIndex)
		cards = append(cards,
			Card[C]{ID: pairIndex * 2, Content: content},
			Card[C]{ID: pairIndex*2 + 1, Content: content},
		)
	}

	game := &MemoryGame[C]{
		cards:    cards,
		scoring:  o.scoring,
		shuffler: o.shuffler,
	}
	game.Shuffle()

	return game, nil
}

// Cards returns a copy of the deck in rendering order.
func (that *MemoryGame[C]) Cards() []Card[C] {
	cards := make([]Card[C], len(that.cards))
	copy(cards, that.cards)

	return cards
}

func (that *MemoryGame[C]) Score() int {
	return that.score
}

func (that *MemoryGame[C]) Scoring() ScoringPolicy {
	return that.scoring
}

// Choose reveals the card with the given id and resolves it against the current potential match.
// Unknown, matched and already face-up cards are ignored. It reports whether anything changed.
func (that *MemoryGame[C]) Choose(card Card[C]) bool {
	chosenIndex, ok := that.indexOf(card.ID)
	if !ok {
		return false
	}

	chosen := &that.cards[chosenIndex]
	if chosen.IsFaceUp || chosen.IsMatched {
		return false
	}

	if potentialIndex, ok := that.indexOfTheOnlyFaceUpCard(); ok {
		potential := &that.cards[potentialIndex]

		if potential.Content == chosen.Content {
			potential.IsMatched = true
			chosen.IsMatched = true
			that.score += that.scoring.MatchBonus
		} else {
			that.score += that.scoring.Mismatch(potential.IsSeen, chosen.IsSeen)
		}
	}

	for i := range that.cards {
		if i != chosenIndex && that.cards[i].IsPotentialMatch() {
			that.cards[i].turnFaceDown()
		}
	}

	chosen.turnFaceUp()

	return true
}

// ChooseByID is Choose for callers that only hold the card id.
func (that *MemoryGame[C]) ChooseByID(id int) bool {
	return that.Choose(Card[C]{ID: id})
}

// Shuffle reorders the deck in place. Card state and score are untouched.
func (that *MemoryGame[C]) Shuffle() {
	that.shuffler.Shuffle(len(that.cards), func(i, j int) {
		that.cards[i], that.cards[j] = that.cards[j], that.cards[i]
	})
}

// FaceUpCard returns the single face-up unmatched card, if any.
func (that *MemoryGame[C]) FaceUpCard() (Card[C], bool) {
	index, ok := that.indexOfTheOnlyFaceUpCard()
	if !ok {
		return Card[C]{}, false
	}

	return that.cards[index], true
}

func (that *MemoryGame[C]) PairsLeft() int {
	left := 0
	for _, card := range that.cards {
		if !card.IsMatched {
			left++
		}
	}

	return left / 2
}

func (that *MemoryGame[C]) IsFinished() bool {
	return that.PairsLeft() == 0
}

func (that *MemoryGame[C]) indexOf(id int) (int, bool) {
	for i, card := range that.cards {
		if card.ID == id {
			return i, true
		}
	}

	return 0, false
}

// indexOfTheOnlyFaceUpCard finds the potential match; it reports false unless exactly one exists.
func (that *MemoryGame[C]) indexOfTheOnlyFaceUpCard() (int, bool) {
	found := -1
	for i, card := range that.cards {
		if !card.IsPotentialMatch() {
			continue
		}

		if found >= 0 {
			return 0, false
		}
		found = i
	}

	return found, found >= 0
}
