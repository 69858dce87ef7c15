package theme

import (
	"fmt"
	"sort"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
	"github.com/rocketscienceinc/memorize-backend/internal/entity"
)

const DefaultPairs = 7

// Theme is a named content palette with the number of pairs dealt by default.
type Theme struct {
	Name     string   `json:"name"`
	Contents []string `json:"contents"`
	Pairs    int      `json:"pairs"`
}

var (
	Tools = Theme{
		Name: "tools",
		Contents: []string{
			"🎚", "⏱", "🛠", "🔫", "💎", "⚖️", "🪜", "🪛", "⚙️", "🪬",
			"🩸", "🛎", "🛋", "🪟", "📓", "🧷", "📌", "⛔️", "⚠️",
		},
		Pairs: DefaultPairs,
	}

	Animals = Theme{
		Name:     "animals",
		Contents: []string{"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐮"},
		Pairs:    DefaultPairs,
	}

	Food = Theme{
		Name:     "food",
		Contents: []string{"🍏", "🍐", "🍊", "🍋", "🍌", "🍉", "🍇", "🍓", "🫐", "🍒"},
		Pairs:    DefaultPairs,
	}

	registry = map[string]Theme{
		Tools.Name:   Tools,
		Animals.Name: Animals,
		Food.Name:    Food,
	}
)

// Lookup returns a built-in theme by name.
func Lookup(name string) (Theme, error) {
	theme, ok := registry[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", apperror.ErrThemeNotFound, name)
	}

	return theme, nil
}

// All returns the built-in themes ordered by name.
func All() []Theme {
	themes := make([]Theme, 0, len(registry))
	for _, theme := range registry {
		themes = append(themes, theme)
	}

	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})

	return themes
}

// WithPairs returns a copy of the theme dealing the given number of pairs.
func (that Theme) WithPairs(pairs int) Theme {
	that.Pairs = pairs
	return that
}

// Validate checks the palette can cover every pair index with distinct content.
func (that Theme) Validate() error {
	if that.Pairs < 0 {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPairCount, that.Pairs)
	}

	if that.Pairs > len(that.Contents) {
		return fmt.Errorf("%w: theme %q has %d contents, %d pairs requested",
			apperror.ErrPaletteTooSmall, that.Name, len(that.Contents), that.Pairs)
	}

	seen := make(map[string]struct{}, len(that.Contents))
	for _, content := range that.Contents {
		if _, ok := seen[content]; ok {
			return fmt.Errorf("%w: theme %q repeats %q", apperror.ErrDuplicateContent, that.Name, content)
		}
		seen[content] = struct{}{}
	}

	return nil
}

// NewGame deals a game from the theme's palette.
func NewGame(theme Theme, opts ...entity.Option) (*entity.MemoryGame[string], error) {
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	game, err := entity.NewMemoryGame(theme.Pairs, func(pairIndex int) string {
		return theme.Contents[pairIndex]
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// MustNewGame is NewGame for static themes; an invalid theme is a programming error.
func MustNewGame(theme Theme, opts ...entity.Option) *entity.MemoryGame[string] {
	game, err := NewGame(theme, opts...)
	if err != nil {
		panic(err)
	}

	return game
}
