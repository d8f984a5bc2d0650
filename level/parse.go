package level

import (
	"encoding/json"
	"fmt"

	"github.com/minaorangina/tray/deck"
	"gopkg.in/yaml.v3"
)

// Level files list cards under "Playfield" and "Stack". Each card has a
// "CardFace" (0 = Ace .. 12 = King), a "CardSuit" (0 = Clubs .. 3 = Spades)
// and a "Position" with "x" and "y". YAML files may also spell faces and
// suits out, e.g. "CardFace: Six".

type rawPosition struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type rawEntry struct {
	CardFace *int         `json:"CardFace"`
	CardSuit *int         `json:"CardSuit"`
	Position *rawPosition `json:"Position"`
}

// entry converts a decoded card, reporting whether it is usable.
// Playfield cards need a position, stack cards do not.
func (r rawEntry) entry(needPosition bool) (Entry, bool) {
	if r.CardFace == nil || r.CardSuit == nil {
		return Entry{}, false
	}
	if needPosition && r.Position == nil {
		return Entry{}, false
	}

	e := Entry{Face: deck.Rank(*r.CardFace), Suit: deck.Suit(*r.CardSuit)}
	if !e.Face.Valid() || !e.Suit.Valid() {
		return Entry{}, false
	}
	if r.Position != nil {
		e.Position = deck.Position{X: r.Position.X, Y: r.Position.Y}
	}
	return e, true
}

// Parse reads a JSON level file. Cards with missing or bad fields are
// skipped rather than failing the whole level.
func Parse(data []byte) (Layout, error) {
	var doc struct {
		Playfield []json.RawMessage `json:"Playfield"`
		Stack     []json.RawMessage `json:"Stack"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	decode := func(raws []json.RawMessage, needPosition bool) []Entry {
		entries := []Entry{}
		for _, raw := range raws {
			var r rawEntry
			if err := json.Unmarshal(raw, &r); err != nil {
				continue
			}
			if e, ok := r.entry(needPosition); ok {
				entries = append(entries, e)
			}
		}
		return entries
	}

	return Layout{
		Playfield: decode(doc.Playfield, true),
		Stack:     decode(doc.Stack, false),
	}, nil
}

// yamlEntry accepts faces and suits as numbers or names
type yamlEntry struct {
	rawEntry
}

func (y *yamlEntry) UnmarshalYAML(node *yaml.Node) error {
	var fields struct {
		CardFace yaml.Node    `yaml:"CardFace"`
		CardSuit yaml.Node    `yaml:"CardSuit"`
		Position *rawPosition `yaml:"Position"`
	}
	if err := node.Decode(&fields); err != nil {
		return err
	}

	y.Position = fields.Position
	if fields.CardFace.Kind == yaml.ScalarNode {
		face, err := scalar(&fields.CardFace, func(s string) (int, error) {
			r, err := deck.ParseRank(s)
			return int(r), err
		})
		if err != nil {
			return err
		}
		y.CardFace = &face
	}
	if fields.CardSuit.Kind == yaml.ScalarNode {
		suit, err := scalar(&fields.CardSuit, func(s string) (int, error) {
			st, err := deck.ParseSuit(s)
			return int(st), err
		})
		if err != nil {
			return err
		}
		y.CardSuit = &suit
	}
	return nil
}

func scalar(node *yaml.Node, byName func(string) (int, error)) (int, error) {
	var n int
	if node.ShortTag() == "!!int" {
		err := node.Decode(&n)
		return n, err
	}
	return byName(node.Value)
}

// ParseYAML reads a YAML level file with the same shape as the JSON one
func ParseYAML(data []byte) (Layout, error) {
	var doc struct {
		Playfield []yaml.Node `yaml:"Playfield"`
		Stack     []yaml.Node `yaml:"Stack"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	decode := func(nodes []yaml.Node, needPosition bool) []Entry {
		entries := []Entry{}
		for i := range nodes {
			var y yamlEntry
			if err := nodes[i].Decode(&y); err != nil {
				continue
			}
			if e, ok := y.entry(needPosition); ok {
				entries = append(entries, e)
			}
		}
		return entries
	}

	return Layout{
		Playfield: decode(doc.Playfield, true),
		Stack:     decode(doc.Stack, false),
	}, nil
}
