/*
PURPOSE:
  Defines the core data structures used throughout dexview.
  Two families live here: the upstream wire shapes returned by the
  creature-data API, and the display projections built from them.

REQUIREMENTS:
  User-specified:
  - List entries carry id, name, artwork and type labels.
  - Detail records add height (m), weight (kg), abilities, stats and moves.

  Implementation-discovered:
  - The upstream payload nests artwork four objects deep and any level may be null.
    Every nested object is a pointer so projection never dereferences nil.
  - Height arrives in decimetres and weight in hectograms.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output, internal/server, internal/cli
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs and projections).

IMPLEMENTATION RULES:
  - Projections preserve upstream ordering of types, abilities, stats and moves.
  - ID is copied from upstream, never recomputed.

USAGE:
  entry := p.Entry()
  detail := p.Detail()

SELF-HEALING INSTRUCTIONS:
  - If the upstream renames a field, update the json tags on the wire structs only.

RELATED FILES:
  - internal/engine/list.go
  - internal/engine/detail.go

MAINTENANCE:
  - Update when the display needs another upstream field.
*/

package model

// MaxMoves is the number of moves exposed by a Detail record.
const MaxMoves = 15

// SummaryRef points at a full record. It is never displayed.
type SummaryRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// IndexPage is one page of the upstream index endpoint.
// Results is a pointer so an absent field can be told apart from an empty page.
type IndexPage struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  *[]SummaryRef `json:"results"`
}

// Entry is the list-view projection of a record.
type Entry struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Image string   `json:"image"`
	Types []string `json:"types"`
}

// Stat is one ranked attribute of a record.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"` // 0-255
}

// Detail is the detail-view projection of a record.
type Detail struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
	Types     []string `json:"types"`
	Height    float64  `json:"height"` // metres
	Weight    float64  `json:"weight"` // kilograms
	Abilities []string `json:"abilities"`
	Stats     []Stat   `json:"stats"`
	Moves     []string `json:"moves"`
}

// namedRef is the {name, url} pair the upstream uses for every reference.
type namedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon is the full upstream record for one entity.
type Pokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"` // decimetres
	Weight  int    `json:"weight"` // hectograms
	Sprites *struct {
		FrontDefault *string `json:"front_default"`
		Other        *struct {
			DreamWorld *struct {
				FrontDefault *string `json:"front_default"`
			} `json:"dream_world"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int       `json:"slot"`
		Type *namedRef `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  *namedRef `json:"ability"`
		IsHidden bool      `json:"is_hidden"`
		Slot     int       `json:"slot"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int       `json:"base_stat"`
		Effort   int       `json:"effort"`
		Stat     *namedRef `json:"stat"`
	} `json:"stats"`
	Moves []struct {
		Move *namedRef `json:"move"`
	} `json:"moves"`
}

// Artwork returns the dream-world artwork URL, or "" when any level is missing.
func (p *Pokemon) Artwork() string {
	if p.Sprites == nil || p.Sprites.Other == nil || p.Sprites.Other.DreamWorld == nil {
		return ""
	}
	if p.Sprites.Other.DreamWorld.FrontDefault == nil {
		return ""
	}
	return *p.Sprites.Other.DreamWorld.FrontDefault
}

// TypeNames returns the type labels in upstream order.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		if t.Type != nil {
			names = append(names, t.Type.Name)
		}
	}
	return names
}

// Entry projects the record into a list entry.
func (p *Pokemon) Entry() Entry {
	return Entry{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Artwork(),
		Types: p.TypeNames(),
	}
}

// Detail projects the record into a detail record.
func (p *Pokemon) Detail() Detail {
	d := Detail{
		ID:        p.ID,
		Name:      p.Name,
		Image:     p.Artwork(),
		Types:     p.TypeNames(),
		Height:    float64(p.Height) / 10,
		Weight:    float64(p.Weight) / 10,
		Abilities: make([]string, 0, len(p.Abilities)),
		Stats:     make([]Stat, 0, len(p.Stats)),
		Moves:     make([]string, 0, min(len(p.Moves), MaxMoves)),
	}

	for _, a := range p.Abilities {
		if a.Ability != nil {
			d.Abilities = append(d.Abilities, a.Ability.Name)
		}
	}
	for _, s := range p.Stats {
		if s.Stat != nil {
			d.Stats = append(d.Stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
		}
	}
	// Truncate on the raw list so a null entry never shifts later moves into view.
	moves := p.Moves
	if len(moves) > MaxMoves {
		moves = moves[:MaxMoves]
	}
	for _, m := range moves {
		if m.Move != nil {
			d.Moves = append(d.Moves, m.Move.Name)
		}
	}

	return d
}
