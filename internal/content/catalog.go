package content

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/talgya/loom/internal/store"
)

// ErrDuplicateKey indicates two catalog entries of the same kind sharing a
// normalized key.
var ErrDuplicateKey = errors.New("content: duplicate key")

// Kind names a catalog table.
type Kind string

const (
	KindTrait      Kind = "trait"
	KindProfession Kind = "profession"
	KindCulture    Kind = "culture"
	KindSpecies    Kind = "species"
)

// Trait is a character disposition.
type Trait struct {
	Key         string
	Name        string
	Description string
	// Conflicts lists trait keys that cannot coexist with this one.
	Conflicts []string
}

// Profession is an occupation a character can hold.
type Profession struct {
	Key  string
	Name string
}

// Culture is a population's cultural group.
type Culture struct {
	Key  string
	Name string
}

// Species is a playable or simulated species.
type Species struct {
	Key  string
	Name string
	// LifespanYears is the nominal natural lifespan; zero means unbounded.
	LifespanYears int
}

// Event is one entry in the seeding log.
type Event struct {
	Kind Kind
	Key  string
}

type entry struct {
	kind Kind
	key  string
	seed func(s store.Store) (store.Store, error)
}

// Catalog accumulates content entries in declaration order.
type Catalog struct {
	entries []entry
	keys    map[Kind]map[string]struct{}
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{keys: make(map[Kind]map[string]struct{})}
}

// Len reports the number of registered entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// AddTrait registers a trait. The key is NFC-normalized.
func (c *Catalog) AddTrait(t Trait) error {
	key, err := c.claim(KindTrait, t.Key)
	if err != nil {
		return err
	}
	t.Key = key
	c.entries = append(c.entries, entry{kind: KindTrait, key: key, seed: func(s store.Store) (store.Store, error) {
		return store.Insert(s, store.EntityID(key), t)
	}})
	return nil
}

// AddProfession registers a profession. The key is NFC-normalized.
func (c *Catalog) AddProfession(p Profession) error {
	key, err := c.claim(KindProfession, p.Key)
	if err != nil {
		return err
	}
	p.Key = key
	c.entries = append(c.entries, entry{kind: KindProfession, key: key, seed: func(s store.Store) (store.Store, error) {
		return store.Insert(s, store.EntityID(key), p)
	}})
	return nil
}

// AddCulture registers a culture. The key is NFC-normalized.
func (c *Catalog) AddCulture(cu Culture) error {
	key, err := c.claim(KindCulture, cu.Key)
	if err != nil {
		return err
	}
	cu.Key = key
	c.entries = append(c.entries, entry{kind: KindCulture, key: key, seed: func(s store.Store) (store.Store, error) {
		return store.Insert(s, store.EntityID(key), cu)
	}})
	return nil
}

// AddSpecies registers a species. The key is NFC-normalized.
func (c *Catalog) AddSpecies(sp Species) error {
	key, err := c.claim(KindSpecies, sp.Key)
	if err != nil {
		return err
	}
	sp.Key = key
	c.entries = append(c.entries, entry{kind: KindSpecies, key: key, seed: func(s store.Store) (store.Store, error) {
		return store.Insert(s, store.EntityID(key), sp)
	}})
	return nil
}

// Seed registers the four content tables and inserts every entry in
// declaration order, returning the new store and the registration log.
func (c *Catalog) Seed(s store.Store) (store.Store, []Event, error) {
	var err error
	for _, register := range []func(store.Store) (store.Store, error){
		store.RegisterTable[Trait],
		store.RegisterTable[Profession],
		store.RegisterTable[Culture],
		store.RegisterTable[Species],
	} {
		if s, err = register(s); err != nil {
			return s, nil, err
		}
	}

	events := make([]Event, 0, len(c.entries))
	for _, e := range c.entries {
		if s, err = e.seed(s); err != nil {
			return s, events, fmt.Errorf("content: seed %s %q: %w", e.kind, e.key, err)
		}
		events = append(events, Event{Kind: e.kind, Key: e.key})
	}
	return s, events, nil
}

func (c *Catalog) claim(kind Kind, key string) (string, error) {
	key = norm.NFC.String(key)
	if key == "" {
		return "", fmt.Errorf("content: empty %s key", kind)
	}
	kindKeys := c.keys[kind]
	if kindKeys == nil {
		kindKeys = make(map[string]struct{})
		c.keys[kind] = kindKeys
	}
	if _, dup := kindKeys[key]; dup {
		return "", fmt.Errorf("%w: %s %q", ErrDuplicateKey, kind, key)
	}
	kindKeys[key] = struct{}{}
	return key, nil
}
