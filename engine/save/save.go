package save

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/1siamBot/adventure-engine/engine/core"
)

// Inventory is everything the player carries between maps. Four heart
// pieces form a heart, and each heart is two health points.
type Inventory struct {
	HeartPieces int            `json:"heart_pieces"`
	Health      int            `json:"health"`
	Coins       int            `json:"coins"`
	Items       map[string]int `json:"items,omitempty"`
}

// NewInventory returns the inventory of a new game
func NewInventory() Inventory {
	return Inventory{HeartPieces: 12, Health: 6, Items: map[string]int{}}
}

// MaxHealth is the health of full hearts
func (inv Inventory) MaxHealth() int { return inv.HeartPieces / 4 * 2 }

// Collect adds a picked up item; coins go to the purse
func (inv *Inventory) Collect(item string, value int) {
	switch item {
	case "coin", "coins":
		inv.Coins += value
	case "heart_piece":
		inv.HeartPieces += value
	default:
		if inv.Items == nil {
			inv.Items = map[string]int{}
		}
		inv.Items[item] += value
	}
}

// PlayerState is what a save slot holds
type PlayerState struct {
	Version   int       `json:"version"`
	Inventory Inventory `json:"inventory"`
	LastMap   string    `json:"last_map"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
}

// CurrentVersion is written into every saved state
const CurrentVersion = 1

// Store persists player states by slot name
type Store interface {
	Save(ctx context.Context, slot string, st PlayerState) error
	Load(ctx context.Context, slot string) (PlayerState, error)
	Slots(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, slot string) error
	Close() error
}

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSlot rejects slot names that are not safe as file names
func ValidSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return &core.ConfigError{Field: "save slot", Reason: fmt.Sprintf("%q must be 1-64 letters, digits, '-' or '_'", slot)}
	}
	return nil
}

func notFound(slot string, err error) error {
	return &core.ResourceError{Kind: "save slot", Name: slot, Err: err}
}

func encode(st PlayerState) ([]byte, error) {
	st.Version = CurrentVersion
	return json.Marshal(st)
}

func decode(slot string, data []byte) (PlayerState, error) {
	var st PlayerState
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("save slot %q: decode: %w", slot, err)
	}
	if st.Version > CurrentVersion {
		return st, fmt.Errorf("save slot %q: version %d is newer than %d", slot, st.Version, CurrentVersion)
	}
	return st, nil
}
