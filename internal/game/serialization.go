package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// Checksum is a deterministic SHA-256 over the canonical form of st. Zone
// order is significant; nil and empty zones hash the same.
func Checksum(st *state.GameState) string {
	sum := sha256.Sum256([]byte(canonical(st)))
	return hex.EncodeToString(sum[:])
}

func canonical(st *state.GameState) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "GAME:%s|%s|%d|%d|%d|%d|%d\n",
		st.Phase, st.Step, st.Round, st.Current, st.TrueKing, st.FirstPlayer, st.Winner)

	for i := range st.Players {
		p := &st.Players[i]
		fmt.Fprintf(&buf, "PLAYER:%d|%s|%s|%t|%d|%t|%t|%t\n",
			i, p.Name, p.Facet, p.KingFlipped, p.Points, p.PlayAnyValue, p.Mustered, p.FacetChanged)
		writeZone(&buf, "  HAND", p.Hand)
		writeZone(&buf, "  ANTECHAMBER", p.Antechamber)
		writeZone(&buf, "  ARMY", p.Army)
		writeZone(&buf, "  EXHAUSTED", p.Exhausted)
		writeSlot(&buf, "  SUCCESSOR", p.Successor)
		writeSlot(&buf, "  SQUIRE", p.Squire)
		writeSlot(&buf, "  DUNGEON", p.Dungeon)
		names := make([]string, len(p.Signatures))
		for j, n := range p.Signatures {
			names[j] = string(n)
		}
		fmt.Fprintf(&buf, "  SIGNATURES:%s\n", strings.Join(names, ","))
	}

	buf.WriteString("COURT:\n")
	for i, e := range st.Court {
		fmt.Fprintf(&buf, "  %d:%s|%t|%d|%d\n", i, e.Card, e.Disgraced, e.PlayedBy, e.Bonus)
	}
	writeSlot(&buf, "ACCUSED", st.Accused)
	writeZone(&buf, "DECK", st.Deck)
	writeZone(&buf, "CONDEMNED", st.Condemned)

	if p := st.Pending; p != nil {
		fmt.Fprintf(&buf, "PENDING:%s|%d|%s|%d|%d|%s|%d|%d|%d\n",
			p.Kind, p.Actor, p.Source, p.CourtIndex, p.Ability,
			p.Target.Name, p.Target.Hand, p.Target.Court, p.Next)
		for _, c := range p.Candidates {
			fmt.Fprintf(&buf, "  CANDIDATE:%s|%s\n", c.Card, c.Copies)
		}
	}
	return buf.String()
}

func writeZone(buf *bytes.Buffer, label string, zone []cards.Card) {
	parts := make([]string, len(zone))
	for i, c := range zone {
		parts[i] = c.String()
	}
	fmt.Fprintf(buf, "%s:%s\n", label, strings.Join(parts, ","))
}

func writeSlot(buf *bytes.Buffer, label string, c *cards.Card) {
	if c == nil {
		fmt.Fprintf(buf, "%s:-\n", label)
		return
	}
	fmt.Fprintf(buf, "%s:%s\n", label, c)
}

// SerializeState encodes st with gob.
func SerializeState(st *state.GameState) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(st); err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeState decodes a state written by SerializeState.
func DeserializeState(data []byte) (*state.GameState, error) {
	var st state.GameState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return &st, nil
}

// ValidateSerializationRoundtrip checks that st survives gob encoding with
// an identical checksum.
func ValidateSerializationRoundtrip(st *state.GameState) error {
	data, err := SerializeState(st)
	if err != nil {
		return err
	}
	back, err := DeserializeState(data)
	if err != nil {
		return err
	}
	if a, b := Checksum(st), Checksum(back); a != b {
		return fmt.Errorf("checksum mismatch: original=%s, deserialized=%s", a, b)
	}
	return nil
}
