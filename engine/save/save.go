// Package save implements JSON serialization and deserialization of
// play-session state.
package save

import (
	"encoding/json"

	"github.com/nholm/questdeck/engine"
	"github.com/nholm/questdeck/engine/session"
)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version          string               `json:"version"`
	Quest            string               `json:"quest"`
	SessionID        string               `json:"session_id"`
	Turn             int                  `json:"turn"`
	DiscoveredTiles  []string             `json:"discovered_tiles"`
	RevealedEntities []string             `json:"revealed_entities"`
	RevealedCards    []session.CardReveal `json:"revealed_cards"`
	Flags            map[string]bool      `json:"flags"`
	Narratives       []string             `json:"narratives"`
	Objectives       []string             `json:"objectives"`
	TriggerLog       []string             `json:"trigger_log"`
}

// Save serializes the engine's session to JSON bytes.
func Save(e *engine.Engine) ([]byte, error) {
	s := e.Session
	data := SaveData{
		Version:          e.Defs.Version,
		Quest:            e.Defs.Title,
		SessionID:        e.SessionID,
		Turn:             e.Turn,
		DiscoveredTiles:  s.DiscoveredTiles.Values(),
		RevealedEntities: s.RevealedEntities.Values(),
		RevealedCards:    s.RevealedCards,
		Flags:            s.Flags,
		Narratives:       s.Narratives.Values(),
		Objectives:       s.Objectives.Values(),
		TriggerLog:       e.TriggerLog,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	// Ensure collections are never nil after load.
	if sd.Flags == nil {
		sd.Flags = map[string]bool{}
	}
	if sd.RevealedCards == nil {
		sd.RevealedCards = []session.CardReveal{}
	}
	if sd.TriggerLog == nil {
		sd.TriggerLog = []string{}
	}
	return &sd, nil
}

// ApplySave restores loaded save data onto an engine.
func ApplySave(e *engine.Engine, sd *SaveData) {
	state := session.Restore(
		sd.DiscoveredTiles,
		sd.RevealedEntities,
		sd.Narratives,
		sd.Objectives,
		sd.RevealedCards,
		sd.Flags,
	)
	e.Restore(state, sd.SessionID, sd.Turn, sd.TriggerLog)
}
