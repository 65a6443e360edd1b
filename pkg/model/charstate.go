// Package model defines the shared data types for the mod-analysis service.
package model

// CharState is the canonical decoded character-state container ("direct
// schema"). It is the shape the downstream module optimizer consumes. A
// decoded CharState is owned by the caller; the decoder keeps no reference.
type CharState struct {
	CharID int64     `json:"charId,omitempty"`
	Name   string    `json:"name,omitempty"`
	Level  int32     `json:"level,omitempty"`
	Mod    *ModState `json:"mod,omitempty"`
}

// ModState holds the equipped module data of a character.
type ModState struct {
	ModInfos []ModInfo `json:"modInfos,omitempty"`
}

// ModInfo describes a single equippable module.
type ModInfo struct {
	ConfigID int32     `json:"configId,omitempty"`
	Quality  int32     `json:"quality,omitempty"`
	Parts    []ModPart `json:"parts,omitempty"`
}

// ModPart is one attribute roll on a module.
type ModPart struct {
	Name  string `json:"name,omitempty"`
	Value int32  `json:"value,omitempty"`
}

// SyncContainer is the envelope message captured from the game client
// ("wrapper schema"). VData presence is explicit: a nil pointer means the
// field was absent on the wire, not that it was empty.
type SyncContainer struct {
	VData *CharState `json:"vData,omitempty"`
}
