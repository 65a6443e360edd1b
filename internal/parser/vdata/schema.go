package vdata

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mod-analysis/pkg/model"
)

// Wire field numbers for the character-state messages. These must stay in
// sync with the client's schema; unknown fields are skipped on decode so
// newer captures with extra fields still parse.
const (
	fieldContainerVData = 1

	fieldCharID = 1
	fieldName   = 2
	fieldLevel  = 3
	fieldMod    = 4

	fieldModInfos = 1

	fieldConfigID = 1
	fieldQuality  = 2
	fieldParts    = 3

	fieldPartName  = 1
	fieldPartValue = 2
)

// MarshalSyncContainer encodes a SyncContainer to protobuf wire format.
func MarshalSyncContainer(sc *model.SyncContainer) []byte {
	var b []byte
	if sc.VData != nil {
		b = protowire.AppendTag(b, fieldContainerVData, protowire.BytesType)
		b = protowire.AppendBytes(b, MarshalCharState(sc.VData))
	}
	return b
}

// MarshalCharState encodes a CharState to protobuf wire format. Zero-valued
// fields are omitted.
func MarshalCharState(cs *model.CharState) []byte {
	var b []byte
	if cs.CharID != 0 {
		b = protowire.AppendTag(b, fieldCharID, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(cs.CharID))
	}
	if cs.Name != "" {
		b = protowire.AppendTag(b, fieldName, protowire.BytesType)
		b = protowire.AppendString(b, cs.Name)
	}
	if cs.Level != 0 {
		b = protowire.AppendTag(b, fieldLevel, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(cs.Level))
	}
	if cs.Mod != nil {
		b = protowire.AppendTag(b, fieldMod, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalModState(cs.Mod))
	}
	return b
}

func marshalModState(ms *model.ModState) []byte {
	var b []byte
	for i := range ms.ModInfos {
		b = protowire.AppendTag(b, fieldModInfos, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalModInfo(&ms.ModInfos[i]))
	}
	return b
}

func marshalModInfo(mi *model.ModInfo) []byte {
	var b []byte
	if mi.ConfigID != 0 {
		b = protowire.AppendTag(b, fieldConfigID, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(mi.ConfigID)))
	}
	if mi.Quality != 0 {
		b = protowire.AppendTag(b, fieldQuality, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(mi.Quality)))
	}
	for i := range mi.Parts {
		b = protowire.AppendTag(b, fieldParts, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalModPart(&mi.Parts[i]))
	}
	return b
}

func marshalModPart(mp *model.ModPart) []byte {
	var b []byte
	if mp.Name != "" {
		b = protowire.AppendTag(b, fieldPartName, protowire.BytesType)
		b = protowire.AppendString(b, mp.Name)
	}
	if mp.Value != 0 {
		b = protowire.AppendTag(b, fieldPartValue, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(mp.Value)))
	}
	return b
}

// UnmarshalSyncContainer decodes a SyncContainer from protobuf wire format.
// A nil VData on the result means the field was absent from the payload.
func UnmarshalSyncContainer(data []byte) (*model.SyncContainer, error) {
	sc := &model.SyncContainer{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldContainerVData && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			cs, err := UnmarshalCharState(v)
			if err != nil {
				return nil, err
			}
			sc.VData = cs
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			b = b[m:]
		}
	}
	return sc, nil
}

// UnmarshalCharState decodes a CharState from protobuf wire format.
func UnmarshalCharState(data []byte) (*model.CharState, error) {
	cs := &model.CharState{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldCharID && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			cs.CharID = int64(v)
			b = b[m:]
		case num == fieldName && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			if !utf8.Valid(v) {
				return nil, fmt.Errorf("field %d: invalid UTF-8 in string", fieldName)
			}
			cs.Name = string(v)
			b = b[m:]
		case num == fieldLevel && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			cs.Level = int32(v)
			b = b[m:]
		case num == fieldMod && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			ms, err := unmarshalModState(v)
			if err != nil {
				return nil, err
			}
			cs.Mod = ms
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			b = b[m:]
		}
	}
	return cs, nil
}

func unmarshalModState(data []byte) (*model.ModState, error) {
	ms := &model.ModState{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldModInfos && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			mi, err := unmarshalModInfo(v)
			if err != nil {
				return nil, err
			}
			ms.ModInfos = append(ms.ModInfos, *mi)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			b = b[m:]
		}
	}
	return ms, nil
}

func unmarshalModInfo(data []byte) (*model.ModInfo, error) {
	mi := &model.ModInfo{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldConfigID && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			mi.ConfigID = int32(v)
			b = b[m:]
		case num == fieldQuality && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			mi.Quality = int32(v)
			b = b[m:]
		case num == fieldParts && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			mp, err := unmarshalModPart(v)
			if err != nil {
				return nil, err
			}
			mi.Parts = append(mi.Parts, *mp)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			b = b[m:]
		}
	}
	return mi, nil
}

func unmarshalModPart(data []byte) (*model.ModPart, error) {
	mp := &model.ModPart{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldPartName && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			if !utf8.Valid(v) {
				return nil, fmt.Errorf("field %d: invalid UTF-8 in string", fieldPartName)
			}
			mp.Name = string(v)
			b = b[m:]
		case num == fieldPartValue && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			mp.Value = int32(v)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			b = b[m:]
		}
	}
	return mp, nil
}
