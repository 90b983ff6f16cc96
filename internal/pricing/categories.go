package pricing

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category tag is outside its closed set.
var ErrUnknownCategory = errors.New("unknown category")

// FoundationType selects the foundation area coefficient.
type FoundationType string

const (
	FoundationSingle FoundationType = "single"
	FoundationStrip  FoundationType = "strip"
	FoundationPile   FoundationType = "pile"
	FoundationRaft   FoundationType = "raft"
)

// BasementType selects the basement area coefficient.
type BasementType string

const (
	BasementNone   BasementType = "none"
	BasementSemi   BasementType = "semi"
	BasementNormal BasementType = "normal"
	BasementDeep   BasementType = "deep"
)

// RoofType selects the roof weight relative to floor area.
type RoofType string

const (
	RoofIronSheet    RoofType = "iron_sheet"
	RoofConcrete     RoofType = "concrete"
	RoofTileIron     RoofType = "tile_iron"
	RoofTileConcrete RoofType = "tile_concrete"
)

// FacadeCount is the number of street-facing facades.
type FacadeCount string

const (
	FacadeOne   FacadeCount = "one"
	FacadeTwo   FacadeCount = "two"
	FacadeThree FacadeCount = "three"
)

// RoadWidth describes site access. Narrower roads cost more.
type RoadWidth string

const (
	RoadLarge  RoadWidth = "large"
	RoadMedium RoadWidth = "medium"
	RoadSmall  RoadWidth = "small"
)

// NeighborCondition describes whether adjacent lots are built.
type NeighborCondition string

const (
	NeighborsBothBuilt    NeighborCondition = "both_built"
	NeighborsOneSideEmpty NeighborCondition = "one_side_empty"
	NeighborsBothEmpty    NeighborCondition = "both_empty"
)

var foundationCoefficients = map[FoundationType]float64{
	FoundationSingle: 0.30,
	FoundationStrip:  0.50,
	FoundationPile:   0.40,
	FoundationRaft:   1.00,
}

// Basement coefficients exceed 1 to account for excavation and reinforcement.
var basementCoefficients = map[BasementType]float64{
	BasementNone:   0.0,
	BasementSemi:   1.5,
	BasementNormal: 2.0,
	BasementDeep:   2.5,
}

var roofCoefficients = map[RoofType]float64{
	RoofIronSheet:    0.30,
	RoofConcrete:     0.50,
	RoofTileIron:     0.70,
	RoofTileConcrete: 1.00,
}

var facadeCoefficients = map[FacadeCount]float64{
	FacadeOne:   0.0,
	FacadeTwo:   0.03,
	FacadeThree: 0.05,
}

var roadCoefficients = map[RoadWidth]float64{
	RoadLarge:  0.0,
	RoadMedium: 0.025,
	RoadSmall:  0.08,
}

var neighborCoefficients = map[NeighborCondition]float64{
	NeighborsBothBuilt:    0.0,
	NeighborsOneSideEmpty: 0.02,
	NeighborsBothEmpty:    0.04,
}

func lookup[K ~string](table map[K]float64, category string, key K) (float64, error) {
	v, ok := table[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", ErrUnknownCategory, category, string(key))
	}
	return v, nil
}

// Coefficient returns the foundation area coefficient.
func (f FoundationType) Coefficient() (float64, error) {
	return lookup(foundationCoefficients, "foundation", f)
}

// Coefficient returns the basement area coefficient.
func (b BasementType) Coefficient() (float64, error) {
	return lookup(basementCoefficients, "basement", b)
}

// Coefficient returns the roof material coefficient.
func (r RoofType) Coefficient() (float64, error) {
	return lookup(roofCoefficients, "roof", r)
}

// Coefficient returns the facade surcharge.
func (f FacadeCount) Coefficient() (float64, error) {
	return lookup(facadeCoefficients, "facades", f)
}

// Coefficient returns the road access surcharge.
func (r RoadWidth) Coefficient() (float64, error) {
	return lookup(roadCoefficients, "road", r)
}

// Coefficient returns the neighbor surcharge.
func (n NeighborCondition) Coefficient() (float64, error) {
	return lookup(neighborCoefficients, "neighbors", n)
}

func unmarshalCategory[K ~string](table map[K]float64, category string, text []byte, dst *K) error {
	key := K(text)
	if _, err := lookup(table, category, key); err != nil {
		return err
	}
	*dst = key
	return nil
}

// UnmarshalText rejects unknown tags while decoding.
func (f *FoundationType) UnmarshalText(text []byte) error {
	return unmarshalCategory(foundationCoefficients, "foundation", text, f)
}

// UnmarshalText rejects unknown tags while decoding.
func (b *BasementType) UnmarshalText(text []byte) error {
	return unmarshalCategory(basementCoefficients, "basement", text, b)
}

// UnmarshalText rejects unknown tags while decoding.
func (r *RoofType) UnmarshalText(text []byte) error {
	return unmarshalCategory(roofCoefficients, "roof", text, r)
}

// UnmarshalText rejects unknown tags while decoding.
func (f *FacadeCount) UnmarshalText(text []byte) error {
	return unmarshalCategory(facadeCoefficients, "facades", text, f)
}

// UnmarshalText rejects unknown tags while decoding.
func (r *RoadWidth) UnmarshalText(text []byte) error {
	return unmarshalCategory(roadCoefficients, "road", text, r)
}

// UnmarshalText rejects unknown tags while decoding.
func (n *NeighborCondition) UnmarshalText(text []byte) error {
	return unmarshalCategory(neighborCoefficients, "neighbors", text, n)
}

// Label returns the Vietnamese display label used in reports and prompts.
func (f FoundationType) Label() string {
	switch f {
	case FoundationSingle:
		return "Móng đơn"
	case FoundationStrip:
		return "Móng băng"
	case FoundationPile:
		return "Móng cọc"
	case FoundationRaft:
		return "Móng bè"
	}
	return string(f)
}

func (b BasementType) Label() string {
	switch b {
	case BasementNone:
		return "Không hầm"
	case BasementSemi:
		return "Bán hầm (<1.5m)"
	case BasementNormal:
		return "Hầm (1.5-2.0m)"
	case BasementDeep:
		return "Hầm sâu (>2.0m)"
	}
	return string(b)
}

func (r RoofType) Label() string {
	switch r {
	case RoofIronSheet:
		return "Mái Tôn"
	case RoofConcrete:
		return "Mái BTCT"
	case RoofTileIron:
		return "Ngói kèo sắt"
	case RoofTileConcrete:
		return "Ngói BTCT"
	}
	return string(r)
}

func (f FacadeCount) Label() string {
	switch f {
	case FacadeOne:
		return "1 Mặt tiền"
	case FacadeTwo:
		return "2 Mặt tiền"
	case FacadeThree:
		return "3 Mặt tiền"
	}
	return string(f)
}

func (r RoadWidth) Label() string {
	switch r {
	case RoadLarge:
		return "> 5m (Xe tải)"
	case RoadMedium:
		return "3m - 5m"
	case RoadSmall:
		return "< 3m (Ba gác)"
	}
	return string(r)
}

func (n NeighborCondition) Label() string {
	switch n {
	case NeighborsBothBuilt:
		return "Đã có nhà kín 2 bên"
	case NeighborsOneSideEmpty:
		return "Đất trống 1 bên"
	case NeighborsBothEmpty:
		return "Đất trống 2 bên"
	}
	return string(n)
}

// Foundations lists every foundation type in display order.
func Foundations() []FoundationType {
	return []FoundationType{FoundationSingle, FoundationStrip, FoundationPile, FoundationRaft}
}

func Basements() []BasementType {
	return []BasementType{BasementNone, BasementSemi, BasementNormal, BasementDeep}
}

func Roofs() []RoofType {
	return []RoofType{RoofIronSheet, RoofConcrete, RoofTileIron, RoofTileConcrete}
}

func Facades() []FacadeCount {
	return []FacadeCount{FacadeOne, FacadeTwo, FacadeThree}
}

func Roads() []RoadWidth {
	return []RoadWidth{RoadLarge, RoadMedium, RoadSmall}
}

func Neighbors() []NeighborCondition {
	return []NeighborCondition{NeighborsBothBuilt, NeighborsOneSideEmpty, NeighborsBothEmpty}
}
