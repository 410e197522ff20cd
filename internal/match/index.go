// Package match resolves free-text commodity and market strings from price
// feeds against the converted crop and mandi catalogs.
//
// Matching runs against immutable index values built once per run. The crop
// cascade is an ordered list of pure strategies evaluated with early exit;
// each strategy can be tested in isolation and the cascade re-ordered without
// touching the converters.
package match

import (
	"strings"

	"github.com/krishimandi/mandi-data/internal/model"
)

// CropIndex holds lookup structures over the crop catalog. The ordered slice
// preserves catalog order so scan-based strategies are deterministic: the
// first catalog entry that satisfies a strategy wins.
type CropIndex struct {
	ordered    []model.Crop
	byID       map[string]*model.Crop
	byName     map[string]*model.Crop
	bySourceID map[int]*model.Crop
}

// NewCropIndex builds a CropIndex from the converted crop catalog. When two
// crops share a name, the first catalog entry keeps the name key, the same
// first-wins rule the scan strategies follow.
func NewCropIndex(crops []model.Crop) *CropIndex {
	idx := &CropIndex{
		ordered:    crops,
		byID:       make(map[string]*model.Crop, len(crops)),
		byName:     make(map[string]*model.Crop, len(crops)),
		bySourceID: make(map[int]*model.Crop, len(crops)),
	}
	for i := range crops {
		c := &crops[i]
		idx.byID[c.ID] = c
		name := strings.ToUpper(c.Name)
		if _, taken := idx.byName[name]; !taken {
			idx.byName[name] = c
		}
		if c.SourceID != 0 {
			idx.bySourceID[c.SourceID] = c
		}
	}
	return idx
}

// Len returns the number of crops in the index.
func (idx *CropIndex) Len() int { return len(idx.ordered) }

// BySourceID looks a crop up by its source-system commodity id.
func (idx *CropIndex) BySourceID(id int) *model.Crop {
	return idx.bySourceID[id]
}

// BySlugPrefix returns the first crop whose id equals s or starts with s.
// Used to bridge the raw taxonomy's commodity ids onto the converted catalog,
// where collision suffixes may have been appended to the slug.
func (idx *CropIndex) BySlugPrefix(s string) *model.Crop {
	if s == "" {
		return nil
	}
	if c, ok := idx.byID[s]; ok {
		return c
	}
	for i := range idx.ordered {
		if strings.HasPrefix(idx.ordered[i].ID, s) {
			return &idx.ordered[i]
		}
	}
	return nil
}

// MandiIndex holds lookup structures over the mandi catalog.
type MandiIndex struct {
	ordered     []model.Mandi
	bySourceID  map[string]*model.Mandi
	byName      map[string]*model.Mandi
	byNameState map[string]*model.Mandi
}

// NewMandiIndex builds a MandiIndex from the converted mandi catalog.
// Duplicate name keys keep the first catalog entry, like NewCropIndex.
func NewMandiIndex(mandis []model.Mandi) *MandiIndex {
	idx := &MandiIndex{
		ordered:     mandis,
		bySourceID:  make(map[string]*model.Mandi, len(mandis)),
		byName:      make(map[string]*model.Mandi, len(mandis)),
		byNameState: make(map[string]*model.Mandi, len(mandis)),
	}
	for i := range mandis {
		m := &mandis[i]
		if m.SourceMandiID != "" {
			idx.bySourceID[m.SourceMandiID] = m
		}
		name := strings.ToUpper(m.Name)
		if _, taken := idx.byName[name]; !taken {
			idx.byName[name] = m
		}
		key := name + "|" + strings.ToUpper(m.StateName)
		if _, taken := idx.byNameState[key]; !taken {
			idx.byNameState[key] = m
		}
	}
	return idx
}

// Len returns the number of mandis in the index.
func (idx *MandiIndex) Len() int { return len(idx.ordered) }

// BySourceID looks a mandi up by its source-system market id.
func (idx *MandiIndex) BySourceID(id string) *model.Mandi {
	return idx.bySourceID[id]
}

// baseName strips a trailing " APMC" marker and collapses internal
// whitespace, so "Lasalgaon APMC" and "LASALGAON" compare equal.
func baseName(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, " APMC")
	return strings.Join(strings.Fields(s), " ")
}
