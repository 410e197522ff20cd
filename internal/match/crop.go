package match

import (
	"strings"

	"github.com/krishimandi/mandi-data/internal/model"
	"github.com/krishimandi/mandi-data/internal/slug"
)

// CropStrategy is one step of a crop matching cascade: a pure function from
// a raw commodity name and the catalog index to a match or nil.
type CropStrategy struct {
	Name string
	Fn   func(name string, idx *CropIndex) *model.Crop
}

// ENAMCropCascade is the strategy order used for eNAM price feeds, strongest
// first: exact slug, slug prefix either direction, name substring either
// direction, then per-token containment.
var ENAMCropCascade = []CropStrategy{
	{Name: "exact-slug", Fn: cropByExactSlug},
	{Name: "slug-prefix", Fn: cropBySlugPrefix},
	{Name: "name-substring", Fn: cropByNameSubstring},
	{Name: "name-token", Fn: cropByNameToken},
}

// FetchCropCascade is the order used for live Agmarknet records, which carry
// only free-text names: exact upper-cased name, exact slug, then substring.
var FetchCropCascade = []CropStrategy{
	{Name: "exact-name", Fn: cropByExactName},
	{Name: "exact-slug", Fn: cropByExactSlug},
	{Name: "name-substring", Fn: cropByNameSubstring},
}

// Crop runs the cascade in order and returns the first match, or nil if no
// strategy matched.
func Crop(cascade []CropStrategy, name string, idx *CropIndex) *model.Crop {
	for _, s := range cascade {
		if c := s.Fn(name, idx); c != nil {
			return c
		}
	}
	return nil
}

func cropByExactSlug(name string, idx *CropIndex) *model.Crop {
	s := slug.Make(name)
	if s == "" {
		return nil
	}
	return idx.byID[s]
}

func cropBySlugPrefix(name string, idx *CropIndex) *model.Crop {
	s := slug.Make(name)
	if s == "" {
		return nil
	}
	for i := range idx.ordered {
		id := idx.ordered[i].ID
		if strings.HasPrefix(id, s) || strings.HasPrefix(s, id) {
			return &idx.ordered[i]
		}
	}
	return nil
}

func cropByExactName(name string, idx *CropIndex) *model.Crop {
	return idx.byName[strings.ToUpper(name)]
}

func cropByNameSubstring(name string, idx *CropIndex) *model.Crop {
	upper := strings.ToUpper(name)
	if upper == "" {
		return nil
	}
	for i := range idx.ordered {
		n := idx.ordered[i].Name
		if strings.Contains(n, upper) || strings.Contains(upper, n) {
			return &idx.ordered[i]
		}
	}
	return nil
}

// cropByNameToken splits the commodity name on whitespace and hyphens and
// looks for any crop whose name contains a token. Tokens of 3 characters or
// fewer are skipped; they match far too loosely ("DAL", "RED").
func cropByNameToken(name string, idx *CropIndex) *model.Crop {
	upper := strings.ToUpper(name)
	tokens := strings.FieldsFunc(upper, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-'
	})
	for _, tok := range tokens {
		if len(tok) <= 3 {
			continue
		}
		for i := range idx.ordered {
			if strings.Contains(idx.ordered[i].Name, tok) {
				return &idx.ordered[i]
			}
		}
	}
	return nil
}
