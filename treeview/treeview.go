// Package treeview holds the expand/collapse and search logic shared by every
// hierarchy view. The front end used to duplicate this per page; the server
// now computes it once and each view only renders.
package treeview

import (
	"fmt"
	"strings"

	"github.com/osoroyal/churchhub/models"
)

// ExpandSet tracks which tree nodes are open, keyed "d-{districtID}" and
// "z-{zoneID}".
type ExpandSet map[string]bool

func DistrictKey(id uint) string { return fmt.Sprintf("d-%d", id) }
func ZoneKey(id uint) string     { return fmt.Sprintf("z-%d", id) }

// Toggle flips a key. Two toggles of the same key restore the prior set.
func (s ExpandSet) Toggle(key string) {
	if s[key] {
		delete(s, key)
	} else {
		s[key] = true
	}
}

func (s ExpandSet) Has(key string) bool { return s[key] }

// ParseExpandSet reads the comma-separated "expanded" query parameter.
func ParseExpandSet(raw string) ExpandSet {
	s := ExpandSet{}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			s[k] = true
		}
	}
	return s
}

// DefaultExpanded opens the first district only. Opening everything on first
// render was the main complaint about the old views.
func DefaultExpanded(districts []models.District) ExpandSet {
	s := ExpandSet{}
	if len(districts) > 0 {
		s[DistrictKey(districts[0].ID)] = true
	}
	return s
}

// FilterDistricts keeps districts whose name contains q, case-insensitive.
// The input slice is never mutated.
func FilterDistricts(districts []models.District, q string) []models.District {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return districts
	}
	var out []models.District
	for _, d := range districts {
		if strings.Contains(strings.ToLower(d.Name), q) {
			out = append(out, d)
		}
	}
	return out
}

// Match reports whether a name matches the search term. Used by the flattened
// search variant that looks at all three levels.
func Match(name, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), q)
}

// FilterDeep keeps districts whose own name matches q, or that contain a zone
// or home cell whose name matches. A cell hit keeps the whole district branch
// so the tree still renders with its parents.
func FilterDeep(districts []models.District, zones []models.Zone, cells []models.HomeCell, q string) []models.District {
	if strings.TrimSpace(q) == "" {
		return districts
	}

	keep := make(map[uint]bool)
	zoneDistrict := make(map[uint]uint, len(zones))
	for _, z := range zones {
		zoneDistrict[z.ID] = z.DistrictID
		if Match(z.Name, q) {
			keep[z.DistrictID] = true
		}
	}
	for _, c := range cells {
		if Match(c.Name, q) {
			keep[zoneDistrict[c.ZoneID]] = true
		}
	}

	var out []models.District
	for _, d := range districts {
		if keep[d.ID] || Match(d.Name, q) {
			out = append(out, d)
		}
	}
	return out
}

// Node is one rendered tree row with its children resolved.
type Node struct {
	District models.District `json:"district"`
	Expanded bool            `json:"expanded"`
	Zones    []ZoneNode      `json:"zones"`
}

type ZoneNode struct {
	Zone     models.Zone       `json:"zone"`
	Expanded bool              `json:"expanded"`
	Cells    []models.HomeCell `json:"cells"`
}

// Build assembles the tree for one response. q searches district, zone and
// cell names, keeping matched branches whole; counts fills HomeCell.MemberCount.
func Build(districts []models.District, zones []models.Zone, cells []models.HomeCell, expanded ExpandSet, q string, counts map[string]int64) []Node {
	zonesByDistrict := make(map[uint][]models.Zone)
	for _, z := range zones {
		zonesByDistrict[z.DistrictID] = append(zonesByDistrict[z.DistrictID], z)
	}
	cellsByZone := make(map[uint][]models.HomeCell)
	for _, c := range cells {
		c.MemberCount = counts[c.Name]
		cellsByZone[c.ZoneID] = append(cellsByZone[c.ZoneID], c)
	}

	nodes := []Node{}
	for _, d := range FilterDeep(districts, zones, cells, q) {
		n := Node{District: d, Expanded: expanded.Has(DistrictKey(d.ID)), Zones: []ZoneNode{}}
		for _, z := range zonesByDistrict[d.ID] {
			zn := ZoneNode{Zone: z, Expanded: expanded.Has(ZoneKey(z.ID)), Cells: []models.HomeCell{}}
			zn.Cells = append(zn.Cells, cellsByZone[z.ID]...)
			n.Zones = append(n.Zones, zn)
		}
		nodes = append(nodes, n)
	}
	return nodes
}
