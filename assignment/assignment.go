// Package assignment derives home-cell membership views from the member
// directory. Everything here is a pure function over slices; persistence and
// mutation stay in the handlers.
package assignment

import (
	"math"

	"github.com/osoroyal/churchhub/models"
)

const StatusActive = "Active"

// MembersOf returns the members referencing the given cell name, in input order.
func MembersOf(members []models.Member, cellName string) []models.Member {
	if cellName == "" {
		return nil
	}
	var out []models.Member
	for _, m := range members {
		if m.HomeCellName == cellName {
			out = append(out, m)
		}
	}
	return out
}

// ActiveMembersOf narrows MembersOf to membership_status == "Active".
func ActiveMembersOf(members []models.Member, cellName string) []models.Member {
	var out []models.Member
	for _, m := range MembersOf(members, cellName) {
		if m.MembershipStatus == StatusActive {
			out = append(out, m)
		}
	}
	return out
}

// Unassigned returns members with no home-cell reference.
func Unassigned(members []models.Member) []models.Member {
	var out []models.Member
	for _, m := range members {
		if m.HomeCellName == "" {
			out = append(out, m)
		}
	}
	return out
}

// Rate is the assigned share as a rounded percentage. 0 for an empty directory.
func Rate(members []models.Member) int {
	if len(members) == 0 {
		return 0
	}
	assigned := len(members) - len(Unassigned(members))
	return int(math.Round(float64(assigned) / float64(len(members)) * 100))
}

// CountsByCell maps cell name -> member count in one pass over the directory.
func CountsByCell(members []models.Member) map[string]int64 {
	counts := make(map[string]int64)
	for _, m := range members {
		if m.HomeCellName != "" {
			counts[m.HomeCellName]++
		}
	}
	return counts
}

// CascadeImpact is what a delete would take with it, shown to the
// administrator before the destructive call.
type CascadeImpact struct {
	Zones     int `json:"zones"`
	HomeCells int `json:"home_cells"`
	Members   int `json:"members"` // members whose assignment would be cleared
}

// DistrictImpact computes the cascade of deleting a district.
func DistrictImpact(districtID uint, zones []models.Zone, cells []models.HomeCell, members []models.Member) CascadeImpact {
	var imp CascadeImpact
	zoneIDs := make(map[uint]bool)
	for _, z := range zones {
		if z.DistrictID == districtID {
			imp.Zones++
			zoneIDs[z.ID] = true
		}
	}
	cellNames := make(map[string]bool)
	for _, c := range cells {
		if zoneIDs[c.ZoneID] {
			imp.HomeCells++
			cellNames[c.Name] = true
		}
	}
	for _, m := range members {
		if m.HomeCellName != "" && cellNames[m.HomeCellName] {
			imp.Members++
		}
	}
	return imp
}

// ZoneImpact computes the cascade of deleting a single zone.
func ZoneImpact(zoneID uint, cells []models.HomeCell, members []models.Member) CascadeImpact {
	var imp CascadeImpact
	cellNames := make(map[string]bool)
	for _, c := range cells {
		if c.ZoneID == zoneID {
			imp.HomeCells++
			cellNames[c.Name] = true
		}
	}
	for _, m := range members {
		if m.HomeCellName != "" && cellNames[m.HomeCellName] {
			imp.Members++
		}
	}
	return imp
}
