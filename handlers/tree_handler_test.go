package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type treeResponse struct {
	Tree []struct {
		District struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"district"`
		Expanded bool `json:"expanded"`
		Zones    []struct {
			Expanded bool `json:"expanded"`
			Cells    []struct {
				Name        string `json:"name"`
				MemberCount int64  `json:"member_count"`
			} `json:"cells"`
		} `json:"zones"`
	} `json:"tree"`
	AssignmentRate int `json:"assignment_rate"`
	Unassigned     int `json:"unassigned"`
}

func TestTreeDefaultsAndCounts(t *testing.T) {
	setupTestDB(t)

	central := createDistrict(t, "Central")
	east := createDistrict(t, "East")
	z := createZone(t, "A1", central.ID)
	createZone(t, "B1", east.ID)
	createHomeCell(t, "Zion", z.ID, nil)
	seedMember(t, "m1", "John Doe", "Zion")
	seedMember(t, "m2", "Mary Mensah", "")

	rec := doJSON(t, NewTreeHandler().Get, http.MethodGet, "/", nil)
	requireStatus(t, rec, http.StatusOK)
	var resp treeResponse
	decodeBody(t, rec, &resp)

	require.Len(t, resp.Tree, 2)
	assert.True(t, resp.Tree[0].Expanded, "first district opens by default")
	assert.False(t, resp.Tree[1].Expanded)
	require.Len(t, resp.Tree[0].Zones, 1)
	require.Len(t, resp.Tree[0].Zones[0].Cells, 1)
	assert.Equal(t, int64(1), resp.Tree[0].Zones[0].Cells[0].MemberCount)

	assert.Equal(t, 50, resp.AssignmentRate)
	assert.Equal(t, 1, resp.Unassigned)
}

func TestTreeSearchAndExplicitExpansion(t *testing.T) {
	setupTestDB(t)

	central := createDistrict(t, "Central")
	createDistrict(t, "East")
	createZone(t, "A1", central.ID)

	rec := doJSON(t, NewTreeHandler().Get, http.MethodGet, "/?q=east", nil)
	requireStatus(t, rec, http.StatusOK)
	var resp treeResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Tree, 1)
	assert.Equal(t, "East", resp.Tree[0].District.Name)

	rec = doJSON(t, NewTreeHandler().Get, http.MethodGet, "/?expanded=d-2", nil)
	requireStatus(t, rec, http.StatusOK)
	resp = treeResponse{}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Tree, 2)
	assert.False(t, resp.Tree[0].Expanded)
	assert.True(t, resp.Tree[1].Expanded)
}

func TestTreeEmptyDatabase(t *testing.T) {
	setupTestDB(t)

	rec := doJSON(t, NewTreeHandler().Get, http.MethodGet, "/", nil)
	requireStatus(t, rec, http.StatusOK)
	var resp treeResponse
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Tree)
	assert.Equal(t, 0, resp.AssignmentRate, "no members must not divide by zero")
}
