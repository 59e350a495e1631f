package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osoroyal/churchhub/models"
)

func seedHierarchyWithMembers(t *testing.T) (models.District, models.Zone) {
	t.Helper()
	d := createDistrict(t, "Central")
	z := createZone(t, "A1", d.ID)
	createHomeCell(t, "Zion", z.ID, nil)
	createHomeCell(t, "Bethel", z.ID, nil)
	seedMember(t, "m1", "John Doe", "Zion")
	seedMember(t, "m2", "Mary Mensah", "Bethel")
	seedMember(t, "m3", "Kofi Boateng", "")
	return d, z
}

func TestSendMessageResolvesAudience(t *testing.T) {
	setupTestDB(t)
	d, z := seedHierarchyWithMembers(t)

	cases := []struct {
		audience string
		want     int64
	}{
		{"all", 3},
		{"cell:Zion", 1},
		{fmt.Sprintf("zone:%d", z.ID), 2},
		{fmt.Sprintf("district:%d", d.ID), 2}, // unassigned members are not reachable via hierarchy
	}
	for _, tc := range cases {
		rec := doJSON(t, NewMessageHandler().Send, http.MethodPost, "/", map[string]any{
			"audience": tc.audience, "channel": "sms", "body": "Midweek service moved to 6pm",
		})
		requireStatus(t, rec, http.StatusCreated)
		var msg models.Message
		decodeBody(t, rec, &msg)
		assert.Equal(t, tc.want, msg.Recipients, "audience %s", tc.audience)
	}
}

func TestSendMessageValidation(t *testing.T) {
	setupTestDB(t)

	// email needs a subject
	rec := doJSON(t, NewMessageHandler().Send, http.MethodPost, "/", map[string]any{
		"audience": "all", "channel": "email", "body": "hello",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	// unknown selector
	rec = doJSON(t, NewMessageHandler().Send, http.MethodPost, "/", map[string]any{
		"audience": "planet:earth", "channel": "sms", "body": "hello",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	// zone id must be numeric
	rec = doJSON(t, NewMessageHandler().Send, http.MethodPost, "/", map[string]any{
		"audience": "zone:abc", "channel": "sms", "body": "hello",
	})
	requireStatus(t, rec, http.StatusBadRequest)
}
