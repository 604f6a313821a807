package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_RoundTrip(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleCompany} {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	_, err := ParseRole("admin")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Role(0).String())
}

func TestStudent_PublicOmitsPassword(t *testing.T) {
	s := NewStudent("ana", "Ana", "UNIZG", "$2a$hash")

	raw, err := json.Marshal(s.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hashed_password")
	assert.NotContains(t, string(raw), "$2a$hash")
	assert.Contains(t, string(raw), `"cv":null`)
	assert.Contains(t, string(raw), `"connections":[]`)

	raw, err = json.Marshal(s.Card())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hashed_password")
	assert.NotContains(t, string(raw), "meetings")
}

func TestCompany_PublicOmitsPassword(t *testing.T) {
	c := NewCompany("acme", "Acme d.o.o.", "IT", "$2a$hash")
	raw, err := json.Marshal(c.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hashed_password")
	assert.Contains(t, string(raw), `"jobs_posted":[]`)
}

func TestStudent_NormalizeOldRecords(t *testing.T) {
	var s Student
	require.NoError(t, json.Unmarshal([]byte(`{"username":"old"}`), &s))
	s.Normalize()
	assert.NotNil(t, s.Connections)
	assert.NotNil(t, s.RegisteredEvents)
	assert.NotNil(t, s.Meetings)
}

func TestCompany_NextEventIDAndFindJob(t *testing.T) {
	c := NewCompany("acme", "", "", "")
	assert.Equal(t, 1, c.NextEventID())
	c.Events = []CompanyEvent{{ID: 1}, {ID: 4}}
	assert.Equal(t, 5, c.NextEventID())

	c.JobsPosted = []Job{{ID: 1, Title: "Intern"}, {ID: 2}}
	assert.Equal(t, 0, c.FindJob(1))
	assert.Equal(t, -1, c.FindJob(9))
	assert.Equal(t, "acme", c.DisplayName())
}

func TestApplication_MatchesAndAddressedTo(t *testing.T) {
	one, two := 1, 2
	acme := "acme"

	byUsername := Application{Username: "ana", JobName: "Intern", CompanyUsername: &acme, JobID: &one}
	assert.True(t, byUsername.AddressedTo("acme", "Acme d.o.o."))
	assert.True(t, byUsername.Matches("ana", "Intern", nil))
	assert.True(t, byUsername.Matches("ana", "Intern", &one))
	assert.False(t, byUsername.Matches("ana", "Intern", &two))
	assert.False(t, byUsername.Matches("ivan", "Intern", nil))

	byName := Application{Username: "ana", JobName: "Intern", CompanyName: "Acme d.o.o."}
	assert.True(t, byName.AddressedTo("acme", "Acme d.o.o."))
	assert.True(t, byName.Matches("ana", "Intern", &two))
	assert.False(t, byName.AddressedTo("other", "Other"))
}

func TestNextApplicationID(t *testing.T) {
	assert.Equal(t, 1, NextApplicationID(0, nil))
	assert.Equal(t, 8, NextApplicationID(0, []Application{{ID: 3}, {ID: 7}}))
	assert.Equal(t, 10, NextApplicationID(9, []Application{{ID: 3}}))
	assert.Equal(t, 5, NextApplicationID(2, []Application{{ID: 4}}))
}
