package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardCSV(t *testing.T) {
	image := "https://cdn.example/casey.png"
	entries := []LeaderboardEntry{
		{CandidateID: "c-1", Name: "Casey Reyes", ImageURL: &image, Votes: 12},
		{CandidateID: AbstainID, Name: "Abstain", Votes: 3},
	}

	out, err := LeaderboardCSV("ccis", entries)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"institute_id", "candidate_id", "name", "image_url", "votes"}, records[0])
	assert.Equal(t, []string{"ccis", "c-1", "Casey Reyes", image, "12"}, records[1])
	assert.Equal(t, []string{"ccis", "abstain", "Abstain", "", "3"}, records[2])
}

func TestLeaderboardCSVEmpty(t *testing.T) {
	out, err := LeaderboardCSV("ccis", nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "institute_id", records[0][0])
}
