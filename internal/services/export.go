package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// LeaderboardCSV renders leaderboard rows for download.
func LeaderboardCSV(instituteID string, entries []LeaderboardEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"institute_id", "candidate_id", "name", "image_url", "votes"}); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		imageURL := ""
		if e.ImageURL != nil {
			imageURL = *e.ImageURL
		}
		record := []string{instituteID, e.CandidateID, e.Name, imageURL, strconv.Itoa(e.Votes)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
