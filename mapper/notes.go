// ABOUTME: Note row mapping
// ABOUTME: Keeps notes that name a company and have content
package mapper

import (
	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/normalize"
)

// noteKeyPrefix is how much of the content feeds a derived note id.
const noteKeyPrefix = 32

func MapNote(s Schema, row Row) models.Note {
	company := s.Text(row, FieldCompanyName)
	date := normalize.ParseDate(s.Text(row, FieldDate))
	content := s.Text(row, FieldContent)

	id := s.Text(row, FieldID)
	if id == "" {
		id = normalize.GenerateID(company + "|" + date + "|" + prefix(content, noteKeyPrefix))
	}

	return models.Note{
		ID:          id,
		CompanyID:   normalize.CompanyID(company),
		CompanyName: company,
		Contact:     s.Text(row, FieldContact),
		Date:        date,
		Author:      s.Text(row, FieldAuthor),
		Content:     content,
	}
}

// MapNotes maps rows in order and drops notes missing a company or content.
func MapNotes(s Schema, rows []Row) []models.Note {
	notes := make([]models.Note, 0, len(rows))
	for _, row := range rows {
		note := MapNote(s, row)
		if note.CompanyName == "" || note.Content == "" {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
