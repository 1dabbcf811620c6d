package models

type NoteRecord struct {
	Text string `json:"text"`
}

type NoteLog map[string]NoteRecord
