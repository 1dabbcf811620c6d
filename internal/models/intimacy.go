package models

type IntimacyRecord struct {
	Note string `json:"note"`
}

type IntimacyLog map[string]IntimacyRecord
