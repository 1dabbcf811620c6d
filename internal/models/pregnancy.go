package models

// PregnancyRecord is the singleton pregnancy bucket. StartDate and
// BirthDate are date keys; an empty BirthDate means the pregnancy is
// still open. An empty StartDate means no pregnancy is recorded.
type PregnancyRecord struct {
	StartDate string `json:"startDate,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

func (record PregnancyRecord) HasStart() bool {
	return record.StartDate != ""
}

func (record PregnancyRecord) HasBirth() bool {
	return record.BirthDate != ""
}
