package models

const (
	VisitRoutine      = "routine"
	VisitConsultation = "consultation"
	VisitUltrasound   = "ultrasound"
	VisitPapSmear     = "pap"
	VisitSTIScreening = "sti"
	VisitPrenatal     = "prenatal"
	VisitPostpartum   = "postpartum"
	VisitMammogram    = "mammogram"
	VisitOther        = "other"
)

// MedicalVisitRecord describes a gynecologist appointment. Time is an
// optional HH:MM wall-clock string; empty means no time was recorded.
type MedicalVisitRecord struct {
	Type  string `json:"type"`
	Notes string `json:"notes"`
	Time  string `json:"time,omitempty"`
}

type MedicalVisitLog map[string]MedicalVisitRecord

var visitTypeLabels = map[string]string{
	VisitRoutine:      "Routine Checkup",
	VisitConsultation: "Consultation",
	VisitUltrasound:   "Ultrasound",
	VisitPapSmear:     "Pap Smear",
	VisitSTIScreening: "STI Screening",
	VisitPrenatal:     "Prenatal Check",
	VisitPostpartum:   "Postpartum Check",
	VisitMammogram:    "Mammogram Referral",
	VisitOther:        "Other",
}

func VisitTypeLabel(visitType string) string {
	if label, ok := visitTypeLabels[visitType]; ok {
		return label
	}
	return visitType
}

func IsValidVisitType(visitType string) bool {
	_, ok := visitTypeLabels[visitType]
	return ok
}
