package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/fema/internal/models"
)

// Export reaches back this far when no explicit range is requested.
const defaultExportYears = 2

var ExportCSVHeaders = []string{
	"Date",
	"Period",
	"Flow",
	"Period start",
	"Fertile",
	"Ovulation",
	"Predicted period",
	"Pregnancy",
	"Cycle day",
	"Note",
	"Mood",
	"Sleep",
	"Weight (kg)",
	"Temperature (C)",
	"Symptoms",
	"Visit",
	"Visit time",
	"Visit notes",
	"Intimacy",
}

type ExportPregnancyPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	BirthDate string `json:"birthDate,omitempty"`
}

type ExportPeriodDay struct {
	Date          string `json:"date"`
	FlowIntensity int    `json:"flowIntensity"`
	IsStart       bool   `json:"isStart"`
}

type ExportCycleDay struct {
	Date     string `json:"date"`
	CycleDay int    `json:"cycleDay"`
}

type ExportNote struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

type ExportMood struct {
	Date        string   `json:"date"`
	Mood        string   `json:"mood"`
	Sleep       string   `json:"sleep"`
	Weight      *float64 `json:"weight,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Symptoms    []string `json:"symptoms"`
}

type ExportVisit struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Time  string `json:"time,omitempty"`
	Notes string `json:"notes"`
}

type ExportIntimacy struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

type ExportRawData struct {
	PeriodData    models.PeriodLog       `json:"periodData"`
	NotesData     models.NoteLog         `json:"notesData"`
	SexData       models.IntimacyLog     `json:"sexData"`
	MedicalData   models.MedicalVisitLog `json:"gynecologistData"`
	MoodData      models.MoodLog         `json:"moodData"`
	PregnancyData models.PregnancyRecord `json:"pregnancyData"`
}

// ExportData is the flat dated record set consumed by the JSON and
// spreadsheet formatters: derived per-date flags plus the raw buckets.
type ExportData struct {
	ExportDate        string                  `json:"exportDate"`
	PregnancyPeriods  []ExportPregnancyPeriod `json:"pregnancyPeriods"`
	MenstrualCycles   []ExportPeriodDay       `json:"menstrualCycles"`
	FertilityWindows  []ExportCycleDay        `json:"fertilityWindows"`
	OvulationDays     []ExportCycleDay        `json:"ovulationDays"`
	Notes             []ExportNote            `json:"notes"`
	Moods             []ExportMood            `json:"moods"`
	GynecologistVisit []ExportVisit           `json:"gynecologistVisits"`
	SexualActivity    []ExportIntimacy        `json:"sexualActivity"`
	RawData           ExportRawData           `json:"rawData"`
}

type ExportService struct {
	builder   *DayStateBuilder
	pregnancy models.PregnancyRecord
	notes     models.NoteLog
	intimacy  models.IntimacyLog
	visits    models.MedicalVisitLog
	moods     models.MoodLog
	periods   models.PeriodLog
	location  *time.Location
}

func NewExportService(
	builder *DayStateBuilder,
	periods models.PeriodLog,
	notes models.NoteLog,
	intimacy models.IntimacyLog,
	visits models.MedicalVisitLog,
	moods models.MoodLog,
	pregnancy models.PregnancyRecord,
	location *time.Location,
) *ExportService {
	if location == nil {
		location = time.Local
	}
	return &ExportService{
		builder:   builder,
		pregnancy: pregnancy,
		notes:     notes,
		intimacy:  intimacy,
		visits:    visits,
		moods:     moods,
		periods:   periods,
		location:  location,
	}
}

// DefaultRange is the last two years ending today.
func (service *ExportService) DefaultRange(now time.Time) (time.Time, time.Time) {
	end := NormalizeDate(now.In(service.location))
	start := NormalizeDate(end.AddDate(-defaultExportYears, 0, 0))
	return start, end
}

// BuildExportData walks the range one day at a time and collects every
// derived flag and raw record into the export shape.
func (service *ExportService) BuildExportData(from time.Time, to time.Time, now time.Time) ExportData {
	data := ExportData{
		ExportDate:        now.In(service.location).Format(time.RFC3339),
		PregnancyPeriods:  make([]ExportPregnancyPeriod, 0, 1),
		MenstrualCycles:   make([]ExportPeriodDay, 0),
		FertilityWindows:  make([]ExportCycleDay, 0),
		OvulationDays:     make([]ExportCycleDay, 0),
		Notes:             make([]ExportNote, 0),
		Moods:             make([]ExportMood, 0),
		GynecologistVisit: make([]ExportVisit, 0),
		SexualActivity:    make([]ExportIntimacy, 0),
		RawData: ExportRawData{
			PeriodData:    service.periods,
			NotesData:     service.notes,
			SexData:       service.intimacy,
			MedicalData:   service.visits,
			MoodData:      service.moods,
			PregnancyData: service.pregnancy,
		},
	}

	if service.pregnancy.HasStart() {
		endDate := service.pregnancy.BirthDate
		if endDate == "" {
			if start, err := ParseDate(service.pregnancy.StartDate, service.location); err == nil {
				endDate = FormatDate(AddMonths(start, gestationMonths))
			}
		}
		data.PregnancyPeriods = append(data.PregnancyPeriods, ExportPregnancyPeriod{
			StartDate: service.pregnancy.StartDate,
			EndDate:   endDate,
			BirthDate: service.pregnancy.BirthDate,
		})
	}

	for _, state := range service.builder.StatesForRange(from, to, now) {
		key := state.DateKey

		if state.IsPeriod {
			data.MenstrualCycles = append(data.MenstrualCycles, ExportPeriodDay{
				Date:          key,
				FlowIntensity: state.Flow,
				IsStart:       state.IsStart,
			})
		}
		if state.IsFertility {
			data.FertilityWindows = append(data.FertilityWindows, ExportCycleDay{Date: key, CycleDay: state.CycleDay})
		}
		if state.IsOvulation {
			data.OvulationDays = append(data.OvulationDays, ExportCycleDay{Date: key, CycleDay: state.CycleDay})
		}
		if note, ok := service.notes[key]; ok {
			data.Notes = append(data.Notes, ExportNote{Date: key, Text: note.Text})
		}
		if mood, ok := service.moods[key]; ok {
			data.Moods = append(data.Moods, ExportMood{
				Date:        key,
				Mood:        mood.Mood,
				Sleep:       mood.Sleep,
				Weight:      mood.Weight,
				Temperature: mood.Temp,
				Symptoms:    append([]string(nil), mood.Symptoms...),
			})
		}
		if visit, ok := service.visits[key]; ok {
			data.GynecologistVisit = append(data.GynecologistVisit, ExportVisit{
				Date:  key,
				Type:  visit.Type,
				Time:  visit.Time,
				Notes: visit.Notes,
			})
		}
		if activity, ok := service.intimacy[key]; ok {
			data.SexualActivity = append(data.SexualActivity, ExportIntimacy{Date: key, Note: activity.Note})
		}
	}

	return data
}

// BuildCSVRows renders one spreadsheet row per day in the range.
func (service *ExportService) BuildCSVRows(from time.Time, to time.Time, now time.Time) [][]string {
	states := service.builder.StatesForRange(from, to, now)
	rows := make([][]string, 0, len(states))
	for _, state := range states {
		rows = append(rows, service.csvRow(state))
	}
	return rows
}

func (service *ExportService) csvRow(state DayState) []string {
	key := state.DateKey

	flow := ""
	if state.IsPeriod {
		flow = strconv.Itoa(state.Flow)
	}
	cycleDay := ""
	if state.CycleDay > 0 {
		cycleDay = strconv.Itoa(state.CycleDay)
	}

	pregnancy := ""
	if state.Pregnancy.State != PregnancyNone {
		pregnancy = string(state.Pregnancy.State)
	}
	if state.Pregnancy.Due {
		pregnancy = strings.TrimSpace(pregnancy + " due")
	}

	var noteText, moodValue, sleepValue, weightValue, tempValue, symptoms string
	if note, ok := service.notes[key]; ok {
		noteText = note.Text
	}
	if mood, ok := service.moods[key]; ok {
		moodValue = mood.Mood
		sleepValue = mood.Sleep
		if mood.Weight != nil {
			weightValue = strconv.FormatFloat(*mood.Weight, 'f', -1, 64)
		}
		if mood.Temp != nil {
			tempValue = strconv.FormatFloat(*mood.Temp, 'f', -1, 64)
		}
		symptoms = strings.Join(mood.Symptoms, "; ")
	}

	var visitLabel, visitTime, visitNotes string
	if visit, ok := service.visits[key]; ok {
		visitLabel = models.VisitTypeLabel(visit.Type)
		visitTime = visit.Time
		visitNotes = visit.Notes
	}

	intimacyValue := ""
	if activity, ok := service.intimacy[key]; ok {
		intimacyValue = "Yes"
		if activity.Note != "" {
			intimacyValue = activity.Note
		}
	}

	return []string{
		key,
		csvYesNo(state.IsPeriod),
		flow,
		csvYesNo(state.IsStart),
		csvYesNo(state.IsFertility),
		csvYesNo(state.IsOvulation),
		csvYesNo(state.IsPredicted),
		pregnancy,
		cycleDay,
		noteText,
		moodValue,
		sleepValue,
		weightValue,
		tempValue,
		symptoms,
		visitLabel,
		visitTime,
		visitNotes,
		intimacyValue,
	}
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
