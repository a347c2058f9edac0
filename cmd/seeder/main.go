package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/storage/badger"
	"github.com/google/uuid"
)

// sectionRecord is the JSON wire format of one dataset entry. Field names
// follow the scraped dataset files.
type sectionRecord struct {
	SectionCode       string   `json:"section_code"`
	SectionNumber     string   `json:"section_number"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Category          string   `json:"category,omitempty"`
	CrimeType         string   `json:"crime_type,omitempty"`
	Severity          string   `json:"severity,omitempty"`
	Punishment        string   `json:"punishment,omitempty"`
	FineRange         string   `json:"fine_range,omitempty"`
	ImprisonmentRange string   `json:"imprisonment_range,omitempty"`
	Bailable          string   `json:"bailable,omitempty"`
	Cognizable        string   `json:"cognizable,omitempty"`
	Compoundable      string   `json:"compoundable,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	Source            string   `json:"source,omitempty"`
}

// sampleSections keeps the seeder usable without a dataset file.
var sampleSections = []sectionRecord{
	{
		SectionCode:   "BNS 103",
		SectionNumber: "103",
		Title:         "Punishment for murder",
		Description:   "Whoever commits murder shall be punished with death or imprisonment for life, and shall also be liable to fine.",
		Punishment:    "Death or imprisonment for life, and fine",
		Bailable:      "Non-bailable",
		Cognizable:    "Cognizable",
		Compoundable:  "Non-compoundable",
	},
	{
		SectionCode:   "BNS 303",
		SectionNumber: "303",
		Title:         "Theft",
		Description:   "Whoever, intending to take dishonestly any movable property out of the possession of any person without that person's consent, moves that property in order to such taking, is said to commit theft.",
		Punishment:    "Imprisonment up to three years, or fine, or both",
		Bailable:      "Bailable",
		Cognizable:    "Cognizable",
		Compoundable:  "Compoundable",
	},
	{
		SectionCode:   "BNS 309",
		SectionNumber: "309",
		Title:         "Robbery",
		Description:   "In all robbery there is either theft or extortion. Theft is robbery if, in order to the committing of the theft, the offender voluntarily causes or attempts to cause to any person death or hurt or wrongful restraint.",
		Punishment:    "Rigorous imprisonment up to ten years, and fine",
		Bailable:      "Non-bailable",
		Cognizable:    "Cognizable",
		Compoundable:  "Non-compoundable",
	},
	{
		SectionCode:   "BNS 318",
		SectionNumber: "318",
		Title:         "Cheating",
		Description:   "Whoever, by deceiving any person, fraudulently or dishonestly induces the person so deceived to deliver any property to any person, is said to cheat.",
		Punishment:    "Imprisonment up to three years, or fine, or both",
		Bailable:      "Bailable",
		Cognizable:    "Non-cognizable",
		Compoundable:  "Compoundable",
	},
}

var (
	seedFileName = flag.String("src", "", "JSON file of law sections")
	dbPath       = flag.String("db", "./sections_db", "path to BadgerDB database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// loadRecords reads the dataset file, or falls back to the embedded sample.
func loadRecords(filename string) ([]sectionRecord, error) {
	if filename == "" {
		return sampleSections, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var records []sectionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return records, nil
}

func toLawSection(r sectionRecord) *core.LawSection {
	return &core.LawSection{
		SectionCode:       r.SectionCode,
		SectionNumber:     r.SectionNumber,
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		CrimeType:         r.CrimeType,
		Severity:          core.ParseSeverity(r.Severity),
		Punishment:        r.Punishment,
		FineRange:         r.FineRange,
		ImprisonmentRange: r.ImprisonmentRange,
		Bailable:          core.ParseTriState(r.Bailable),
		Cognizable:        core.ParseTriState(r.Cognizable),
		Compoundable:      core.ParseTriState(r.Compoundable),
		Keywords:          r.Keywords,
		Source:            r.Source,
	}
}

func main() {
	records, err := loadRecords(*seedFileName)
	if err != nil {
		panic(err)
	}

	backend, err := badger.OpenBackend(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer backend.Close()

	repo, err := badger.NewSectionRepository(backend)
	if err != nil {
		panic(err)
	}
	defer repo.Close()

	ctx := context.Background()

	sections := make([]*core.LawSection, 0, len(records))
	for _, record := range records {
		if record.SectionCode == "" || record.Title == "" {
			slog.Warn("skipping record without code or title", "code", record.SectionCode)
			continue
		}
		sections = append(sections, toLawSection(record))
	}

	stored, err := repo.PutSections(ctx, sections...)
	if err != nil {
		panic(err)
	}

	runID := uuid.NewString()
	if err := backend.SetLastImportRun(runID); err != nil {
		panic(err)
	}

	slog.Info("seed complete", "sections", len(stored), "run_id", runID, "db", *dbPath)
}
