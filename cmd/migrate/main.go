package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vellum-cms/vellum-backend/internal/config"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/migration"
	"github.com/vellum-cms/vellum-backend/internal/repository"
)

// Migration target constants
const (
	targetContentTypes = "content_types"
	targetEntries      = "entries"
)

// exportFile is the Contentful-format export document this tool imports
type exportFile struct {
	ContentTypes []exportContentType `json:"contentTypes"`
	Entries      []exportEntry       `json:"entries"`
}

type exportSys struct {
	ID               string      `json:"id"`
	PublishedVersion *uint       `json:"publishedVersion,omitempty"`
	CreatedAt        *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time  `json:"updatedAt,omitempty"`
	ContentType      *exportLink `json:"contentType,omitempty"`
}

type exportLink struct {
	Sys struct {
		ID string `json:"id"`
	} `json:"sys"`
}

type exportContentType struct {
	Sys          exportSys                `json:"sys"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description,omitempty"`
	DisplayField string                   `json:"displayField,omitempty"`
	Fields       []domain.FieldDefinition `json:"fields"`
}

type exportEntry struct {
	Sys    exportSys       `json:"sys"`
	Fields domain.FieldMap `json:"fields"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	filePath := flag.String("file", "export.json", "Contentful-format export JSON path")
	spaceID := flag.String("space", "", "target space ID (required)")
	envName := flag.String("env", domain.DefaultEnvironment, "target environment name")
	target := flag.String("target", "all", "migration target: all, content_types, entries")
	userID := flag.Uint64("user", 1, "user ID recorded as creator of imported rows")
	dryRun := flag.Bool("dry-run", false, "parse the export and report counts without writing")
	verify := flag.Bool("verify", false, "compare export counts against database rows")
	batchSize := flag.Int("batch-size", 500, "batch insert size for entries")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	export, err := loadExport(*filePath)
	if err != nil {
		log.Fatalf("Failed to read export file: %v", err)
	}
	log.Printf("[import] Export file: %d content types, %d entries (%d published)",
		len(export.ContentTypes), len(export.Entries), countPublished(export.Entries))

	if *dryRun {
		runDryRun(export, *target)
		return
	}

	if *spaceID == "" {
		log.Fatal("--space is required")
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	// Ensure engine schema exists
	if err := migration.Run(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	space, env, err := resolveTarget(db, *spaceID, *envName)
	if err != nil {
		log.Fatalf("Failed to resolve target: %v", err)
	}
	log.Printf("[import] Target: space=%s (%s), environment=%s (id=%d)",
		space.Name, space.ID, env.Name, env.ID)

	if *verify {
		runVerify(db, export, space.ID, env.ID)
		return
	}

	runImport(db, export, space, env, *target, *userID, *batchSize)
}

func loadExport(path string) (*exportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var export exportFile
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("invalid export JSON: %w", err)
	}
	return &export, nil
}

func countPublished(entries []exportEntry) int {
	n := 0
	for _, e := range entries {
		if e.Sys.PublishedVersion != nil {
			n++
		}
	}
	return n
}

func parseTargets(target string) []string {
	if target == "all" {
		return []string{targetContentTypes, targetEntries}
	}
	return strings.Split(target, ",")
}

func resolveTarget(db *gorm.DB, spaceID, envName string) (*domain.Space, *domain.Environment, error) {
	spaceRepo := repository.NewSpaceRepository(db)
	space, err := spaceRepo.FindByID(spaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("space %s: %w", spaceID, err)
	}
	env, err := spaceRepo.FindEnvironment(spaceID, envName)
	if err != nil {
		return nil, nil, fmt.Errorf("environment %s: %w", envName, err)
	}
	return space, env, nil
}

func runDryRun(export *exportFile, target string) {
	for _, t := range parseTargets(target) {
		switch t {
		case targetContentTypes:
			for _, ct := range export.ContentTypes {
				log.Printf("[dry-run] content type %s (%s): %d fields", ct.Sys.ID, ct.Name, len(ct.Fields))
			}
		case targetEntries:
			log.Printf("[dry-run] would import %d entries (%d published, %d draft)",
				len(export.Entries), countPublished(export.Entries),
				len(export.Entries)-countPublished(export.Entries))
		default:
			log.Printf("[dry-run] Unknown target: %s", t)
		}
	}
}

func runImport(db *gorm.DB, export *exportFile, space *domain.Space, env *domain.Environment, target string, userID uint64, batchSize int) {
	start := time.Now()

	for _, t := range parseTargets(target) {
		log.Printf("[import] Starting: %s", t)
		tStart := time.Now()

		var err error
		switch t {
		case targetContentTypes:
			err = importContentTypes(db, export.ContentTypes, space.ID, env.ID)
		case targetEntries:
			err = importEntries(db, export.Entries, space.ID, env.ID, userID, batchSize)
		default:
			log.Printf("[import] Unknown target: %s", t)
			continue
		}

		if err != nil {
			log.Printf("[import] FAILED %s: %v", t, err)
			os.Exit(1)
		}
		log.Printf("[import] Completed %s in %v", t, time.Since(tStart))
	}

	log.Printf("[import] All imports completed in %v", time.Since(start))
}

// importContentTypes upserts every content type so re-running the import
// refreshes the schema instead of failing on duplicates.
func importContentTypes(db *gorm.DB, types []exportContentType, spaceID string, envID uint64) error {
	ctypeRepo := repository.NewContentTypeRepository(db)

	for _, ct := range types {
		if ct.Sys.ID == "" {
			return fmt.Errorf("content type without sys.id")
		}
		row := &domain.ContentType{
			SpaceID:       spaceID,
			EnvironmentID: envID,
			TypeID:        ct.Sys.ID,
			Name:          ct.Name,
			DisplayField:  ct.DisplayField,
			Fields:        ct.Fields,
		}
		if ct.Description != "" {
			desc := ct.Description
			row.Description = &desc
		}
		if err := ctypeRepo.Upsert(row); err != nil {
			return fmt.Errorf("content type %s: %w", ct.Sys.ID, err)
		}
	}
	log.Printf("[import:content_types] Imported %d content types", len(types))
	return nil
}

// importEntries inserts entries in batches. Entries the export marks as
// published come in as published v1 with a matching snapshot so the
// delivery API can serve them immediately.
func importEntries(db *gorm.DB, entries []exportEntry, spaceID string, envID uint64, userID uint64, batchSize int) error {
	if batchSize < 1 {
		batchSize = 500
	}

	now := time.Now()
	rows := make([]*domain.Entry, 0, len(entries))
	published := make([]bool, 0, len(entries))
	for _, e := range entries {
		if e.Sys.ContentType == nil || e.Sys.ContentType.Sys.ID == "" {
			return fmt.Errorf("entry %s without content type link", e.Sys.ID)
		}

		row := &domain.Entry{
			SpaceID:       spaceID,
			EnvironmentID: envID,
			ContentType:   e.Sys.ContentType.Sys.ID,
			Fields:        e.Fields,
			Status:        domain.StatusDraft,
			Version:       1,
			CreatedBy:     userID,
			UpdatedBy:     userID,
		}

		if e.Sys.PublishedVersion != nil {
			publishedAt := now
			if e.Sys.UpdatedAt != nil {
				publishedAt = *e.Sys.UpdatedAt
			}
			v := uint(1)
			row.Status = domain.StatusPublished
			row.PublishedVersion = &v
			row.FirstPublishedAt = &publishedAt
			row.PublishedAt = &publishedAt
		}

		rows = append(rows, row)
		published = append(published, e.Sys.PublishedVersion != nil)
	}

	// 배치 INSERT. gorm이 autoincrement ID를 역채움한다
	if err := db.CreateInBatches(rows, batchSize).Error; err != nil {
		return err
	}

	snapshots := make([]*domain.EntrySnapshot, 0, countPublished(entries))
	for i, row := range rows {
		if !published[i] {
			continue
		}
		snapshots = append(snapshots, &domain.EntrySnapshot{
			EntryID:     row.ID,
			Version:     1,
			ContentType: row.ContentType,
			Fields:      row.Fields,
			Status:      string(domain.StatusPublished),
			PublishedBy: userID,
		})
	}
	if len(snapshots) > 0 {
		if err := db.CreateInBatches(snapshots, batchSize).Error; err != nil {
			return err
		}
	}

	log.Printf("[import:entries] Imported %d entries (%d published)", len(rows), len(snapshots))
	return nil
}

// runVerify compares export counts against what actually landed in the DB
func runVerify(db *gorm.DB, export *exportFile, spaceID string, envID uint64) {
	var ctypeCount, entryCount, publishedCount, snapshotCount int64

	db.Model(&domain.ContentType{}).Where("environment_id = ?", envID).Count(&ctypeCount)
	db.Model(&domain.Entry{}).Where("space_id = ? AND environment_id = ?", spaceID, envID).Count(&entryCount)
	db.Model(&domain.Entry{}).
		Where("space_id = ? AND environment_id = ? AND status IN ?", spaceID, envID,
			[]string{string(domain.StatusPublished), string(domain.StatusChanged)}).
		Count(&publishedCount)
	db.Model(&domain.EntrySnapshot{}).
		Joins("JOIN entries ON entries.id = entry_snapshots.entry_id").
		Where("entries.space_id = ? AND entries.environment_id = ?", spaceID, envID).
		Count(&snapshotCount)

	log.Printf("[verify] content types: export=%d db=%d", len(export.ContentTypes), ctypeCount)
	log.Printf("[verify] entries: export=%d db=%d", len(export.Entries), entryCount)
	log.Printf("[verify] published: export=%d db=%d (snapshots=%d)",
		countPublished(export.Entries), publishedCount, snapshotCount)

	if int64(len(export.ContentTypes)) > ctypeCount || int64(len(export.Entries)) > entryCount {
		log.Println("[verify] MISMATCH: database has fewer rows than the export")
		os.Exit(1)
	}
	log.Println("[verify] OK")
}
