package main

import (
	"context"
	"log"

	"github.com/courseforge/backend/config"
	"github.com/courseforge/backend/store"
	"github.com/joho/godotenv"
)

// Entry point for the scheduled integrity check: connects to the store,
// makes sure indexes exist, and reports cross-document inconsistencies
// left behind by non-transactional multi-document writes.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("indexes:", err)
	}

	report, err := db.CheckIntegrity(ctx)
	if err != nil {
		log.Fatal("integrity check:", err)
	}
	if report.Clean() {
		log.Printf("integrity check %s: clean", report.RunID)
		return
	}
	log.Printf("integrity check %s found problems", report.RunID)
	for _, d := range report.DanglingLectureRefs {
		log.Printf("  course %s references missing lecture %s", d.Course.Hex(), d.Lecture.Hex())
	}
	for _, s := range report.StaleLectureCounts {
		log.Printf("  course %s stores totalLectures=%d but has %d lectures", s.Course.Hex(), s.Stored, s.Actual)
	}
	for _, id := range report.OrphanedProgress {
		log.Printf("  progress %s points at a missing lecture", id.Hex())
	}
}
