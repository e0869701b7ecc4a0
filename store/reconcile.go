package store

import (
	"context"
	"time"

	"github.com/courseforge/backend/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Multi-document writes here have no transactions, so a crash between a
// lecture insert and the course-list append leaves the collections
// disagreeing. CheckIntegrity walks the store and reports what a
// reconciliation job would need to repair.

// DanglingLectureRef is a course lecture entry with no backing lecture
// document.
type DanglingLectureRef struct {
	Course  primitive.ObjectID `json:"course"`
	Lecture primitive.ObjectID `json:"lecture"`
}

// StaleLectureCount is a course whose stored totalLectures snapshot no
// longer matches its lectures list.
type StaleLectureCount struct {
	Course primitive.ObjectID `json:"course"`
	Stored int                `json:"stored"`
	Actual int                `json:"actual"`
}

type IntegrityReport struct {
	RunID               string               `json:"runId"`
	GeneratedAt         time.Time            `json:"generatedAt"`
	DanglingLectureRefs []DanglingLectureRef `json:"danglingLectureRefs"`
	StaleLectureCounts  []StaleLectureCount  `json:"staleLectureCounts"`
	OrphanedProgress    []primitive.ObjectID `json:"orphanedProgress"`
}

// Clean reports whether the check found nothing to repair.
func (r *IntegrityReport) Clean() bool {
	return len(r.DanglingLectureRefs) == 0 &&
		len(r.StaleLectureCounts) == 0 &&
		len(r.OrphanedProgress) == 0
}

// CheckIntegrity scans courses, lectures, and progress records for
// cross-document inconsistencies. Read-only; repairs are left to the
// operator or a compensating write.
func (db *DB) CheckIntegrity(ctx context.Context) (*IntegrityReport, error) {
	courses, err := db.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	lectureIDs, err := db.allLectureIDs(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := db.allProgress(ctx)
	if err != nil {
		return nil, err
	}
	return buildIntegrityReport(courses, lectureIDs, progress), nil
}

// buildIntegrityReport does the pure diffing so the logic is testable
// without a live store.
func buildIntegrityReport(courses []models.Course, lectureIDs map[primitive.ObjectID]bool, progress []models.LectureProgress) *IntegrityReport {
	report := &IntegrityReport{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now(),
	}
	for _, c := range courses {
		for _, ref := range c.Lectures {
			if !lectureIDs[ref] {
				report.DanglingLectureRefs = append(report.DanglingLectureRefs, DanglingLectureRef{Course: c.ID, Lecture: ref})
			}
		}
		if c.TotalLectures != len(c.Lectures) {
			report.StaleLectureCounts = append(report.StaleLectureCounts, StaleLectureCount{
				Course: c.ID,
				Stored: c.TotalLectures,
				Actual: len(c.Lectures),
			})
		}
	}
	for _, p := range progress {
		if p.Lecture.IsZero() || !lectureIDs[p.Lecture] {
			report.OrphanedProgress = append(report.OrphanedProgress, p.ID)
		}
	}
	return report
}

func (db *DB) allLectureIDs(ctx context.Context) (map[primitive.ObjectID]bool, error) {
	cur, err := db.Lectures().Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	ids := make(map[primitive.ObjectID]bool)
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids[doc.ID] = true
	}
	return ids, cur.Err()
}

func (db *DB) allProgress(ctx context.Context) ([]models.LectureProgress, error) {
	cur, err := db.LectureProgress().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.LectureProgress
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
