package visibility

import (
	"testing"
	"time"

	"karigar/apperrors"
	"karigar/models"
)

func morningJob() *models.Job {
	return &models.Job{
		JobID:           "j1",
		Status:          models.JobInProgress,
		AssignedWorker:  "w1",
		Address:         "12 MG Road, Saket, New Delhi",
		PreciseLocation: models.NewGeoPoint(28.6139, 77.2090),
		ScheduledDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeStart:       "10:00",
		TimeEnd:         "12:00",
	}
}

func TestForWorkerRevealWindow(t *testing.T) {
	job := morningJob()

	tests := []struct {
		name      string
		now       time.Time
		available bool
	}{
		{"3.5h before start", time.Date(2024, 6, 1, 6, 30, 0, 0, time.UTC), false},
		{"2h55m before start", time.Date(2024, 6, 1, 7, 5, 0, 0, time.UTC), true},
		{"exactly at reveal", time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC), true},
		{"one second early", time.Date(2024, 6, 1, 6, 59, 59, 0, time.UTC), false},
		{"during the job", time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ForWorker(job, "w1", tt.now)
			if err != nil {
				t.Fatalf("ForWorker error: %v", err)
			}
			if res.Available != tt.available {
				t.Fatalf("available = %v, want %v", res.Available, tt.available)
			}
			if tt.available {
				if res.Location == nil || res.Location.Lat() != 28.6139 {
					t.Errorf("expected precise location, got %+v", res.Location)
				}
				if res.Address == "" {
					t.Error("expected address alongside the coordinates")
				}
			} else {
				if res.Location != nil {
					t.Error("location leaked before the reveal window")
				}
				if res.RevealAt == nil {
					t.Fatal("expected revealAt for a not-yet-open window")
				}
				want := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
				if !res.RevealAt.Equal(want) {
					t.Errorf("revealAt = %v, want %v", res.RevealAt, want)
				}
				if res.Message == "" {
					t.Error("expected advisory message")
				}
			}
		})
	}
}

func TestForWorkerNotAssigned(t *testing.T) {
	job := morningJob()
	now := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)

	if _, err := ForWorker(job, "someone-else", now); err != apperrors.ErrNotAssigned {
		t.Errorf("other worker: expected ErrNotAssigned, got %v", err)
	}

	job.AssignedWorker = ""
	if _, err := ForWorker(job, "", now); err != apperrors.ErrNotAssigned {
		t.Errorf("unassigned job: expected ErrNotAssigned, got %v", err)
	}
}

func TestForWorkerInactiveJob(t *testing.T) {
	now := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)

	for _, status := range []models.JobStatus{models.JobCompleted, models.JobCancelled} {
		job := morningJob()
		job.Status = status
		if _, err := ForWorker(job, "w1", now); err != apperrors.ErrJobNotActive {
			t.Errorf("status %s: expected ErrJobNotActive, got %v", status, err)
		}
	}
}

func TestForWorkerIsRepeatable(t *testing.T) {
	job := morningJob()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	first, err := ForWorker(job, "w1", now)
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	second, err := ForWorker(job, "w1", now)
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if first.Available != second.Available {
		t.Error("repeated evaluation disagreed with itself")
	}
}

func TestStartTimeBadTimeString(t *testing.T) {
	job := morningJob()
	job.TimeStart = "soonish"

	got := StartTime(job)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartTime fallback = %v, want %v", got, want)
	}
}
