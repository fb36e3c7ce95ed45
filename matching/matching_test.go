package matching

import (
	"context"
	"testing"
	"time"

	"karigar/geo"
	"karigar/models"
)

func pendingJob(lat, lng float64, category string) *models.Job {
	return &models.Job{
		JobID:           "j_test",
		Title:           "Fix kitchen sink",
		Category:        category,
		Address:         "12 MG Road, Saket, New Delhi",
		PreciseLocation: models.NewGeoPoint(lat, lng),
		Status:          models.JobPending,
		CreatedAt:       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func plumber(lat, lng, radiusKm float64) *models.Worker {
	return &models.Worker{
		WorkerID:        "w_test",
		HomeLocation:    models.NewGeoPoint(lat, lng),
		ServiceRadiusKm: radiusKm,
		Skills:          []string{"plumbing"},
	}
}

func TestEligibleDistance(t *testing.T) {
	// Worker in central Delhi with a 10km radius.
	w := plumber(28.6139, 77.2090, 10)

	far := pendingJob(28.70, 77.10, "plumbing") // ~14.3km away
	if Eligible(far, w) {
		t.Error("job beyond the service radius should not be eligible")
	}

	near := pendingJob(28.62, 77.21, "plumbing") // ~0.7km away
	if !Eligible(near, w) {
		t.Error("job inside the service radius should be eligible")
	}
}

func TestEligibleBoundaryInclusive(t *testing.T) {
	w := plumber(28.6139, 77.2090, 10)
	job := pendingJob(28.70, 77.10, "plumbing")

	d, err := geo.DistanceKm(28.6139, 77.2090, 28.70, 77.10)
	if err != nil {
		t.Fatalf("DistanceKm error: %v", err)
	}

	w.ServiceRadiusKm = d
	if !Eligible(job, w) {
		t.Errorf("worker exactly at the boundary distance (%.3fkm) should be eligible", d)
	}

	w.ServiceRadiusKm = d - 0.01
	if Eligible(job, w) {
		t.Error("radius just under the distance should not be eligible")
	}
}

func TestEligibleSkills(t *testing.T) {
	w := plumber(28.6139, 77.2090, 10)
	job := pendingJob(28.62, 77.21, "plumbing")

	tests := []struct {
		name     string
		skills   []string
		category string
		want     bool
	}{
		{"exact match", []string{"plumbing"}, "plumbing", true},
		{"case normalized", []string{"Plumbing"}, "PLUMBING", true},
		{"no overlap", []string{"electrical", "carpentry"}, "plumbing", false},
		{"wildcard", []string{"general"}, "roof_waxing", true},
		{"wildcard among others", []string{"electrical", "general"}, "plumbing", true},
		{"free-text category", []string{"drone repair"}, "Drone Repair", true},
		{"empty category", []string{"plumbing"}, "", false},
		{"no skills", nil, "plumbing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.Skills = tt.skills
			job.Category = tt.category
			if got := Eligible(job, w); got != tt.want {
				t.Errorf("Eligible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligibleJobAvailability(t *testing.T) {
	w := plumber(28.6139, 77.2090, 10)

	job := pendingJob(28.62, 77.21, "plumbing")
	job.Status = models.JobInProgress
	if Eligible(job, w) {
		t.Error("non-pending job should not be eligible")
	}

	job = pendingJob(28.62, 77.21, "plumbing")
	job.AssignedWorker = "w_other"
	if Eligible(job, w) {
		t.Error("assigned job should not be eligible")
	}
}

func TestEligibleFailsClosedOnBadCoordinates(t *testing.T) {
	job := pendingJob(28.62, 77.21, "plumbing")

	w := plumber(0, 0, 10) // unset location decodes to the zero origin
	if Eligible(job, w) {
		t.Error("worker with zero-origin location must be excluded")
	}

	w = &models.Worker{Skills: []string{"plumbing"}, ServiceRadiusKm: 10}
	if Eligible(job, w) {
		t.Error("worker with no location at all must be excluded")
	}

	w = plumber(28.6139, 77.2090, 10)
	job.PreciseLocation = models.GeoPoint{Type: "Point", Coordinates: []float64{200, 95}}
	if Eligible(job, w) {
		t.Error("job with out-of-range coordinates must be excluded")
	}
}

func TestEffectiveRadiusDefault(t *testing.T) {
	w := &models.Worker{}
	if got := EffectiveRadiusKm(w); got != models.DefaultServiceRadiusKm {
		t.Errorf("EffectiveRadiusKm = %v, want default %v", got, models.DefaultServiceRadiusKm)
	}
	w.ServiceRadiusKm = 25
	if got := EffectiveRadiusKm(w); got != 25 {
		t.Errorf("EffectiveRadiusKm = %v, want 25", got)
	}
}

func TestEffectiveRadiusClamped(t *testing.T) {
	w := &models.Worker{ServiceRadiusKm: 150}
	if got := EffectiveRadiusKm(w); got != MaxServiceRadiusKm {
		t.Errorf("EffectiveRadiusKm = %v, want clamp to %v", got, MaxServiceRadiusKm)
	}

	// A stored radius past the ceiling must not reach jobs the dispatch
	// query would never search: ~119.7km away is out even at radius 150.
	w = plumber(28.6139, 77.2090, 150)
	far := pendingJob(29.69, 77.2090, "plumbing")
	if Eligible(far, w) {
		t.Error("job beyond the dispatch ceiling must not be eligible")
	}

	within := pendingJob(29.42, 77.2090, "plumbing") // ~89.6km
	if !Eligible(within, w) {
		t.Error("job inside the ceiling should stay eligible")
	}
}

func TestFindEligibleJobsNoSkills(t *testing.T) {
	w := plumber(28.6139, 77.2090, 10)
	w.Skills = nil

	jobs, err := FindEligibleJobs(context.Background(), w)
	if err != nil {
		t.Fatalf("FindEligibleJobs error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("skill-less worker got %d jobs, want an empty feed", len(jobs))
	}
}

func TestRedactForWorker(t *testing.T) {
	w := plumber(28.6139, 77.2090, 10)
	job := pendingJob(28.62, 77.21, "plumbing")
	job.ApproximateLocation = "Saket, New Delhi"

	view, ok := RedactForWorker(job, w)
	if !ok {
		t.Fatal("expected an eligible job to produce a view")
	}
	if view.ApproximateLocation != "Saket, New Delhi" {
		t.Errorf("approximate location = %q", view.ApproximateLocation)
	}
	if view.DistanceKm <= 0 || view.DistanceKm > 1 {
		t.Errorf("distance = %v, want ~0.69", view.DistanceKm)
	}

	// The view type has no precise-location field; make sure the ineligible
	// path yields nothing at all.
	job.Status = models.JobCompleted
	if _, ok := RedactForWorker(job, w); ok {
		t.Error("ineligible job must not produce a view")
	}
}

// Both query directions share one predicate: a job shows up in a worker's
// feed exactly when the worker shows up in the job's dispatch set. Filter a
// matrix of pairs both ways and check the memberships coincide.
func TestEligibilitySymmetry(t *testing.T) {
	workers := []*models.Worker{
		plumber(28.6139, 77.2090, 10),
		plumber(28.70, 77.10, 50),
		plumber(28.6139, 77.2090, 150), // radius beyond the dispatch ceiling
		plumber(0, 0, 10),
	}
	jobs := []*models.Job{
		pendingJob(28.62, 77.21, "plumbing"),
		pendingJob(28.70, 77.10, "electrical"),
		pendingJob(29.69, 77.2090, "plumbing"), // ~119.7km from central Delhi
	}

	for wi, w := range workers {
		feed := make(map[int]bool)
		for ji, j := range jobs {
			if _, ok := RedactForWorker(j, w); ok {
				feed[ji] = true
			}
		}
		for ji, j := range jobs {
			dispatched := Eligible(j, w)
			if dispatched != feed[ji] {
				t.Errorf("worker %d / job %d: dispatch says %v, feed says %v", wi, ji, dispatched, feed[ji])
			}
		}
	}
}
