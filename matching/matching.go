// Package matching decides which workers see which jobs. The same predicate
// backs both directions of the query, so a worker appears in a job's eligible
// set exactly when the job appears in the worker's nearby feed.
package matching

import (
	"context"
	"log"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"karigar/db"
	"karigar/geo"
	"karigar/models"
	"karigar/utils"
)

const (
	// NearbyJobsLimit caps the worker-facing feed; older jobs beyond the cap
	// are silently dropped.
	NearbyJobsLimit = 20

	// MaxServiceRadiusKm bounds every service radius. Mongo cannot apply a
	// per-document radius inside $geoWithin, so the dispatcher queries
	// workers at this ceiling; EffectiveRadiusKm clamps to the same bound so
	// the worker feed can never reach past what the dispatcher searches.
	MaxServiceRadiusKm = 100.0

	// WildcardSkill matches any job category.
	WildcardSkill = "general"
)

func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// SkillMatch reports whether a skill set covers a job category. Matching is
// case-normalized exact equality over an open string set, not a closed enum.
func SkillMatch(skills []string, category string) bool {
	category = NormalizeCategory(category)
	if category == "" {
		return false
	}
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == category || s == WildcardSkill {
			return true
		}
	}
	return false
}

// EffectiveRadiusKm is the worker's service radius, defaulted when unset and
// clamped to MaxServiceRadiusKm. Write sites enforce the same bound, but
// older records may predate it.
func EffectiveRadiusKm(w *models.Worker) float64 {
	r := w.ServiceRadiusKm
	if r <= 0 {
		r = models.DefaultServiceRadiusKm
	}
	return math.Min(r, MaxServiceRadiusKm)
}

func distanceBetween(job *models.Job, w *models.Worker) (float64, error) {
	return geo.DistanceKm(
		w.HomeLocation.Lat(), w.HomeLocation.Lng(),
		job.PreciseLocation.Lat(), job.PreciseLocation.Lng(),
	)
}

// Eligible is the matching predicate. Invalid coordinates on either side
// exclude the pair (fail-closed); the radius check is inclusive.
func Eligible(job *models.Job, w *models.Worker) bool {
	if job.Status != models.JobPending || job.AssignedWorker != "" {
		return false
	}
	d, err := distanceBetween(job, w)
	if err != nil {
		return false
	}
	if d > EffectiveRadiusKm(w) {
		return false
	}
	return SkillMatch(w.Skills, job.Category)
}

func centerSphere(lat, lng, radiusKm float64) bson.M {
	return bson.M{"$geoWithin": bson.M{"$centerSphere": bson.A{
		bson.A{lng, lat},
		radiusKm / geo.EarthRadiusKm,
	}}}
}

// FindEligibleWorkers returns every worker eligible for a job. Used by the
// notification dispatcher; no ordering is guaranteed.
func FindEligibleWorkers(ctx context.Context, job *models.Job) ([]models.Worker, error) {
	if job.Status != models.JobPending || job.AssignedWorker != "" {
		return nil, nil
	}
	if !geo.ValidCoordinates(job.PreciseLocation.Lat(), job.PreciseLocation.Lng()) {
		// Bad geodata excludes the job rather than failing the pass.
		log.Printf("matching: job %s has invalid coordinates, skipping dispatch query", job.JobID)
		return nil, nil
	}

	filter := bson.M{
		"skills":       bson.M{"$in": []string{NormalizeCategory(job.Category), WildcardSkill}},
		"homeLocation": centerSphere(job.PreciseLocation.Lat(), job.PreciseLocation.Lng(), MaxServiceRadiusKm),
	}

	cursor, err := db.WorkerCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var candidates []models.Worker
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}

	var eligible []models.Worker
	for i := range candidates {
		if Eligible(job, &candidates[i]) {
			eligible = append(eligible, candidates[i])
		}
	}
	return eligible, nil
}

// FindEligibleJobs returns the redacted nearby-job feed for a worker, newest
// first with job id as the tiebreak, capped at NearbyJobsLimit.
func FindEligibleJobs(ctx context.Context, w *models.Worker) ([]models.NearbyJob, error) {
	if !geo.ValidCoordinates(w.HomeLocation.Lat(), w.HomeLocation.Lng()) {
		return []models.NearbyJob{}, nil
	}

	skills := utils.NormalizeSkills(w.Skills)
	if len(skills) == 0 {
		// A worker with no skills matches nothing, and $in rejects a nil list.
		return []models.NearbyJob{}, nil
	}
	filter := bson.M{
		"status":          models.JobPending,
		"assignedWorker":  "",
		"preciseLocation": centerSphere(w.HomeLocation.Lat(), w.HomeLocation.Lng(), EffectiveRadiusKm(w)),
	}
	if !utils.Contains(skills, WildcardSkill) {
		filter["category"] = bson.M{"$in": skills}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "jobid", Value: 1}}).
		SetLimit(NearbyJobsLimit)

	cursor, err := db.JobCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}

	results := make([]models.NearbyJob, 0, len(jobs))
	for i := range jobs {
		if view, ok := RedactForWorker(&jobs[i], w); ok {
			results = append(results, view)
		}
	}
	return results, nil
}

// RedactForWorker re-checks eligibility in process and builds the redacted
// view. A record that fails the predicate (stale index entry, bad
// coordinates) is dropped, never surfaced.
func RedactForWorker(job *models.Job, w *models.Worker) (models.NearbyJob, bool) {
	if !Eligible(job, w) {
		return models.NearbyJob{}, false
	}
	d, err := distanceBetween(job, w)
	if err != nil {
		return models.NearbyJob{}, false
	}

	return models.NearbyJob{
		JobID:               job.JobID,
		Title:               job.Title,
		Description:         job.Description,
		Category:            job.Category,
		ApproximateLocation: job.ApproximateLocation,
		DistanceKm:          math.Round(d*100) / 100,
		Budget:              job.Budget,
		ScheduledDate:       job.ScheduledDate,
		TimeStart:           job.TimeStart,
		TimeEnd:             job.TimeEnd,
		CreatedAt:           job.CreatedAt,
	}, true
}
