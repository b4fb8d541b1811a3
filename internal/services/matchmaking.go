package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/types"
)

// Fusion weights favor the deterministic structured signal over the noisier
// embedding signal.
const (
	ruleWeight     = 0.6
	semanticWeight = 0.4
)

// matchConcurrency bounds per-candidate scoring fan-out; ordering is
// irrelevant because results are sorted afterward.
const matchConcurrency = 8

// MatchResult is one ranked pairing. Student carries the denormalized
// candidate snapshot for the teacher-seeking-students operation; the
// persisted Match row never includes it.
type MatchResult struct {
	types.Match
	Student *types.Student `json:"student,omitempty"`
}

type MatchmakingService interface {
	MatchStudents(ctx context.Context, usn string) ([]*MatchResult, error)
	MatchTeachersForStudent(ctx context.Context, usn string) ([]*MatchResult, error)
	MatchStudentsForTeacher(ctx context.Context, facultyID string) ([]*MatchResult, error)
	MatchProjects(ctx context.Context, profileType, profileID string) ([]*MatchResult, error)
	ListMatches(ctx context.Context, sourceType, sourceID string) ([]*types.Match, error)
}

type matchmakingService struct {
	db          *gorm.DB
	log         *logger.Logger
	studentRepo repos.StudentRepo
	teacherRepo repos.TeacherRepo
	projectRepo repos.ProjectRepo
	matchRepo   repos.MatchRepo
	similarity  SimilarityService
}

func NewMatchmakingService(
	db *gorm.DB,
	log *logger.Logger,
	studentRepo repos.StudentRepo,
	teacherRepo repos.TeacherRepo,
	projectRepo repos.ProjectRepo,
	matchRepo repos.MatchRepo,
	similarity SimilarityService,
) MatchmakingService {
	return &matchmakingService{
		db:          db,
		log:         log.With("service", "MatchmakingService"),
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		projectRepo: projectRepo,
		matchRepo:   matchRepo,
		similarity:  similarity,
	}
}

// candidate is one pool entry with its rule score already computed; the
// engine fills in the semantic half.
type candidate struct {
	targetType string
	targetID   string
	ruleScore  int
	reasons    []string
	text       string
	snapshot   *types.Student
}

func (ms *matchmakingService) MatchStudents(ctx context.Context, usn string) ([]*MatchResult, error) {
	current, err := ms.studentRepo.GetByUSN(ctx, nil, usn)
	if err != nil {
		return nil, err
	}
	pool, err := ms.studentRepo.ListVisible(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading student pool: %w", err)
	}

	subjectText := BuildStudentText(current)
	cands := make([]candidate, 0, len(pool))
	for _, other := range pool {
		if other.USN == current.USN {
			continue
		}
		score, reasons := ScoreStudentStudent(current, other)
		cands = append(cands, candidate{
			targetType: types.EntityStudent,
			targetID:   other.USN,
			ruleScore:  score,
			reasons:    reasons,
			text:       BuildStudentText(other),
		})
	}

	return ms.rank(ctx, types.EntityStudent, current.USN, subjectText, cands,
		"High semantic similarity in interests and experience")
}

func (ms *matchmakingService) MatchTeachersForStudent(ctx context.Context, usn string) ([]*MatchResult, error) {
	student, err := ms.studentRepo.GetByUSN(ctx, nil, usn)
	if err != nil {
		return nil, err
	}
	pool, err := ms.teacherRepo.ListVisible(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading teacher pool: %w", err)
	}

	subjectText := BuildStudentBriefText(student)
	cands := make([]candidate, 0, len(pool))
	for _, teacher := range pool {
		score, reasons := ScoreStudentTeacher(student, teacher)
		cands = append(cands, candidate{
			targetType: types.EntityTeacher,
			targetID:   teacher.FacultyID,
			ruleScore:  score,
			reasons:    reasons,
			text:       BuildTeacherText(teacher),
		})
	}

	return ms.rank(ctx, types.EntityStudent, student.USN, subjectText, cands,
		"High semantic alignment with mentor expertise")
}

func (ms *matchmakingService) MatchStudentsForTeacher(ctx context.Context, facultyID string) ([]*MatchResult, error) {
	teacher, err := ms.teacherRepo.GetByFacultyID(ctx, nil, facultyID)
	if err != nil {
		return nil, err
	}
	pool, err := ms.studentRepo.ListVisible(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading student pool: %w", err)
	}

	subjectText := BuildTeacherText(teacher)
	cands := make([]candidate, 0, len(pool))
	for _, student := range pool {
		score, reasons := ScoreTeacherStudent(teacher, student)
		cands = append(cands, candidate{
			targetType: types.EntityStudent,
			targetID:   student.USN,
			ruleScore:  score,
			reasons:    reasons,
			text:       BuildStudentBriefText(student),
			snapshot:   student,
		})
	}

	return ms.rank(ctx, types.EntityTeacher, teacher.FacultyID, subjectText, cands,
		"High semantic alignment with student profile")
}

func (ms *matchmakingService) MatchProjects(ctx context.Context, profileType, profileID string) ([]*MatchResult, error) {
	var (
		subjectText     string
		domainInterests []string
		techSkills      []string
	)

	switch profileType {
	case types.EntityStudent:
		student, err := ms.studentRepo.GetByUSN(ctx, nil, profileID)
		if err != nil {
			return nil, err
		}
		subjectText = BuildStudentText(student)
		domainInterests = student.DomainInterests
		techSkills = student.TechSkills
	case types.EntityTeacher:
		teacher, err := ms.teacherRepo.GetByFacultyID(ctx, nil, profileID)
		if err != nil {
			return nil, err
		}
		subjectText = BuildTeacherText(teacher)
		domainInterests = teacher.DomainsInterestedToMentor
		// Teachers have no tech skill list; expertise areas stand in
		// when scoring tech stack overlap with a project.
		techSkills = teacher.AreasOfExpertise
	default:
		return nil, fmt.Errorf("profile type %q: %w", profileType, pkgerrors.ErrInvalidArgument)
	}

	pool, err := ms.projectRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading project pool: %w", err)
	}

	cands := make([]candidate, 0, len(pool))
	for _, project := range pool {
		score, reasons := ScoreProfileProject(profileType, domainInterests, techSkills, project)
		cands = append(cands, candidate{
			targetType: types.EntityProject,
			targetID:   project.ProjectID.String(),
			ruleScore:  score,
			reasons:    reasons,
			text:       BuildProjectText(project),
		})
	}

	return ms.rank(ctx, profileType, profileID, subjectText, cands,
		"High semantic relevance to project description")
}

func (ms *matchmakingService) ListMatches(ctx context.Context, sourceType, sourceID string) ([]*types.Match, error) {
	return ms.matchRepo.ListBySource(ctx, nil, sourceType, sourceID)
}

// rank runs the shared half of every pairing kind: semantic scoring per
// candidate, fusion, the >0 filter, descending sort and best-effort
// persistence. A failed embedding degrades that one candidate's semantic
// score to 0 instead of aborting the run.
func (ms *matchmakingService) rank(ctx context.Context, sourceType, sourceID, subjectText string, cands []candidate, semanticReason string) ([]*MatchResult, error) {
	type scored struct {
		result *MatchResult
	}
	slots := make([]scored, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(matchConcurrency)
	for i := range cands {
		i := i
		g.Go(func() error {
			cand := cands[i]

			semanticScore, err := ms.similarity.SemanticScore(gctx, subjectText, cand.text)
			if err != nil {
				// SignalUnavailable: keep the candidate on rule score alone.
				ms.log.Warn("Semantic score unavailable for candidate",
					"source_id", sourceID,
					"target_type", cand.targetType,
					"target_id", cand.targetID,
					"error", err,
				)
				semanticScore = 0
			}

			reasons := cand.reasons
			if semanticScore > semanticReasonThreshold {
				reasons = append(reasons[:len(reasons):len(reasons)], semanticReason)
			}

			final := fuseScores(cand.ruleScore, semanticScore)
			if final <= 0 {
				return nil
			}

			slots[i] = scored{result: &MatchResult{
				Match: types.Match{
					SourceType:  sourceType,
					SourceID:    sourceID,
					TargetType:  cand.targetType,
					TargetID:    cand.targetID,
					MatchScore:  final,
					MatchReason: reasons,
				},
				Student: cand.snapshot,
			}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*MatchResult, 0, len(cands))
	for _, s := range slots {
		if s.result != nil {
			results = append(results, s.result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	// Best-effort persistence: the ranked list is the deliverable, stored
	// rows are a side effect. Failures are counted and logged, never
	// swallowed one by one in silence, and never abort the response.
	persistFailures := 0
	for _, r := range results {
		row := r.Match
		if _, err := ms.matchRepo.Append(ctx, nil, &row); err != nil {
			persistFailures++
			ms.log.Warn("Failed to persist match",
				"source_type", r.SourceType,
				"source_id", r.SourceID,
				"target_type", r.TargetType,
				"target_id", r.TargetID,
				"error", err,
			)
			continue
		}
		r.Match = row
	}
	if persistFailures > 0 {
		ms.log.Warn("Match persistence incomplete",
			"source_type", sourceType,
			"source_id", sourceID,
			"failed", persistFailures,
			"total", len(results),
		)
	}

	return results, nil
}

func fuseScores(ruleScore, semanticScore int) int {
	return int(math.Round(ruleWeight*float64(ruleScore) + semanticWeight*float64(semanticScore)))
}
