// Package memory provides an in-memory implementation of database.Stores
// with the same semantics as the GORM-backed repositories. It backs service
// and handler tests that need a full store without a running database.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

// Store holds every table in maps keyed by ID. All methods copy records on
// the way in and out so callers cannot mutate stored state behind the
// store's back.
type Store struct {
	mu          sync.Mutex
	profiles    map[uuid.UUID]models.Profile
	projects    map[uuid.UUID]models.Project
	submissions map[uuid.UUID]models.Submission
	skills      map[uuid.UUID]models.Skill
	userSkills  map[uuid.UUID]models.UserSkill
	balances    map[uuid.UUID]models.Balance
}

func NewStore() *Store {
	return &Store{
		profiles:    make(map[uuid.UUID]models.Profile),
		projects:    make(map[uuid.UUID]models.Project),
		submissions: make(map[uuid.UUID]models.Submission),
		skills:      make(map[uuid.UUID]models.Skill),
		userSkills:  make(map[uuid.UUID]models.UserSkill),
		balances:    make(map[uuid.UUID]models.Balance),
	}
}

func (s *Store) Profiles() database.ProfileStore       { return profileTable{s} }
func (s *Store) Projects() database.ProjectStore       { return projectTable{s} }
func (s *Store) Submissions() database.SubmissionStore { return submissionTable{s} }
func (s *Store) Skills() database.SkillStore           { return skillTable{s} }
func (s *Store) Balances() database.BalanceStore       { return balanceTable{s} }

// Transact emulates a rollback by snapshotting every table before running fn
// and restoring the snapshot when fn fails.
func (s *Store) Transact(fn func(tx database.Stores) error) error {
	snapshot := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type tables struct {
	profiles    map[uuid.UUID]models.Profile
	projects    map[uuid.UUID]models.Project
	submissions map[uuid.UUID]models.Submission
	skills      map[uuid.UUID]models.Skill
	userSkills  map[uuid.UUID]models.UserSkill
	balances    map[uuid.UUID]models.Balance
}

func (s *Store) snapshot() tables {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tables{
		profiles:    copyMap(s.profiles),
		projects:    copyMap(s.projects),
		submissions: copyMap(s.submissions),
		skills:      copyMap(s.skills),
		userSkills:  copyMap(s.userSkills),
		balances:    copyMap(s.balances),
	}
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = t.profiles
	s.projects = t.projects
	s.submissions = t.submissions
	s.skills = t.skills
	s.userSkills = t.userSkills
	s.balances = t.balances
}

func copyMap[V any](src map[uuid.UUID]V) map[uuid.UUID]V {
	dst := make(map[uuid.UUID]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// --- profiles ---

type profileTable struct{ s *Store }

func (t profileTable) Add(profile *models.Profile) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	profile.Wallet = models.NormalizeWallet(profile.Wallet)
	for _, existing := range t.s.profiles {
		if existing.Wallet == profile.Wallet {
			return errs.NewAlreadyExists("profile")
		}
	}
	ensureID(&profile.ID)
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	t.s.profiles[profile.ID] = *profile
	return nil
}

func (t profileTable) FindByWallet(wallet string) (*models.Profile, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	wallet = models.NormalizeWallet(wallet)
	for _, p := range t.s.profiles {
		if p.Wallet == wallet {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

// --- projects ---

type projectTable struct{ s *Store }

func (t projectTable) Add(project *models.Project) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	ensureID(&project.ID)
	project.OwnerWallet = models.NormalizeWallet(project.OwnerWallet)
	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	t.s.projects[project.ID] = *project
	return nil
}

func (t projectTable) FindByID(id uuid.UUID) (*models.Project, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if p, ok := t.s.projects[id]; ok {
		out := p
		return &out, nil
	}
	return nil, nil
}

func (t projectTable) List(filter database.ProjectFilter) ([]models.Project, int64, error) {
	filter.Normalize()
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var matched []models.Project
	for _, p := range t.s.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.OwnerWallet != "" && p.OwnerWallet != filter.OwnerWallet {
			continue
		}
		if filter.Skill != "" &&
			!strings.Contains(strings.ToLower(p.RequiredSkills), strings.ToLower(filter.Skill)) {
			continue
		}
		if filter.MinPrize != nil && p.PrizeAmount.LessThan(*filter.MinPrize) {
			continue
		}
		if filter.MaxPrize != nil && p.PrizeAmount.GreaterThan(*filter.MaxPrize) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "prize":
			less = matched[i].PrizeAmount.LessThan(matched[j].PrizeAmount)
		case "name":
			less = matched[i].Name < matched[j].Name
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if filter.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (t projectTable) Update(project *models.Project) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.projects[project.ID]; !ok {
		return errs.NewNotFound("project")
	}
	project.UpdatedAt = time.Now()
	t.s.projects[project.ID] = *project
	return nil
}

func (t projectTable) Delete(id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	delete(t.s.projects, id)
	return nil
}

// --- submissions ---

type submissionTable struct{ s *Store }

func (t submissionTable) Add(submission *models.Submission) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	ensureID(&submission.ID)
	submission.FreelancerWallet = models.NormalizeWallet(submission.FreelancerWallet)
	now := time.Now()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = now
	}
	submission.UpdatedAt = now
	t.s.submissions[submission.ID] = *submission
	return nil
}

func (t submissionTable) FindByID(id uuid.UUID) (*models.Submission, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if sub, ok := t.s.submissions[id]; ok {
		out := sub
		return &out, nil
	}
	return nil, nil
}

func (t submissionTable) FindPending(projectID uuid.UUID, freelancerWallet string) (*models.Submission, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	wallet := models.NormalizeWallet(freelancerWallet)
	var found *models.Submission
	for _, sub := range t.s.submissions {
		if sub.ProjectID != projectID || sub.FreelancerWallet != wallet || sub.Status != models.SubmissionPending {
			continue
		}
		if found == nil || sub.CreatedAt.Before(found.CreatedAt) {
			out := sub
			found = &out
		}
	}
	return found, nil
}

func (t submissionTable) ListByProject(projectID uuid.UUID) ([]models.Submission, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []models.Submission
	for _, sub := range t.s.submissions {
		if sub.ProjectID == projectID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (t submissionTable) Update(submission *models.Submission) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.submissions[submission.ID]; !ok {
		return errs.NewNotFound("submission")
	}
	submission.UpdatedAt = time.Now()
	t.s.submissions[submission.ID] = *submission
	return nil
}

func (t submissionTable) Delete(id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	delete(t.s.submissions, id)
	return nil
}

// --- skills ---

type skillTable struct{ s *Store }

func (t skillTable) GetOrCreate(name, description string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}
	slug := strings.ToLower(name)

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, sk := range t.s.skills {
		if sk.Slug == slug {
			out := sk
			return &out, nil
		}
	}
	skill := models.Skill{ID: uuid.New(), Name: name, Slug: slug, Description: description}
	t.s.skills[skill.ID] = skill
	out := skill
	return &out, nil
}

func (t skillTable) FindBySlug(slug string) (*models.Skill, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, sk := range t.s.skills {
		if sk.Slug == slug {
			out := sk
			return &out, nil
		}
	}
	return nil, nil
}

func (t skillTable) AddToUser(wallet string, skillID uuid.UUID) error {
	wallet = models.NormalizeWallet(wallet)
	if wallet == "" {
		return errs.NewMissingRequiredFieldError("wallet_address")
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, link := range t.s.userSkills {
		if link.Wallet == wallet && link.SkillID == skillID {
			return errs.NewConflictError("user already has skill")
		}
	}
	link := models.UserSkill{ID: uuid.New(), Wallet: wallet, SkillID: skillID, AddedAt: time.Now()}
	t.s.userSkills[link.ID] = link
	return nil
}

func (t skillTable) ForUser(wallet string) ([]models.Skill, error) {
	wallet = models.NormalizeWallet(wallet)
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []models.Skill
	for _, link := range t.s.userSkills {
		if link.Wallet != wallet {
			continue
		}
		if sk, ok := t.s.skills[link.SkillID]; ok {
			out = append(out, sk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// --- balances ---

type balanceTable struct{ s *Store }

func (t balanceTable) Get(wallet string) (*models.Balance, error) {
	wallet = models.NormalizeWallet(wallet)
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, b := range t.s.balances {
		if b.Wallet == wallet {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (t balanceTable) Adjust(wallet string, amount decimal.Decimal, preventNegative bool) (*models.Balance, error) {
	wallet = models.NormalizeWallet(wallet)
	if wallet == "" {
		return nil, errs.NewMissingRequiredFieldError("wallet_address")
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for id, b := range t.s.balances {
		if b.Wallet != wallet {
			continue
		}
		next := b.Balance.Add(amount)
		if preventNegative && next.IsNegative() {
			return nil, errs.NewNegativeBalanceError(wallet)
		}
		b.Balance = next
		b.UpdatedAt = time.Now()
		t.s.balances[id] = b
		out := b
		return &out, nil
	}

	// Absent row counts as balance zero.
	if preventNegative && amount.IsNegative() {
		return nil, errs.NewNegativeBalanceError(wallet)
	}
	row := models.Balance{ID: uuid.New(), Wallet: wallet, Balance: amount, UpdatedAt: time.Now()}
	t.s.balances[row.ID] = row
	out := row
	return &out, nil
}
