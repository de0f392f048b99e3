package database

import (
	"gorm.io/gorm"
)

// Database aggregates the per-entity repositories over a shared GORM
// instance. It satisfies Transactor: Transact rebinds every repository to the
// transaction so workflows like the award transition mutate all three stores
// atomically.
type Database struct {
	db             *gorm.DB
	profileRepo    *ProfileRepo
	projectRepo    *ProjectRepo
	submissionRepo *SubmissionRepo
	skillRepo      *SkillRepo
	balanceRepo    *BalanceRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		profileRepo:    NewProfileRepo(db),
		projectRepo:    NewProjectRepo(db),
		submissionRepo: NewSubmissionRepo(db),
		skillRepo:      NewSkillRepo(db),
		balanceRepo:    NewBalanceRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) Profiles() ProfileStore {
	return d.profileRepo
}

func (d Database) Projects() ProjectStore {
	return d.projectRepo
}

func (d Database) Submissions() SubmissionStore {
	return d.submissionRepo
}

func (d Database) Skills() SkillStore {
	return d.skillRepo
}

func (d Database) Balances() BalanceStore {
	return d.balanceRepo
}

// Transact runs fn inside a single database transaction. Every store handed
// to fn is bound to that transaction; returning an error rolls back all of
// fn's writes.
func (d Database) Transact(fn func(tx Stores) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
