// Package models holds the hand-written slice of SQLBoiler generated code the
// integration suite runs against. It keeps the generated shape (query
// builder, Bind, boil tags) without requiring codegen in the test tree.
package models

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/google/uuid"
)

// User is an object representing the database table.
type User struct {
	ID        string    `boil:"id" json:"id"`
	Email     string    `boil:"email" json:"email"`
	Name      string    `boil:"name" json:"name"`
	Age       null.Int  `boil:"age" json:"age,omitempty"`
	CreatedAt time.Time `boil:"created_at" json:"created_at"`
}

var userColumns = []string{`"id"`, `"email"`, `"name"`, `"age"`, `"created_at"`}

var pgDialect = drivers.Dialect{
	LQ:                   '"',
	RQ:                   '"',
	UseIndexPlaceholders: true,
}

type userQuery struct {
	mods []qm.QueryMod
}

// Users returns a new query against the users table.
func Users(mods ...qm.QueryMod) userQuery {
	return userQuery{mods: mods}
}

// All returns all User records matching the query.
func (q userQuery) All(ctx context.Context, exec boil.ContextExecutor) ([]*User, error) {
	query := &queries.Query{}
	queries.SetDialect(query, &pgDialect)

	base := []qm.QueryMod{qm.Select(userColumns...), qm.From(`"users"`)}
	qm.Apply(query, append(base, q.mods...)...)

	var users []*User
	if err := query.Bind(ctx, exec, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// InsertUser writes a User, assigning a fresh id when none is set.
func InsertUser(ctx context.Context, exec boil.ContextExecutor, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	_, err := exec.ExecContext(ctx,
		`INSERT INTO users (id, email, name, age) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.Name, u.Age,
	)
	return err
}
