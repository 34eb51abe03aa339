// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/models"
)

// GoalStore holds the signed-in user's savings goals, primary goal first,
// then oldest first.
//
// At most one goal per user is primary. Before a goal is written as
// primary every other goal of the user is un-flagged; with a data service
// implementing [adapter.Transactor] both steps share a transaction.
type GoalStore struct {
	*collection[models.Goal]
}

func NewGoalStore(data adapter.DataService, logger *logger.Logger) *GoalStore {
	s := &GoalStore{
		collection: newCollection[models.Goal](data, adapter.TableGoals, logger,
			adapter.OrderBy{Column: models.ColumnGoalIsPrimary},
			adapter.OrderBy{Column: models.ColumnCreatedAt, Ascending: true},
		),
	}
	s.listed = warnOnSeveralPrimaries
	return s
}

func warnOnSeveralPrimaries(ctx context.Context, goals []models.Goal) {
	if n := models.Goals(goals).PrimaryCount(); n > 1 {
		logger.FromContext(ctx).Warn().
			Int("primary_goals", n).
			Msg("several primary goals stored, using the first")
	}
}

// Goals returns the current collection.
func (s *GoalStore) Goals() models.Goals {
	return s.State().Items
}

// Primary returns the primary goal of the current collection.
func (s *GoalStore) Primary() (models.Goal, bool) {
	return s.Goals().Primary()
}

func (s *GoalStore) Find(goalID string) (models.Goal, bool) {
	return s.Goals().Find(goalID)
}

// Create inserts a goal for the current identity.
func (s *GoalStore) Create(ctx context.Context, in models.GoalInput) (*models.Goal, error) {
	var created models.Goal

	err := s.mutate(ctx, func(ctx context.Context, userID string) error {
		row := in.Row()
		row[models.ColumnUserID] = userID

		return s.withinTx(ctx, func(ctx context.Context) error {
			if in.IsPrimary {
				if err := s.clearPrimary(ctx, userID, ""); err != nil {
					return err
				}
			}
			return s.data.Insert(ctx, adapter.TableGoals, row, &created)
		})
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update applies a sparse patch to one of the current identity's goals.
func (s *GoalStore) Update(ctx context.Context, goalID string, patch models.GoalPatch) (*models.Goal, error) {
	if s.UserID() == "" {
		return nil, ErrNoIdentity
	}
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	var updated models.Goal

	err := s.mutate(ctx, func(ctx context.Context, userID string) error {
		return s.withinTx(ctx, func(ctx context.Context) error {
			if patch.MakesPrimary() {
				if err := s.clearPrimary(ctx, userID, goalID); err != nil {
					return err
				}
			}
			q := adapter.From(adapter.TableGoals).
				Eq(models.ColumnID, goalID).
				Eq(models.ColumnUserID, userID)
			return s.data.Update(ctx, q, patch.Fields(), &updated)
		})
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Remove deletes one of the current identity's goals. Records filed under
// it are left in place.
func (s *GoalStore) Remove(ctx context.Context, goalID string) error {
	return s.mutate(ctx, func(ctx context.Context, userID string) error {
		q := adapter.From(adapter.TableGoals).
			Eq(models.ColumnID, goalID).
			Eq(models.ColumnUserID, userID)
		return s.data.Delete(ctx, q)
	})
}

// clearPrimary un-flags every primary goal of userID except exceptID.
func (s *GoalStore) clearPrimary(ctx context.Context, userID, exceptID string) error {
	q := adapter.From(adapter.TableGoals).
		Eq(models.ColumnUserID, userID).
		Eq(models.ColumnGoalIsPrimary, true)
	if exceptID != "" {
		q.Neq(models.ColumnID, exceptID)
	}

	if err := s.data.Update(ctx, q, map[string]any{models.ColumnGoalIsPrimary: false}, nil); err != nil {
		return fmt.Errorf("clear primary goal: %w", err)
	}
	return nil
}
