// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

// RecordStore holds the signed-in user's deposits and withdrawals, newest
// date first and, within a date, newest entry first.
type RecordStore struct {
	*collection[models.Record]

	now func() time.Time
}

func NewRecordStore(data adapter.DataService, logger *logger.Logger) *RecordStore {
	return &RecordStore{
		collection: newCollection[models.Record](data, adapter.TableRecords, logger,
			adapter.OrderBy{Column: models.ColumnRecordDate},
			adapter.OrderBy{Column: models.ColumnCreatedAt},
		),
		now: time.Now,
	}
}

// Records returns the current collection.
func (s *RecordStore) Records() models.Records {
	return s.State().Items
}

// ByGoal returns the records filed under goalID.
func (s *RecordStore) ByGoal(goalID string) models.Records {
	return s.Records().ByGoal(goalID)
}

// Total sums every record, or only goalID's records when goalID is set.
func (s *RecordStore) Total(goalID *string) decimal.Decimal {
	if goalID == nil {
		return s.Records().Total()
	}
	return s.Records().GoalTotal(*goalID)
}

// Last returns the head of the collection.
func (s *RecordStore) Last() (models.Record, bool) {
	return s.Records().Last()
}

// Create inserts a record for the current identity. A missing date means
// today in the local time zone.
func (s *RecordStore) Create(ctx context.Context, in models.RecordInput) (*models.Record, error) {
	var created models.Record

	err := s.mutate(ctx, func(ctx context.Context, userID string) error {
		date := utils.TodayISO(s.now())
		if in.Date != nil {
			date = *in.Date
		}

		row := in.Row(date)
		row[models.ColumnUserID] = userID
		return s.data.Insert(ctx, adapter.TableRecords, row, &created)
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update applies a sparse patch; only set fields are sent.
func (s *RecordStore) Update(ctx context.Context, recordID string, patch models.RecordPatch) (*models.Record, error) {
	if s.UserID() == "" {
		return nil, ErrNoIdentity
	}
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	var updated models.Record

	err := s.mutate(ctx, func(ctx context.Context, userID string) error {
		q := adapter.From(adapter.TableRecords).
			Eq(models.ColumnID, recordID).
			Eq(models.ColumnUserID, userID)
		return s.data.Update(ctx, q, patch.Fields(), &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *RecordStore) Remove(ctx context.Context, recordID string) error {
	return s.mutate(ctx, func(ctx context.Context, userID string) error {
		q := adapter.From(adapter.TableRecords).
			Eq(models.ColumnID, recordID).
			Eq(models.ColumnUserID, userID)
		return s.data.Delete(ctx, q)
	})
}
