package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kycflow/internal/utils"
	"kycflow/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const submissionTableName = "kycflow.submissions"

var submissionColumns = utils.Columns(types.Submission{})

type SubmissionRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewSubmissionRepository(pool *pgxpool.Pool, timeout time.Duration) *SubmissionRepository {
	return &SubmissionRepository{pool: pool, timeout: timeout}
}

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, submission *types.Submission) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now()
	submission.CreatedAt = now
	submission.UpdatedAt = now

	if len(submission.Documents) == 0 {
		submission.Documents = json.RawMessage(`{}`)
	}
	if len(submission.RequestPayload) == 0 {
		submission.RequestPayload = json.RawMessage(`{}`)
	}

	query, args, err := psql().Insert(submissionTableName).SetMap(utils.ColumnMap(submission)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert submission query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to create submission")
}

func (r *SubmissionRepository) Submission(ctx context.Context, submissionID uuid.UUID) (*types.Submission, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql().Select(submissionColumns...).From(submissionTableName).
		Where(sq.Eq{"submission_id": submissionID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate submission query: %w", err)
	}

	var submission = new(types.Submission)
	err = pgxscan.Get(ctx, r.pool, submission, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to fetch submission %s: %w", submissionID, err)
	}

	return submission, nil
}

// UpdateSubmissionStatus moves a submission from one status to another.
// The write only applies while the row still holds from; otherwise it
// returns ErrStatusConflict, or ErrSubmissionNotFound if the row is gone.
func (r *SubmissionRepository) UpdateSubmissionStatus(ctx context.Context, submissionID uuid.UUID, from, to types.SubmissionStatus) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql().Update(submissionTableName).
		SetMap(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"submission_id": submissionID, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update submission status query for %s: %w", submissionID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	_, err = r.Submission(ctx, submissionID)
	if err != nil {
		return err
	}

	return types.ErrStatusConflict
}

func (r *SubmissionRepository) LatestSubmissionByCorrelatorAndStatus(ctx context.Context, correlator string, status types.SubmissionStatus) (*types.Submission, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql().Select(submissionColumns...).From(submissionTableName).
		Where(sq.Eq{"nfc_identifier": correlator, "status": status}).
		OrderBy("id desc").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate latest submission by status query: %w", err)
	}

	var submission = new(types.Submission)
	err = pgxscan.Get(ctx, r.pool, submission, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to fetch latest %s submission: %w", status, err)
	}

	return submission, nil
}

func (r *SubmissionRepository) LatestSubmissionStatusByCorrelatorAndType(ctx context.Context, submissionType types.SubmissionType, correlator string) (types.SubmissionStatus, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := psql().Select("status").From(submissionTableName).
		Where(sq.Eq{"submission_type": submissionType, "nfc_identifier": correlator}).
		OrderBy("id desc").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to generate latest submission status query: %w", err)
	}

	var status types.SubmissionStatus
	err = pgxscan.Get(ctx, r.pool, &status, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return "", types.ErrSubmissionNotFound
		}
		return "", fmt.Errorf("failed to fetch latest %s submission status: %w", submissionType, err)
	}

	return status, nil
}
