// Package store provides PostgreSQL access to resumes and profiles.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careerreco/internal/types"
)

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string, logger *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// resumeRow mirrors the resume table's JSON columns.
type resumeRow struct {
	ID             string
	UserID         string
	Education      []byte
	Experience     []byte
	Skills         []byte
	Languages      []byte
	Certifications []byte
	Embedding      *string
}

// ListResumes returns every stored resume, normalized and with its embedding
// decoded. A resume whose embedding fails to decode is kept without one so it
// can still flow through the LLM path.
func (s *Store) ListResumes(ctx context.Context) ([]*types.Resume, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, education, experience, skills, languages, certifications, embedding
		 FROM resumes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []*types.Resume
	for rows.Next() {
		var row resumeRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Education, &row.Experience,
			&row.Skills, &row.Languages, &row.Certifications, &row.Embedding); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}

		resume, err := buildResume(row)
		if err != nil {
			s.logger.Warn("skipping unreadable resume",
				zap.String("resume_id", row.ID),
				zap.Error(err))
			continue
		}
		resumes = append(resumes, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resumes: %w", err)
	}
	return resumes, nil
}

// ListProfiles returns every account profile.
func (s *Store) ListProfiles(ctx context.Context) ([]*types.Profile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, COALESCE(first_name, ''), COALESCE(last_name, ''),
		        COALESCE(email, ''), COALESCE(phone, '')
		 FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*types.Profile
	for rows.Next() {
		var profile types.Profile
		if err := rows.Scan(&profile.ID, &profile.FirstName, &profile.LastName,
			&profile.Email, &profile.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}

// GetResume returns one resume by ID, nil when absent.
func (s *Store) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	var row resumeRow
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, education, experience, skills, languages, certifications, embedding
		 FROM resumes WHERE id = $1`, id,
	).Scan(&row.ID, &row.UserID, &row.Education, &row.Experience,
		&row.Skills, &row.Languages, &row.Certifications, &row.Embedding)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return buildResume(row)
}

// SaveEmbedding persists a freshly computed embedding for a resume.
func (s *Store) SaveEmbedding(ctx context.Context, resumeID string, vector []float32) error {
	encoded := types.EncodeEmbedding(vector)
	_, err := s.pool.Exec(ctx,
		`UPDATE resumes SET embedding = $1 WHERE id = $2`, encoded, resumeID)
	if err != nil {
		return fmt.Errorf("failed to save embedding for resume %s: %w", resumeID, err)
	}
	return nil
}

// LoadCorpus loads resumes and profiles concurrently and joins them: each
// resume picks up the display name and contact data of the profile whose id
// matches its user_id.
func (s *Store) LoadCorpus(ctx context.Context) ([]*types.Resume, error) {
	var (
		resumes  []*types.Resume
		profiles []*types.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumes, err = s.ListResumes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.ListProfiles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	JoinProfiles(resumes, profiles)
	return resumes, nil
}

// JoinProfiles attaches profile identity data onto resumes in place.
func JoinProfiles(resumes []*types.Resume, profiles []*types.Profile) {
	byID := make(map[string]*types.Profile, len(profiles))
	for _, profile := range profiles {
		byID[profile.ID] = profile
	}

	for _, resume := range resumes {
		profile, ok := byID[resume.UserID]
		if !ok {
			continue
		}
		name := profile.FirstName
		if profile.LastName != "" {
			if name != "" {
				name += " "
			}
			name += profile.LastName
		}
		resume.Name = name
		resume.Email = profile.Email
		resume.Phone = profile.Phone
	}
}

func buildResume(row resumeRow) (*types.Resume, error) {
	resume := &types.Resume{ID: row.ID, UserID: row.UserID}

	unmarshalList(row.Education, &resume.Education)
	unmarshalList(row.Experience, &resume.Experience)
	unmarshalList(row.Skills, &resume.Skills)
	unmarshalList(row.Languages, &resume.Languages)
	unmarshalList(row.Certifications, &resume.Certifications)

	resume.Normalize()

	if row.Embedding != nil && *row.Embedding != "" {
		vector, err := types.DecodeEmbedding(*row.Embedding)
		if err != nil {
			return nil, fmt.Errorf("bad embedding field: %w", err)
		}
		resume.Embedding = vector
	}

	return resume, nil
}

// unmarshalList decodes a JSON list column. NULL, empty and malformed values
// all normalize to an empty list so a stored resume never breaks scoring.
func unmarshalList(data []byte, target any) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, target)
}
