package pool

import (
	"context"
	"database/sql"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

// MembershipStore answers pool membership lookups for other modules.
type MembershipStore struct {
	db *sql.DB
}

func NewMembershipStore(db *sql.DB) *MembershipStore {
	return &MembershipStore{db}
}

func (s *MembershipStore) IsMember(ctx context.Context, poolID, userID uuid.UUID) (bool, error) {
	const query = `
		SELECT
			count(user_id)
		FROM
			pool_members
		WHERE
			pool_id = $1 AND user_id = $2;`
	counts, err := tql.Query[int](ctx, s.db, query, poolID, userID)
	if err != nil {
		return false, err
	}

	return len(counts) > 0 && counts[0] > 0, nil
}
