package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
	"github.com/aurapass/kiosk-services/internal/scansvc/store"
)

// MemberService resolves badge codes to member records.
type MemberService struct {
	memberStore *store.MemberStore
}

func NewMemberService(memberStore *store.MemberStore) *MemberService {
	return &MemberService{memberStore: memberStore}
}

// ResolveForScan looks the member up inside the scan transaction and takes
// the per-member row lock. nil, nil means unknown code.
func (s *MemberService) ResolveForScan(ctx context.Context, tx pgx.Tx, code string) (*models.Member, error) {
	return s.memberStore.GetByUniqueIdForUpdate(ctx, tx, code)
}

// Resolve is the lock-free lookup for read-only callers.
func (s *MemberService) Resolve(ctx context.Context, code string) (*models.Member, error) {
	return s.memberStore.GetByUniqueId(ctx, code)
}
