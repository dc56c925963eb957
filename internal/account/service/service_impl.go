package service

import (
	"context"
	"time"

	"github.com/aurumly/treasury/internal/account/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) GetOrCreate(ctx context.Context, ownerID snowflake.ID, role domain.Role) (*domain.Account, error) {
	if ownerID == 0 {
		return nil, domain.ErrInvalidOwner
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByOwner(ctx, s.db, ownerID, role)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	account := &domain.Account{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, account); err != nil {
		return nil, err
	}

	// The insert is conflict-tolerant; re-read so a concurrent creator's row wins.
	created, err := s.repo.FindByOwner(ctx, s.db, ownerID, role)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrNotFound
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID, role domain.Role) (*domain.Account, error) {
	if id == 0 {
		return nil, domain.ErrNotFound
	}
	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if role != "" && account.Role != role {
		return nil, domain.ErrInvalidRole
	}
	return account, nil
}
