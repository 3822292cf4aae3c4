package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/repository/postgres"
	"go.uber.org/zap"
)

func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

func NewRouteCacheRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RouteCacheRepository {
	return postgres.NewRouteCacheRepository(NewDBForTest(db, logger))
}
